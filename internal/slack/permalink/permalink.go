package permalink

import (
	"regexp"
	"strings"
)

var (
	// 消息链接：https://<workspace>.slack.com/archives/<channel>/p<digits>
	// \w 与 \d 仅匹配 ASCII，全角数字等不会被识别为链接
	permalinkRegex = regexp.MustCompile(`https://[\w-]+\.slack\.com/archives/(\w+)/p(\d+)`)
)

// tsSecondsLen 链接数字串中秒部分的长度，其余为小数部分
const tsSecondsLen = 10

// Target 从投稿文本中解析出的回复目标
type Target struct {
	ChannelID string // 链接中的频道 ID
	ThreadTS  string // 线程时间戳（"1234567890.123456"）
	Text      string // 去掉链接后的文本；未匹配时为原文
	Found     bool   // 是否找到链接
}

// HasThread 频道与线程时间戳是否都存在
func (t Target) HasThread() bool {
	return t.ChannelID != "" && t.ThreadTS != ""
}

// Parse 解析文本中的第一个 Slack 消息链接
// 只处理第一个匹配，且只移除该处出现的一次；未匹配时原样返回文本（不 trim）
func Parse(text string) Target {
	matches := permalinkRegex.FindStringSubmatch(text)
	if matches == nil {
		return Target{Text: text}
	}

	return Target{
		ChannelID: matches[1],
		ThreadTS:  threadTS(matches[2]),
		Text:      strings.TrimSpace(strings.Replace(text, matches[0], "", 1)),
		Found:     true,
	}
}

// threadTS 把 p 后面的数字串切成 "前10位.剩余部分"
// 不足 10 位时结果以 "." 结尾，保持原样
func threadTS(digits string) string {
	if len(digits) <= tsSecondsLen {
		return digits + "."
	}
	return digits[:tsSecondsLen] + "." + digits[tsSecondsLen:]
}
