package service

import (
	"context"

	"tokumei_bot/internal/slack/relay"
)

// Relay 消息平台发送能力
type Relay interface {
	// PostToChannel 向频道发送新消息
	PostToChannel(ctx context.Context, channelID, text string) (relay.MessageRef, error)

	// PostThreadReply 在已有线程中回复
	PostThreadReply(ctx context.Context, channelID, text, threadTS string) (relay.MessageRef, error)
}

// SubmissionService 匿名投稿业务接口
type SubmissionService interface {
	// Submit 记录投稿并转发到 Slack
	// 仅在持久化失败时返回 error；转发失败体现在 Result 中
	Submit(ctx context.Context, info *SubmissionInfo) (*Result, error)
}

// SubmissionInfo 入站投稿 DTO（字段缺失即为空串）
type SubmissionInfo struct {
	Text        string
	ChannelID   string
	ChannelName string
	UserID      string
	UserName    string
}

// Result 一次投稿的处理结果
type Result struct {
	SubmissionID int64
	Threaded     bool             // 是否作为线程回复发送
	Message      relay.MessageRef // 转发成功时的消息位置
	RelayErr     *relay.Error     // 转发失败原因，成功为 nil
}
