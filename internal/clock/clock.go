// Package clock 提供固定 UTC+9 的时间源，用于投稿记录的时间戳。
package clock

import "time"

// JST 固定 +9 小时偏移，不依赖宿主机时区与 tzdata
var JST = time.FixedZone("JST", 9*60*60)

// Now 返回当前时刻（JST）
func Now() time.Time {
	return time.Now().In(JST)
}
