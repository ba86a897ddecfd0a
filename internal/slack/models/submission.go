package models

import (
	"time"
)

// Submission 匿名投稿记录（只追加，创建后不再修改）
type Submission struct {
	ID          int64     `bson:"_id"`          // 存储分配的自增 ID
	ReceivedAt  time.Time `bson:"received_at"`  // 接收时间（JST）
	UserName    string    `bson:"user_name"`    // 投稿者用户名
	UserID      string    `bson:"user_id"`      // 投稿者 ID
	ChannelName string    `bson:"channel_name"` // 来源频道名
	ChannelID   string    `bson:"channel_id"`   // 来源频道 ID
	Text        string    `bson:"text"`         // 原始文本（未去除链接）
}
