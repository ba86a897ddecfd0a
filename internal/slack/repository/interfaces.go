package repository

import (
	"context"

	"tokumei_bot/internal/slack/models"
)

// SubmissionRepository 投稿记录数据访问接口（只追加）
type SubmissionRepository interface {
	// Append 分配 ID 并持久化投稿记录，成功返回新 ID
	Append(ctx context.Context, submission *models.Submission) (int64, error)

	// Ping 验证存储可用
	Ping(ctx context.Context) error

	// EnsureSchema 确保表 / 索引存在
	EnsureSchema(ctx context.Context) error
}
