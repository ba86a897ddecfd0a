package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tokumei_bot/internal/slack/models"
	"tokumei_bot/internal/sqldb"
)

// SQLSubmissionRepository 投稿记录数据访问层（SQLite / PostgreSQL / MySQL）
type SQLSubmissionRepository struct {
	db      *sql.DB
	dialect sqldb.Dialect
	table   string
}

// SQLOption 配置 SQLSubmissionRepository
type SQLOption func(*SQLSubmissionRepository)

// WithSQLTable 覆盖默认表名（"slack_messages"）
func WithSQLTable(name string) SQLOption {
	return func(r *SQLSubmissionRepository) {
		if name != "" {
			r.table = name
		}
	}
}

// NewSQLSubmissionRepository 创建投稿记录 Repository
func NewSQLSubmissionRepository(db *sql.DB, dialect sqldb.Dialect, opts ...SQLOption) SubmissionRepository {
	repo := &SQLSubmissionRepository{
		db:      db,
		dialect: dialect,
		table:   "slack_messages",
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Append 插入投稿记录，ID 由数据库自增生成
func (r *SQLSubmissionRepository) Append(ctx context.Context, submission *models.Submission) (int64, error) {
	d := r.dialect
	query := fmt.Sprintf(
		"INSERT INTO %s (received_at, user_name, user_id, channel_name, channel_id, text) VALUES (%s, %s, %s, %s, %s, %s)",
		r.tableIdent(), d.Bind(1), d.Bind(2), d.Bind(3), d.Bind(4), d.Bind(5), d.Bind(6),
	)
	args := []any{
		submission.ReceivedAt.Round(0),
		submission.UserName,
		submission.UserID,
		submission.ChannelName,
		submission.ChannelID,
		submission.Text,
	}

	var id int64
	if d == sqldb.MySQL {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, storageErr("append", fmt.Errorf("failed to insert submission: %w", err))
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, storageErr("append", fmt.Errorf("failed to read submission id: %w", err))
		}
	} else {
		if err := r.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, storageErr("append", fmt.Errorf("failed to insert submission: %w", err))
		}
	}

	submission.ID = id
	return id, nil
}

// Ping 验证数据库连接
func (r *SQLSubmissionRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// EnsureSchema 建表（已存在则跳过）
func (r *SQLSubmissionRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range r.schema() {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return storageErr("ensure schema", fmt.Errorf("failed to create %s: %w", r.table, err))
		}
	}
	return nil
}

func (r *SQLSubmissionRepository) schema() []string {
	table := r.tableIdent()
	index := r.dialect.Quote("idx_" + r.table + "_received_at")

	switch r.dialect {
	case sqldb.Postgres:
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id BIGSERIAL PRIMARY KEY,
    received_at TIMESTAMPTZ NOT NULL,
    user_name TEXT NOT NULL DEFAULT '',
    user_id TEXT NOT NULL DEFAULT '',
    channel_name TEXT NOT NULL DEFAULT '',
    channel_id TEXT NOT NULL DEFAULT '',
    text TEXT NOT NULL DEFAULT ''
)`, table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (received_at)", index, table),
		}
	case sqldb.MySQL:
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    received_at DATETIME(6) NOT NULL,
    user_name VARCHAR(255) NOT NULL DEFAULT '',
    user_id VARCHAR(64) NOT NULL DEFAULT '',
    channel_name VARCHAR(255) NOT NULL DEFAULT '',
    channel_id VARCHAR(64) NOT NULL DEFAULT '',
    text TEXT NOT NULL,
    INDEX %s (received_at)
) DEFAULT CHARSET=utf8mb4`, table, index),
		}
	default:
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    received_at TIMESTAMP NOT NULL,
    user_name TEXT NOT NULL DEFAULT '',
    user_id TEXT NOT NULL DEFAULT '',
    channel_name TEXT NOT NULL DEFAULT '',
    channel_id TEXT NOT NULL DEFAULT '',
    text TEXT NOT NULL DEFAULT ''
)`, table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (received_at)", index, table),
		}
	}
}

func (r *SQLSubmissionRepository) tableIdent() string {
	return r.dialect.Quote(r.table)
}
