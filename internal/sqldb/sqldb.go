package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect SQL 方言
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// driverName 返回 database/sql 注册的驱动名
func (d Dialect) driverName() (string, error) {
	switch d {
	case SQLite:
		return "sqlite", nil
	case Postgres:
		return "pgx", nil
	case MySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported sql dialect %q", string(d))
	}
}

// Quote 按方言引用标识符
func (d Dialect) Quote(name string) string {
	if d == MySQL {
		return QuoteIdentifier(name, "`")
	}
	return QuoteIdentifier(name, `"`)
}

// Bind 返回第 n 个（从 1 开始）参数占位符
func (d Dialect) Bind(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Open 打开数据库并验证连接
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("%s dsn cannot be empty", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialect, err)
	}

	// SQLite 单写者，串行化连接避免 database is locked
	if dialect == SQLite {
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect, err)
	}

	return db, nil
}

func QuoteIdentifier(name, quote string) string {
	return quote + escapeIdentifier(name, quote) + quote
}

func escapeIdentifier(name, quote string) string {
	if name == "" {
		return ""
	}
	return strings.ReplaceAll(name, quote, quote+quote)
}
