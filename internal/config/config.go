package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// 存储驱动
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverMySQL    = "mysql"
	StoreDriverMongo    = "mongo"
)

// HealthPath 健康检查路径，webhook 不可占用
const HealthPath = "/healthz"

// Config 应用程序配置
type Config struct {
	SlackBotToken   string        // Slack Bot Token（xoxb-...）
	SlackAPIURL     string        // Slack Web API 地址（测试或代理时覆盖）
	HTTPAddr        string        // HTTP 监听地址
	WebhookPath     string        // 匿名投稿 webhook 路径
	ShutdownTimeout time.Duration // 优雅关闭超时
	Store           StoreConfig
}

// StoreConfig 投稿记录存储配置
type StoreConfig struct {
	Driver      string // sqlite / postgres / mysql / mongo
	Table       string // SQL 表名 / Mongo 集合名
	SQLitePath  string
	PostgresDSN string
	MySQLDSN    string
	MongoURI    string
	MongoDBName string
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:   strings.TrimSpace(os.Getenv("SLACK_BOT_TOKEN")),
		SlackAPIURL:     strings.TrimSpace(os.Getenv("SLACK_API_URL")),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":5001"),
		WebhookPath:     envOrDefault("WEBHOOK_PATH", "/baasannya"),
		ShutdownTimeout: 10 * time.Second,
	}

	if cfg.SlackBotToken == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if err := ValidateWebhookPath(cfg.WebhookPath); err != nil {
		return nil, fmt.Errorf("invalid WEBHOOK_PATH: %w", err)
	}

	if timeoutStr := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT_SECONDS")); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT_SECONDS: %s", timeoutStr)
		}
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	storeCfg, err := loadStoreConfig()
	if err != nil {
		return nil, err
	}
	cfg.Store = storeCfg

	return cfg, nil
}

func loadStoreConfig() (StoreConfig, error) {
	cfg := StoreConfig{
		Driver:      strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverSQLite)),
		Table:       envOrDefault("STORE_TABLE", "slack_messages"),
		SQLitePath:  envOrDefault("SQLITE_PATH", "slack_bot.db"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		MySQLDSN:    strings.TrimSpace(os.Getenv("MYSQL_DSN")),
		MongoURI:    strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDBName: envOrDefault("MONGO_DB_NAME", "tokumei_bot"),
	}

	switch cfg.Driver {
	case StoreDriverSQLite:
	case StoreDriverPostgres:
		if cfg.PostgresDSN == "" {
			return StoreConfig{}, fmt.Errorf("POSTGRES_DSN is required when STORE_DRIVER=%s", cfg.Driver)
		}
	case StoreDriverMySQL:
		if cfg.MySQLDSN == "" {
			return StoreConfig{}, fmt.Errorf("MYSQL_DSN is required when STORE_DRIVER=%s", cfg.Driver)
		}
	case StoreDriverMongo:
		if cfg.MongoURI == "" {
			return StoreConfig{}, fmt.Errorf("MONGO_URI is required when STORE_DRIVER=%s", cfg.Driver)
		}
	default:
		return StoreConfig{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Driver)
	}

	return cfg, nil
}

// ValidateWebhookPath 校验 webhook 路径可作为 ServeMux 的精确路径注册
func ValidateWebhookPath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must start with '/', got %q", path)
	}
	if strings.ContainsAny(path, " \t\r\n{}") {
		return fmt.Errorf("path must not contain whitespace or braces, got %q", path)
	}
	if path == HealthPath {
		return fmt.Errorf("path %q is reserved for health checks", path)
	}
	return nil
}

// DSN 返回当前 SQL 驱动对应的连接串
func (c StoreConfig) DSN() string {
	switch c.Driver {
	case StoreDriverPostgres:
		return c.PostgresDSN
	case StoreDriverMySQL:
		return c.MySQLDSN
	default:
		return c.SQLitePath
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
