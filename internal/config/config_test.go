package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("WEBHOOK_PATH", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTPAddr != ":5001" {
		t.Fatalf("unexpected addr: %s", cfg.HTTPAddr)
	}
	if cfg.WebhookPath != "/baasannya" {
		t.Fatalf("unexpected webhook path: %s", cfg.WebhookPath)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
	if cfg.Store.Driver != StoreDriverSQLite || cfg.Store.DSN() != "slack_bot.db" {
		t.Fatalf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Store.Table != "slack_messages" {
		t.Fatalf("unexpected table: %s", cfg.Store.Table)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"缺少 token", map[string]string{"SLACK_BOT_TOKEN": ""}},
		{"未知驱动", map[string]string{"STORE_DRIVER": "redis"}},
		{"postgres 缺少 DSN", map[string]string{"STORE_DRIVER": "postgres", "POSTGRES_DSN": ""}},
		{"mysql 缺少 DSN", map[string]string{"STORE_DRIVER": "mysql", "MYSQL_DSN": ""}},
		{"mongo 缺少 URI", map[string]string{"STORE_DRIVER": "mongo", "MONGO_URI": ""}},
		{"非法超时", map[string]string{"SHUTDOWN_TIMEOUT_SECONDS": "-3"}},
		{"非法路径", map[string]string{"WEBHOOK_PATH": "baasannya"}},
		{"占用健康检查路径", map[string]string{"WEBHOOK_PATH": "/healthz"}},
		{"路径含空格", map[string]string{"WEBHOOK_PATH": "/bad path"}},
		{"路径含通配符", map[string]string{"WEBHOOK_PATH": "/{id}"}},
		{"路径含方法前缀", map[string]string{"WEBHOOK_PATH": "POST /baasannya"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
			t.Setenv("STORE_DRIVER", "")
			t.Setenv("WEBHOOK_PATH", "")
			t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for env %v", tt.env)
			}
		})
	}
}

func TestLoadMongo(t *testing.T) {
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("STORE_DRIVER", "MONGO")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Driver != StoreDriverMongo {
		t.Fatalf("unexpected driver: %s", cfg.Store.Driver)
	}
	if cfg.Store.MongoDBName != "tokumei_bot" {
		t.Fatalf("unexpected db name: %s", cfg.Store.MongoDBName)
	}
}

func TestValidateWebhookPath(t *testing.T) {
	for _, path := range []string{"/baasannya", "/hooks/tokumei", "/healthz/extra"} {
		if err := ValidateWebhookPath(path); err != nil {
			t.Fatalf("path %q should be valid: %v", path, err)
		}
	}
	for _, path := range []string{"", "baasannya", HealthPath, "/a b", "/a\tb", "/{x}", "/x}"} {
		if err := ValidateWebhookPath(path); err == nil {
			t.Fatalf("path %q should be rejected", path)
		}
	}
}
