package mongo

import (
	"context"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"缺少 URI", Config{Database: "db"}, true},
		{"缺少数据库名", Config{URI: "mongodb://localhost:27017"}, true},
		{"默认超时", Config{URI: "mongodb://localhost:27017", Database: "db"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg.Timeout != 10*time.Second {
				t.Fatalf("expected default timeout, got %s", cfg.Timeout)
			}
		})
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty config")
	}
}

func TestNilClientHelpers(t *testing.T) {
	var c *Client
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
	if c.Database() != nil {
		t.Fatalf("expected nil database")
	}
}
