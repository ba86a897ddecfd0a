package logger

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestInitLevelFallback(t *testing.T) {
	t.Setenv("LOG_LEVEL", "not-a-level")
	t.Setenv("LOG_FORMAT", "")
	Init()
	if L().GetLevel() != log.InfoLevel {
		t.Fatalf("expected info level, got %s", L().GetLevel())
	}

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	Init()
	if L().GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %s", L().GetLevel())
	}
	if _, ok := L().Formatter.(*log.JSONFormatter); !ok {
		t.Fatalf("expected json formatter, got %T", L().Formatter)
	}
}

func TestFromContext(t *testing.T) {
	entry := FromContext(context.Background())
	if _, ok := entry.Data["request_id"]; ok {
		t.Fatalf("unexpected request_id on empty context")
	}

	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("unexpected request id: %s", got)
	}
	entry = FromContext(ctx)
	if entry.Data["request_id"] != "req-1" {
		t.Fatalf("request_id field missing: %v", entry.Data)
	}
}
