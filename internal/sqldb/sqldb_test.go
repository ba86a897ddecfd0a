package sqldb

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		quote string
		want  string
	}{
		{"simple", "slack_messages", `"`, `"slack_messages"`},
		{"escape double quote", `a"b`, `"`, `"a""b"`},
		{"backtick", "slack_messages", "`", "`slack_messages`"},
		{"escape backtick", "a`b", "`", "`a``b`"},
		{"empty", "", `"`, `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteIdentifier(tt.input, tt.quote); got != tt.want {
				t.Fatalf("QuoteIdentifier(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestDialectBindAndQuote(t *testing.T) {
	if got := Postgres.Bind(3); got != "$3" {
		t.Fatalf("postgres bind = %s", got)
	}
	if got := SQLite.Bind(3); got != "?" {
		t.Fatalf("sqlite bind = %s", got)
	}
	if got := MySQL.Bind(1); got != "?" {
		t.Fatalf("mysql bind = %s", got)
	}
	if got := MySQL.Quote("t"); got != "`t`" {
		t.Fatalf("mysql quote = %s", got)
	}
	if got := Postgres.Quote("t"); got != `"t"` {
		t.Fatalf("postgres quote = %s", got)
	}
}

func TestOpenSQLiteInMemory(t *testing.T) {
	dsn := fmt.Sprintf("file:sqldb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := Open(context.Background(), SQLite, dsn)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("expected sqlite pool size 1, got %d", got)
	}
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	if _, err := Open(context.Background(), Dialect("oracle"), "x"); err == nil {
		t.Fatalf("expected error for unknown dialect")
	}
	if _, err := Open(context.Background(), SQLite, "  "); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
