package storage

import (
	"context"
	"path/filepath"
	"testing"

	"quiz-service/internal/config"
)

func TestOpenSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "open.db")

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	quizzes, err := store.ListQuizzes(context.Background())
	if err != nil || len(quizzes) != 0 {
		t.Fatalf("ListQuizzes = (%v, %v), want empty", quizzes, err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = "oracle"

	if _, err := Open(cfg); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	cfg := config.Default()
	cfg.DBDriver = config.DriverPostgres

	if _, err := Open(cfg); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}
