package database_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/JaimeStill/assessor/pkg/database"
	"github.com/JaimeStill/assessor/pkg/lifecycle"
)

func unreachable(t *testing.T) database.Config {
	t.Helper()
	cfg := database.Config{Host: "127.0.0.1", Port: 1, ConnTimeout: "200ms", MaxOpenConns: 3, MaxIdleConns: 1}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return cfg
}

func TestNewSizesPool(t *testing.T) {
	cfg := unreachable(t)

	db, err := database.New(&cfg, slog.Default())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer db.Connection().Close()

	if got := db.Connection().Stats().MaxOpenConnections; got != 3 {
		t.Errorf("max open connections: got %d, want 3", got)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	cfg := database.Config{URL: "postgres://%zz"}
	if _, err := database.New(&cfg, slog.Default()); err == nil {
		t.Error("expected parse error")
	}
}

func TestStartUnreachable(t *testing.T) {
	cfg := unreachable(t)

	db, err := database.New(&cfg, slog.Default())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	start := time.Now()
	if err := db.Ping(context.Background()); err == nil {
		t.Fatal("ping to a closed port should fail")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("ping ignored conn_timeout: took %v", elapsed)
	}

	lc := lifecycle.New()
	if err := db.Start(lc); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := lc.WaitForStartup(); err == nil {
		t.Error("startup should report the unreachable database")
	}
	if lc.Ready() {
		t.Error("coordinator should not be ready")
	}
	if err := lc.Shutdown(time.Second); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}
