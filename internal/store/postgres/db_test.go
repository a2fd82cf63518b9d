package postgres

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestConnConfig_SetsApplicationName(t *testing.T) {
	cfg, err := connConfig("postgres://u:p@db.internal:5433/bikerepair?sslmode=disable")
	if err != nil {
		t.Fatalf("connConfig error: %v", err)
	}
	if got := cfg.RuntimeParams["application_name"]; got != "bikerepair" {
		t.Fatalf("application_name = %q, want %q", got, "bikerepair")
	}
	if cfg.Host != "db.internal" || cfg.Port != 5433 || cfg.Database != "bikerepair" {
		t.Fatalf("parsed = %s:%d/%s", cfg.Host, cfg.Port, cfg.Database)
	}
}

func TestConnConfig_KeepsExplicitApplicationName(t *testing.T) {
	cfg, err := connConfig("postgres://u:p@localhost/db?application_name=ops")
	if err != nil {
		t.Fatalf("connConfig error: %v", err)
	}
	if got := cfg.RuntimeParams["application_name"]; got != "ops" {
		t.Fatalf("application_name = %q, want %q", got, "ops")
	}
}

func TestOpen_RejectsInvalidURL(t *testing.T) {
	_, err := Open(context.Background(), "postgres://u:p@localhost:notaport/db", PoolConfig{})
	if err == nil || !strings.Contains(err.Error(), "parse database url") {
		t.Fatalf("error = %v, want parse error", err)
	}
}

func TestOpen_GivesUpOnUnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// port 1 on loopback refuses connections immediately
	_, err := Open(ctx, "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", PoolConfig{ConnectAttempts: 2})
	if err == nil || !strings.Contains(err.Error(), "ping 127.0.0.1:1/db") {
		t.Fatalf("error = %v, want ping failure", err)
	}
}
