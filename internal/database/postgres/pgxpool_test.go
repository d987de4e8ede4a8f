package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"internhub/internal/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestPoolConfig(t *testing.T) {
	pcfg, err := PoolConfig(config.DatabaseConfig{
		DBHost:              "db.internal",
		DBPort:              "6543",
		DBName:              "internhub",
		DBUser:              "app",
		DBPassword:          "p@ss w'rd/?",
		DBSSLMode:           "require",
		ConnectTimeout:      3 * time.Second,
		PoolMaxConns:        12,
		PoolMaxConnIdleTime: time.Minute,
	})
	if err != nil {
		t.Fatalf("PoolConfig: %v", err)
	}

	cc := pcfg.ConnConfig
	if cc.Host != "db.internal" || cc.Port != 6543 || cc.Database != "internhub" || cc.User != "app" {
		t.Fatalf("unexpected connection target: %s:%d/%s as %s", cc.Host, cc.Port, cc.Database, cc.User)
	}
	if cc.Password != "p@ss w'rd/?" {
		t.Fatalf("password not preserved: %q", cc.Password)
	}
	if cc.ConnectTimeout != 3*time.Second {
		t.Fatalf("expected connect timeout 3s, got %s", cc.ConnectTimeout)
	}
	if pcfg.MaxConns != 12 || pcfg.MaxConnIdleTime != time.Minute {
		t.Fatalf("tuning not applied: max=%d idle=%s", pcfg.MaxConns, pcfg.MaxConnIdleTime)
	}
}

func TestPoolConfig_InvalidPort(t *testing.T) {
	if _, err := PoolConfig(config.DatabaseConfig{DBHost: "localhost", DBPort: "not-a-port", DBName: "x", DBUser: "x"}); err == nil {
		t.Fatalf("expected an error for a non-numeric port")
	}
}

func TestErrorClassifiers(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	if !IsUniqueViolation(unique) || IsUniqueViolation(fk) {
		t.Fatalf("unique violation misclassified")
	}
	if !IsForeignKeyViolation(fk) || IsForeignKeyViolation(unique) {
		t.Fatalf("foreign key violation misclassified")
	}
	if IsUniqueViolation(errors.New("plain")) {
		t.Fatalf("plain errors are not constraint failures")
	}
	if !IsNoRows(pgx.ErrNoRows) || !IsNoRows(fmt.Errorf("find: %w", sql.ErrNoRows)) || IsNoRows(unique) {
		t.Fatalf("no-rows misclassified")
	}
}

func TestNilPool(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); !errors.Is(err, ErrNilPool) {
		t.Fatalf("expected ErrNilPool, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("closing a nil pool: %v", err)
	}

	var empty querier
	if _, err := empty.Exec(context.Background(), "SELECT 1"); !errors.Is(err, ErrNilPool) {
		t.Fatalf("expected ErrNilPool from Exec, got %v", err)
	}
	var n int
	if err := empty.QueryRow(context.Background(), "SELECT 1").Scan(&n); !errors.Is(err, ErrNilPool) {
		t.Fatalf("expected ErrNilPool from QueryRow, got %v", err)
	}
}
