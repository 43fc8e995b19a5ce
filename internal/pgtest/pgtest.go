// Package pgtest wires integration tests to the database named by
// TEST_DATABASE_URL. Tests calling Pool skip when the variable is unset, so
// the unit suite stays green without Postgres.
package pgtest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frotaops/frota-core/internal/migrate"
)

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Pool connects and brings the schema to the latest version. Migration runs
// from parallel test binaries contend for the advisory lock, so ErrLockHeld
// is retried instead of failing the test.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	mgr, err := migrate.NewManager(pool, Logger(), migrate.All)
	if err != nil {
		t.Fatalf("migrate manager: %v", err)
	}
	for i := 0; ; i++ {
		_, err = mgr.Up(ctx)
		if err == nil {
			break
		}
		if !errors.Is(err, migrate.ErrLockHeld) || i >= 50 {
			t.Fatalf("migrate up: %v", err)
		}
		time.Sleep(200 * time.Millisecond)
	}
	return pool
}

// Wipe empties every domain table. The empresas truncate cascades through
// all foreign keys; the migration ledger is left alone.
func Wipe(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`TRUNCATE empresas RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("wipe: %v", err)
	}
}

// Company inserts a minimal company and returns its id.
func Company(t *testing.T, pool *pgxpool.Pool, name, operation string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO empresas (nome, tipo_operacao) VALUES ($1, $2) RETURNING id`,
		name, operation).Scan(&id)
	if err != nil {
		t.Fatalf("insert company: %v", err)
	}
	return id
}
