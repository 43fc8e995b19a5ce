package migrate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration coverage; needs a throwaway database.
//
//	TEST_DATABASE_URL=postgres://... go test ./internal/migrate/

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func smokeRegistry() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_mig_smoke_a",
			Up: []string{
				`CREATE TABLE IF NOT EXISTS mig_smoke_a (id BIGSERIAL PRIMARY KEY, nome TEXT NOT NULL)`,
			},
			Down: []string{`DROP TABLE IF EXISTS mig_smoke_a`},
		},
		{
			Version: 2,
			Name:    "add_extra_mig_smoke_a",
			Up: []string{
				`ALTER TABLE mig_smoke_a ADD COLUMN IF NOT EXISTS extra TEXT`,
			},
			Down: []string{`ALTER TABLE mig_smoke_a DROP COLUMN IF EXISTS extra`},
		},
		{
			Version: 3,
			Name:    "create_mig_smoke_b",
			Up: []string{
				`CREATE TABLE IF NOT EXISTS mig_smoke_b (id BIGSERIAL PRIMARY KEY, a_id BIGINT REFERENCES mig_smoke_a(id))`,
			},
			Down: []string{`DROP TABLE IF EXISTS mig_smoke_b`},
		},
	}
}

func wipeSmoke(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS mig_smoke_b`,
		`DROP TABLE IF EXISTS mig_smoke_a`,
		`DROP TABLE IF EXISTS schema_migrations`,
	} {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("wipe %q: %v", stmt, err)
		}
	}
}

func TestManagerUpStatusRollback(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	wipeSmoke(t, pool)
	t.Cleanup(func() { wipeSmoke(t, pool) })

	mgr, err := NewManager(pool, testLogger(), smokeRegistry())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	n, err := mgr.Up(ctx)
	if err != nil {
		t.Fatalf("Up: %v", err)
	}
	if n != 3 {
		t.Fatalf("Up applied %d, want 3", n)
	}

	records, pend, err := mgr.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(records) != 3 || len(pend) != 0 {
		t.Fatalf("Status = %d records, %d pending, want 3/0", len(records), len(pend))
	}
	for _, r := range records {
		if !r.Success {
			t.Fatalf("record %d marked failed: %s", r.Version, r.Error)
		}
	}

	// Re-running is a no-op.
	n, err = mgr.Up(ctx)
	if err != nil {
		t.Fatalf("second Up: %v", err)
	}
	if n != 0 {
		t.Fatalf("second Up applied %d, want 0", n)
	}

	// Roll back to version 1 and confirm the ledger shrank with the schema.
	n, err = mgr.RollbackTo(ctx, 1)
	if err != nil {
		t.Fatalf("RollbackTo: %v", err)
	}
	if n != 2 {
		t.Fatalf("RollbackTo reverted %d, want 2", n)
	}
	records, pend, err = mgr.Status(ctx)
	if err != nil {
		t.Fatalf("Status after rollback: %v", err)
	}
	if len(records) != 1 || records[0].Version != 1 {
		t.Fatalf("ledger after rollback = %+v, want only version 1", records)
	}
	if len(pend) != 2 {
		t.Fatalf("pending after rollback = %d, want 2", len(pend))
	}

	// Climbing back up applies only what was reverted.
	n, err = mgr.Up(ctx)
	if err != nil {
		t.Fatalf("Up after rollback: %v", err)
	}
	if n != 2 {
		t.Fatalf("Up after rollback applied %d, want 2", n)
	}
}

func TestManagerHaltsAndRecordsFailure(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	wipeSmoke(t, pool)
	t.Cleanup(func() { wipeSmoke(t, pool) })

	broken := smokeRegistry()
	broken[1].Up = []string{`ALTER TABLE mig_smoke_missing ADD COLUMN extra TEXT`}

	mgr, err := NewManager(pool, testLogger(), broken)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	n, err := mgr.Up(ctx)
	if err == nil {
		t.Fatal("Up should fail on the broken unit")
	}
	var merr *MigrationError
	if !errors.As(err, &merr) || merr.Version != 2 {
		t.Fatalf("err = %v, want MigrationError for version 2", err)
	}
	if n != 1 {
		t.Fatalf("Up applied %d before halting, want 1", n)
	}

	records, _, err := mgr.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	var failed *Record
	for i := range records {
		if records[i].Version == 2 {
			failed = &records[i]
		}
		if records[i].Version > 2 {
			t.Fatalf("version %d applied past the failure", records[i].Version)
		}
	}
	if failed == nil || failed.Success || failed.Error == "" {
		t.Fatalf("failure row = %+v, want success=false with message", failed)
	}

	// Fixing the unit and re-running retries it in place and finishes the rest.
	fixed, err := NewManager(pool, testLogger(), smokeRegistry())
	if err != nil {
		t.Fatalf("NewManager fixed: %v", err)
	}
	n, err = fixed.Up(ctx)
	if err != nil {
		t.Fatalf("Up after fix: %v", err)
	}
	if n != 2 {
		t.Fatalf("Up after fix applied %d, want 2", n)
	}
}

func TestManagerLockExcludesConcurrentRun(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	wipeSmoke(t, pool)
	t.Cleanup(func() { wipeSmoke(t, pool) })

	holder, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer holder.Release()
	var got bool
	if err := holder.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&got); err != nil || !got {
		t.Fatalf("could not take advisory lock: ok=%v err=%v", got, err)
	}
	defer holder.Exec(ctx, `SELECT pg_advisory_unlock($1)`, lockID)

	mgr, err := NewManager(pool, testLogger(), smokeRegistry())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := mgr.Up(ctx); !errors.Is(err, ErrLockHeld) {
		t.Fatalf("Up with held lock = %v, want ErrLockHeld", err)
	}
	if _, err := mgr.RollbackTo(ctx, 0); !errors.Is(err, ErrLockHeld) {
		t.Fatalf("RollbackTo with held lock = %v, want ErrLockHeld", err)
	}
}

func TestFullRegistryAppliesAndRollsBack(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	wipeSmoke(t, pool)

	mgr, err := NewManager(pool, testLogger(), All)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := mgr.Up(ctx); err != nil {
		t.Fatalf("Up full registry: %v", err)
	}

	// The stock constraint from the bootstrap unit must be live.
	var one int
	err = pool.QueryRow(ctx, `SELECT 1 FROM information_schema.columns
		WHERE table_name = 'pecas' AND column_name = 'quantidade_estoque'`).Scan(&one)
	if err != nil {
		t.Fatalf("pecas.quantidade_estoque missing: %v", err)
	}

	if _, err := mgr.RollbackTo(ctx, 0); err != nil {
		t.Fatalf("RollbackTo(0): %v", err)
	}
	records, pend, err := mgr.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("ledger not empty after full rollback: %+v", records)
	}
	if len(pend) != len(All) {
		t.Fatalf("pending = %d, want %d", len(pend), len(All))
	}

	// Leave the database migrated for whatever runs next.
	if _, err := mgr.Up(ctx); err != nil {
		t.Fatalf("re-applying registry: %v", err)
	}
}
