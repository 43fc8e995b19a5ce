package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frotaops/frota-core/internal/infra/metrics"
)

// Session advisory lock key shared by every process that touches the schema.
const lockID int64 = 0x66726f7461

const ledgerDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version           BIGINT PRIMARY KEY,
	name              TEXT NOT NULL,
	applied_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	execution_time_ms BIGINT NOT NULL DEFAULT 0,
	success           BOOLEAN NOT NULL DEFAULT TRUE,
	error_message     TEXT
)`

// Record is one ledger row of schema_migrations.
type Record struct {
	Version     int64
	Name        string
	AppliedAt   time.Time
	ExecutionMS int64
	Success     bool
	Error       string
}

// Manager applies and reverts the registered schema changes against one
// database. All mutating entry points hold a global advisory lock, so two
// processes migrating the same database cannot interleave.
type Manager struct {
	pool       *pgxpool.Pool
	log        *slog.Logger
	migrations []Migration
}

func NewManager(pool *pgxpool.Pool, log *slog.Logger, migrations []Migration) (*Manager, error) {
	if err := validate(migrations); err != nil {
		return nil, err
	}
	return &Manager{pool: pool, log: log, migrations: migrations}, nil
}

// lock acquires a dedicated connection holding the advisory lock. The caller
// must invoke the returned release func; the lock lives on the session, so
// the connection stays pinned until then.
func (m *Manager) lock(ctx context.Context) (*pgxpool.Conn, func(), error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	var got bool
	if err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&got); err != nil {
		conn.Release()
		return nil, nil, err
	}
	if !got {
		conn.Release()
		return nil, nil, ErrLockHeld
	}
	release := func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, lockID)
		conn.Release()
	}
	return conn, release, nil
}

func loadRecords(ctx context.Context, conn *pgxpool.Conn) ([]Record, error) {
	rows, err := conn.Query(ctx, `
		SELECT version, name, applied_at, execution_time_ms, success, COALESCE(error_message, '')
		FROM schema_migrations
		ORDER BY version`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Version, &r.Name, &r.AppliedAt, &r.ExecutionMS, &r.Success, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Up applies every registered migration that has no successful ledger row, in
// ascending version order, each inside its own transaction. The run halts at
// the first failure after recording it, leaving lower versions applied.
func (m *Manager) Up(ctx context.Context) (int, error) {
	conn, release, err := m.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	if _, err := conn.Exec(ctx, ledgerDDL); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}
	records, err := loadRecords(ctx, conn)
	if err != nil {
		return 0, err
	}

	known := make(map[int64]bool, len(m.migrations))
	for _, mig := range m.migrations {
		known[mig.Version] = true
	}
	applied := make(map[int64]bool, len(records))
	for _, r := range records {
		if r.Success {
			applied[r.Version] = true
		} else if !known[r.Version] {
			// A failed version we can no longer retry blocks everything above it.
			return 0, fmt.Errorf("failed migration %d (%s) is not in the registry; resolve it before migrating", r.Version, r.Name)
		}
	}

	todo := pending(m.migrations, applied)
	if len(todo) == 0 {
		m.log.Info("schema up to date", "version", m.migrations[len(m.migrations)-1].Version)
		return 0, nil
	}

	n := 0
	for _, mig := range todo {
		if err := m.apply(ctx, conn, mig); err != nil {
			metrics.MigrationsFailed.Inc()
			return n, err
		}
		metrics.MigrationsApplied.Inc()
		n++
	}
	m.log.Info("migrations applied", "count", n)
	return n, nil
}

func (m *Manager) apply(ctx context.Context, conn *pgxpool.Conn, mig Migration) error {
	m.log.Info("applying migration", "version", mig.Version, "name", mig.Name)
	start := time.Now()

	err := func() error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()
		for _, stmt := range mig.Up {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO schema_migrations (version, name, execution_time_ms, success, error_message)
			VALUES ($1, $2, $3, TRUE, NULL)
			ON CONFLICT (version) DO UPDATE SET
				applied_at = CURRENT_TIMESTAMP,
				execution_time_ms = EXCLUDED.execution_time_ms,
				success = TRUE,
				error_message = NULL`,
			mig.Version, mig.Name, time.Since(start).Milliseconds()); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}()
	if err == nil {
		return nil
	}

	// The transaction is gone; record the failure on the lock connection so a
	// later run (and Status) can see what broke.
	if _, rerr := conn.Exec(ctx, `
		INSERT INTO schema_migrations (version, name, execution_time_ms, success, error_message)
		VALUES ($1, $2, $3, FALSE, $4)
		ON CONFLICT (version) DO UPDATE SET
			applied_at = CURRENT_TIMESTAMP,
			execution_time_ms = EXCLUDED.execution_time_ms,
			success = FALSE,
			error_message = EXCLUDED.error_message`,
		mig.Version, mig.Name, time.Since(start).Milliseconds(), err.Error()); rerr != nil {
		m.log.Error("recording migration failure", "version", mig.Version, "err", rerr)
	}
	m.log.Error("migration failed", "version", mig.Version, "name", mig.Name, "err", err)
	return &MigrationError{Version: mig.Version, Name: mig.Name, Err: err}
}

// RollbackTo reverts applied migrations above target in descending order,
// each inside its own transaction together with the deletion of its ledger
// row. RollbackTo(0) empties the schema.
func (m *Manager) RollbackTo(ctx context.Context, target int64) (int, error) {
	if target < 0 {
		return 0, fmt.Errorf("rollback target must not be negative, got %d", target)
	}
	conn, release, err := m.lock(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	if _, err := conn.Exec(ctx, ledgerDDL); err != nil {
		return 0, fmt.Errorf("ensure schema_migrations: %w", err)
	}
	records, err := loadRecords(ctx, conn)
	if err != nil {
		return 0, err
	}

	var applied []int64
	for _, r := range records {
		if r.Success {
			applied = append(applied, r.Version)
		}
	}
	plan, err := rollbackPlan(m.migrations, applied, target)
	if err != nil {
		return 0, err
	}
	if len(plan) == 0 {
		m.log.Info("nothing to roll back", "target", target)
		return 0, nil
	}

	n := 0
	for _, mig := range plan {
		if err := m.revert(ctx, conn, mig); err != nil {
			return n, err
		}
		metrics.MigrationsRolledBack.Inc()
		n++
	}
	m.log.Info("rollback complete", "target", target, "reverted", n)
	return n, nil
}

func (m *Manager) revert(ctx context.Context, conn *pgxpool.Conn, mig Migration) error {
	m.log.Info("reverting migration", "version", mig.Version, "name", mig.Name)
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, stmt := range mig.Down {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return &MigrationError{Version: mig.Version, Name: mig.Name, Err: err}
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
		return &MigrationError{Version: mig.Version, Name: mig.Name, Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &MigrationError{Version: mig.Version, Name: mig.Name, Err: err}
	}
	return nil
}

// Status returns the ledger rows and the registry entries still pending. It
// takes no lock; the ledger is created if the database was never migrated.
func (m *Manager) Status(ctx context.Context) ([]Record, []Migration, error) {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, ledgerDDL); err != nil {
		return nil, nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}
	records, err := loadRecords(ctx, conn)
	if err != nil {
		return nil, nil, err
	}
	applied := make(map[int64]bool, len(records))
	for _, r := range records {
		if r.Success {
			applied[r.Version] = true
		}
	}
	return records, pending(m.migrations, applied), nil
}
