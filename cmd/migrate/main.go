// Command migrate manages the database schema from the terminal: apply
// pending migrations, inspect the ledger, or roll back to a version.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/frotaops/frota-core/internal/config"
	"github.com/frotaops/frota-core/internal/infra/db"
	"github.com/frotaops/frota-core/internal/infra/logger"
	"github.com/frotaops/frota-core/internal/migrate"
)

func usage() {
	fmt.Fprintf(os.Stderr, `migrate - schema migration tool

Usage:
  migrate <command> [options]

Commands:
  up           Apply every pending migration
  status       Show applied and pending migrations
  rollback-to  Revert applied migrations down to (and keeping) a version

Examples:
  migrate up
  migrate status
  migrate rollback-to -target 12

Options (all commands):
  -config path   Config file (default config/example.yaml)
  -dsn string    Database connection string (overrides config and DATABASE_URL)
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage()
		os.Exit(0)
	}

	if err := run(cmd, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	cfgPath := fs.String("config", "config/example.yaml", "config file")
	dsn := fs.String("dsn", "", "database connection string (overrides config)")
	target := fs.Int64("target", -1, "version to roll back to (rollback-to only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *dsn != "" {
		cfg.Postgres.DSN = *dsn
	}
	log := logger.New(cfg.App.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	mgr, err := migrate.NewManager(pool, log, migrate.All)
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	switch cmd {
	case "up":
		n, err := mgr.Up(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Schema up to date.")
		} else {
			fmt.Printf("Applied %d migration(s).\n", n)
		}
		return nil

	case "status":
		return status(ctx, mgr)

	case "rollback-to":
		if *target < 0 {
			if fs.NArg() != 1 {
				return fmt.Errorf("rollback-to needs -target N (or a version argument)")
			}
			v, err := strconv.ParseInt(fs.Arg(0), 10, 64)
			if err != nil {
				return fmt.Errorf("bad version %q: %w", fs.Arg(0), err)
			}
			*target = v
		}
		n, err := mgr.RollbackTo(ctx, *target)
		if err != nil {
			return err
		}
		fmt.Printf("Rolled back %d migration(s); schema now at version %d.\n", n, *target)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func status(ctx context.Context, mgr *migrate.Manager) error {
	records, pending, err := mgr.Status(ctx)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No migrations applied.")
	} else {
		fmt.Println("Applied:")
		for _, r := range records {
			state := "ok"
			if !r.Success {
				state = "FAILED"
			}
			fmt.Printf("  v%d  %-40s  %s  %dms  %s\n",
				r.Version, r.Name, r.AppliedAt.Format(time.RFC3339), r.ExecutionMS, state)
			if r.Error != "" {
				fmt.Printf("      %s\n", r.Error)
			}
		}
	}

	if len(pending) == 0 {
		fmt.Println("\nSchema up to date.")
		return nil
	}
	fmt.Printf("\nPending: %d migration(s)\n", len(pending))
	for _, m := range pending {
		fmt.Printf("  v%d  %s\n", m.Version, m.Name)
	}
	return nil
}
