package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/frotaops/frota-core/internal/config"
	"github.com/frotaops/frota-core/internal/domain/companies"
	"github.com/frotaops/frota-core/internal/domain/maintenance"
	"github.com/frotaops/frota-core/internal/domain/notifications"
	"github.com/frotaops/frota-core/internal/domain/parts"
	"github.com/frotaops/frota-core/internal/domain/vehicles"
	"github.com/frotaops/frota-core/internal/infra/db"
	httpx "github.com/frotaops/frota-core/internal/infra/http"
	"github.com/frotaops/frota-core/internal/infra/logger"
	"github.com/frotaops/frota-core/internal/migrate"
	"github.com/frotaops/frota-core/internal/sweep"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	mgr, err := migrate.NewManager(pool, log, migrate.All)
	if err != nil {
		log.Error("migration registry invalid", "err", err)
		return
	}
	applied, err := mgr.Up(ctx)
	if err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied", "count", applied)

	if cfg.Sweep.Enabled {
		sw := sweep.New(log, sweep.Config{
			Interval:     cfg.Sweep.Interval,
			OverdueLimit: cfg.Sweep.OverdueLimit,
		},
			companies.NewRepo(pool),
			vehicles.NewRepo(pool),
			maintenance.NewRepo(pool),
			parts.NewRepo(pool),
			notifications.NewRepo(pool),
		)
		go sw.Run(ctx)
		log.Info("sweep started", "interval", cfg.Sweep.Interval)
	}

	srv := httpx.New(cfg.HTTP.Addr, pool, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
