// Package sweep is the safety net: a periodic pass over every active company
// filing alerts for overdue maintenance and thin stock. Alerts missed at
// transaction time (or suppressed by a crash) surface on the next pass.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frotaops/frota-core/internal/domain/companies"
	"github.com/frotaops/frota-core/internal/domain/maintenance"
	"github.com/frotaops/frota-core/internal/domain/notifications"
	"github.com/frotaops/frota-core/internal/domain/parts"
	"github.com/frotaops/frota-core/internal/domain/vehicles"
	"github.com/frotaops/frota-core/internal/infra/metrics"
)

type Config struct {
	Interval time.Duration
	// OverdueLimit caps alerts per company per pass, so one neglected fleet
	// cannot flood the notification table.
	OverdueLimit int
}

type Sweeper struct {
	log       *slog.Logger
	cfg       Config
	companies *companies.Repo
	vehicles  *vehicles.Repo
	events    *maintenance.Repo
	parts     *parts.Repo
	notif     *notifications.Repo
}

func New(log *slog.Logger, cfg Config, companyRepo *companies.Repo, vehicleRepo *vehicles.Repo,
	eventRepo *maintenance.Repo, partRepo *parts.Repo, notif *notifications.Repo) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.OverdueLimit <= 0 {
		cfg.OverdueLimit = 50
	}
	return &Sweeper{
		log:       log,
		cfg:       cfg,
		companies: companyRepo,
		vehicles:  vehicleRepo,
		events:    eventRepo,
		parts:     partRepo,
		notif:     notif,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.RunOnce(ctx)
	t := time.NewTicker(s.cfg.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce sweeps every active company and returns how many alerts were filed.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	runID := uuid.NewString()
	log := s.log.With("sweep", runID)
	metrics.SweepRuns.Inc()

	comps, err := s.companies.ListActive(ctx)
	if err != nil {
		log.Error("listing companies", "err", err)
		return 0
	}

	now := time.Now()
	filed := 0
	for _, c := range comps {
		filed += s.overdueEvents(ctx, log, c, now)
		if c.Operation.FleetEnabled() {
			filed += s.overdueVehicles(ctx, log, c, now)
		}
		filed += s.lowStock(ctx, log, c)
	}
	log.Info("sweep done", "empresas", len(comps), "alerts", filed)
	return filed
}

func (s *Sweeper) overdueEvents(ctx context.Context, log *slog.Logger, c companies.Company, now time.Time) int {
	events, err := s.events.ListOverdue(ctx, c.ID, now, s.cfg.OverdueLimit)
	if err != nil {
		log.Error("listing overdue maintenance", "empresa", c.ID, "err", err)
		return 0
	}
	filed := 0
	for _, e := range events {
		subject := e.Description
		if e.VehicleID != nil {
			if v, err := s.vehicles.GetByID(ctx, *e.VehicleID); err == nil && v != nil {
				subject = v.Plate
			}
		}
		if subject == "" {
			subject = fmt.Sprintf("#%d", e.ID)
		}
		created, err := s.notif.OverdueMaintenance(ctx, c.ID, e.ID, subject, e.ScheduledDate)
		if err != nil {
			log.Error("overdue alert", "manutencao", e.ID, "err", err)
			continue
		}
		if created {
			filed++
		}
	}
	return filed
}

func (s *Sweeper) overdueVehicles(ctx context.Context, log *slog.Logger, c companies.Company, now time.Time) int {
	overdue, err := s.vehicles.ListOverdue(ctx, c.ID, now, s.cfg.OverdueLimit)
	if err != nil {
		log.Error("listing overdue vehicles", "empresa", c.ID, "err", err)
		return 0
	}
	filed := 0
	for _, v := range overdue {
		if v.NextMaintenance == nil {
			continue
		}
		created, err := s.notif.OverdueVehicle(ctx, c.ID, v.Plate, *v.NextMaintenance)
		if err != nil {
			log.Error("vehicle alert", "veiculo", v.ID, "err", err)
			continue
		}
		if created {
			filed++
		}
	}
	return filed
}

func (s *Sweeper) lowStock(ctx context.Context, log *slog.Logger, c companies.Company) int {
	low, err := s.parts.ListLowStock(ctx, c.ID)
	if err != nil {
		log.Error("listing low stock", "empresa", c.ID, "err", err)
		return 0
	}
	filed := 0
	for _, p := range low {
		created, err := s.notif.LowStock(ctx, c.ID, p.Name, p.StockQty, p.MinStock)
		if err != nil {
			log.Error("low stock alert", "peca", p.ID, "err", err)
			continue
		}
		if created {
			metrics.LowStockAlerts.Inc()
			filed++
		}
	}
	return filed
}
