package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/frotaops/frota-core/internal/domain/companies"
	"github.com/frotaops/frota-core/internal/domain/maintenance"
	"github.com/frotaops/frota-core/internal/domain/notifications"
	"github.com/frotaops/frota-core/internal/domain/parts"
	"github.com/frotaops/frota-core/internal/domain/vehicles"
	"github.com/frotaops/frota-core/internal/pgtest"
)

func TestRunOnceFilesAlertsOnceWithinWindow(t *testing.T) {
	pool := pgtest.Pool(t)
	pgtest.Wipe(t, pool)
	ctx := context.Background()

	companyID := pgtest.Company(t, pool, "Transportes Sweep", "FROTA")

	vehicleRepo := vehicles.NewRepo(pool)
	eventRepo := maintenance.NewRepo(pool)
	partRepo := parts.NewRepo(pool)
	notifRepo := notifications.NewRepo(pool)

	v, err := vehicleRepo.Create(ctx, &vehicles.Vehicle{
		CompanyID: companyID,
		Plate:     "SWP1A23",
		Brand:     "Volvo",
		Model:     "FH 540",
		Year:      2021,
	})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	yesterday := time.Now().AddDate(0, 0, -1)
	if err := vehicleRepo.SetMaintenanceDates(ctx, v.ID, yesterday.AddDate(0, -3, 0), yesterday); err != nil {
		t.Fatalf("set maintenance dates: %v", err)
	}

	if _, err := eventRepo.Create(ctx, &maintenance.Event{
		CompanyID:     companyID,
		VehicleID:     &v.ID,
		Type:          maintenance.TypePreventiva,
		Description:   "Troca de óleo",
		ScheduledDate: yesterday,
	}); err != nil {
		t.Fatalf("create event: %v", err)
	}

	if _, err := partRepo.Create(ctx, &parts.Part{
		CompanyID: companyID,
		Code:      "FLT-001",
		Name:      "Filtro de ar",
		StockQty:  1,
		MinStock:  3,
		UnitPrice: 45,
	}); err != nil {
		t.Fatalf("create part: %v", err)
	}

	s := New(pgtest.Logger(), Config{}, companies.NewRepo(pool), vehicleRepo, eventRepo, partRepo, notifRepo)

	// Overdue event, overdue vehicle and low stock each file one alert.
	if filed := s.RunOnce(ctx); filed != 3 {
		t.Fatalf("first sweep filed %d alerts, want 3", filed)
	}

	unread, err := notifRepo.ListUnread(ctx, companyID, 10)
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread) != 3 {
		t.Fatalf("got %d unread notifications, want 3", len(unread))
	}
	kinds := map[notifications.Kind]int{}
	for _, n := range unread {
		kinds[n.Kind]++
	}
	if kinds[notifications.KindManutencaoAtrasada] != 2 || kinds[notifications.KindEstoqueBaixo] != 1 {
		t.Fatalf("unexpected kinds %v", kinds)
	}

	// A second pass inside the dedup window repeats nothing.
	if filed := s.RunOnce(ctx); filed != 0 {
		t.Fatalf("second sweep filed %d alerts, want 0", filed)
	}
}

func TestRunOnceSkipsVehicleChecksForServiceShops(t *testing.T) {
	pool := pgtest.Pool(t)
	pgtest.Wipe(t, pool)
	ctx := context.Background()

	companyID := pgtest.Company(t, pool, "Oficina Sweep", "SERVICO")

	vehicleRepo := vehicles.NewRepo(pool)
	v, err := vehicleRepo.Create(ctx, &vehicles.Vehicle{
		CompanyID: companyID,
		Plate:     "SWP2B34",
		Brand:     "Scania",
		Model:     "R450",
		Year:      2020,
	})
	if err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	yesterday := time.Now().AddDate(0, 0, -1)
	if err := vehicleRepo.SetMaintenanceDates(ctx, v.ID, yesterday.AddDate(0, -3, 0), yesterday); err != nil {
		t.Fatalf("set maintenance dates: %v", err)
	}

	notifRepo := notifications.NewRepo(pool)
	s := New(pgtest.Logger(), Config{}, companies.NewRepo(pool),
		vehicleRepo, maintenance.NewRepo(pool), parts.NewRepo(pool), notifRepo)

	if filed := s.RunOnce(ctx); filed != 0 {
		t.Fatalf("sweep filed %d alerts for a service shop, want 0", filed)
	}
}
