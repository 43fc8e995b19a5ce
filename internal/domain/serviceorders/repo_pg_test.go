package serviceorders

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/frotaops/frota-core/internal/domain/clients"
	"github.com/frotaops/frota-core/internal/domain/companies"
	"github.com/frotaops/frota-core/internal/domain/maintenance"
	"github.com/frotaops/frota-core/internal/domain/notifications"
	"github.com/frotaops/frota-core/internal/domain/parts"
	"github.com/frotaops/frota-core/internal/domain/vehicles"
	"github.com/frotaops/frota-core/internal/pgtest"
)

var numberRe = regexp.MustCompile(`^OS-\d{4}-\d{6}$`)

func TestOrderFollowsEventLifecycle(t *testing.T) {
	pool := pgtest.Pool(t)
	pgtest.Wipe(t, pool)
	ctx := context.Background()

	orders := NewRepo(pool)
	partRepo := parts.NewRepo(pool)
	clientRepo := clients.NewRepo(pool)
	events := maintenance.NewRepo(pool)
	svc := maintenance.NewService(pool, pgtest.Logger(), maintenance.Config{AllowPastSchedule: true},
		events, companies.NewRepo(pool), vehicles.NewRepo(pool), clientRepo, partRepo, notifications.NewRepo(pool))

	companyID := pgtest.Company(t, pool, "Oficina do Zé", "SERVICO")
	client, err := clientRepo.Create(ctx, &clients.Client{CompanyID: companyID, Name: "João Pereira"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	oil, err := partRepo.Create(ctx, &parts.Part{CompanyID: companyID, Name: "Óleo 15W40", StockQty: 10, UnitPrice: 50})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	// Bench work for a client: no vehicle on either event.
	e1, err := svc.Schedule(ctx, maintenance.ScheduleInput{
		CompanyID: companyID, ClientID: &client.ID, Type: maintenance.TypeCorretiva,
		Date: time.Now(), LaborCost: 100,
	})
	if err != nil {
		t.Fatalf("schedule e1: %v", err)
	}
	e2, err := svc.Schedule(ctx, maintenance.ScheduleInput{
		CompanyID: companyID, ClientID: &client.ID, Type: maintenance.TypePreventiva,
		Date: time.Now(), LaborCost: 40,
	})
	if err != nil {
		t.Fatalf("schedule e2: %v", err)
	}

	o, err := orders.Open(ctx, companyID, client.ID, "retífica do motor")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !numberRe.MatchString(o.Number) {
		t.Fatalf("order number %q does not match OS-YYYY-NNNNNN", o.Number)
	}
	if o.Status != StatusAberta {
		t.Fatalf("new order status = %q, want ABERTA", o.Status)
	}

	if o, err = orders.Attach(ctx, o.ID, e1.ID); err != nil {
		t.Fatalf("Attach e1: %v", err)
	}
	if o, err = orders.Attach(ctx, o.ID, e2.ID); err != nil {
		t.Fatalf("Attach e2: %v", err)
	}
	if o.Status != StatusAberta {
		t.Fatalf("status with two scheduled events = %q, want ABERTA", o.Status)
	}
	if o.LaborValue != 140 {
		t.Fatalf("labor value = %v, want 140", o.LaborValue)
	}

	if _, err := svc.Start(ctx, e1.ID); err != nil {
		t.Fatalf("start e1: %v", err)
	}
	if o, err = orders.Refresh(ctx, o.ID); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if o.Status != StatusEmExecucao {
		t.Fatalf("status with running event = %q, want EM_EXECUCAO", o.Status)
	}

	if _, err := svc.AddPlannedPart(ctx, e1.ID, oil.ID, 2, nil, ""); err != nil {
		t.Fatalf("AddPlannedPart: %v", err)
	}
	if _, err := svc.Complete(ctx, e1.ID, maintenance.CompleteInput{Technician: "Zé"}); err != nil {
		t.Fatalf("complete e1: %v", err)
	}
	if o, err = orders.Refresh(ctx, o.ID); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	// e2 is still scheduled, so the order stays open.
	if o.Status != StatusAberta {
		t.Fatalf("status after one completion = %q, want ABERTA", o.Status)
	}
	if o.PartsValue != 100 {
		t.Fatalf("parts value = %v, want 100", o.PartsValue)
	}

	if _, err := svc.Cancel(ctx, e2.ID, "cliente desistiu"); err != nil {
		t.Fatalf("cancel e2: %v", err)
	}
	if o, err = orders.Refresh(ctx, o.ID); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if o.Status != StatusConcluida {
		t.Fatalf("status after all events closed = %q, want CONCLUIDA", o.Status)
	}
	if o.ClosedAt == nil {
		t.Fatal("closed order should carry data_conclusao")
	}
	if o.TotalValue != 240 {
		t.Fatalf("total = %v, want 240 (140 labor + 100 parts)", o.TotalValue)
	}

	// Closed orders take no more events.
	e3, err := svc.Schedule(ctx, maintenance.ScheduleInput{
		CompanyID: companyID, ClientID: &client.ID, Type: maintenance.TypeCorretiva, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("schedule e3: %v", err)
	}
	if _, err := orders.Attach(ctx, o.ID, e3.ID); !errors.Is(err, ErrClosed) {
		t.Fatalf("attach to closed order = %v, want ErrClosed", err)
	}
}

func TestAttachGuards(t *testing.T) {
	pool := pgtest.Pool(t)
	pgtest.Wipe(t, pool)
	ctx := context.Background()

	orders := NewRepo(pool)
	clientRepo := clients.NewRepo(pool)
	events := maintenance.NewRepo(pool)
	svc := maintenance.NewService(pool, pgtest.Logger(), maintenance.Config{AllowPastSchedule: true},
		events, companies.NewRepo(pool), vehicles.NewRepo(pool), clientRepo, parts.NewRepo(pool), notifications.NewRepo(pool))

	companyA := pgtest.Company(t, pool, "Oficina do Zé", "SERVICO")
	companyB := pgtest.Company(t, pool, "Mecânica Total", "HIBRIDO")
	clientA, _ := clientRepo.Create(ctx, &clients.Client{CompanyID: companyA, Name: "João"})
	clientB, _ := clientRepo.Create(ctx, &clients.Client{CompanyID: companyB, Name: "Maria"})

	foreign, err := svc.Schedule(ctx, maintenance.ScheduleInput{
		CompanyID: companyB, ClientID: &clientB.ID, Type: maintenance.TypeCorretiva, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("schedule foreign: %v", err)
	}

	o, err := orders.Open(ctx, companyA, clientA.ID, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	var aErr *AttachError
	if _, err := orders.Attach(ctx, o.ID, foreign.ID); !errors.As(err, &aErr) {
		t.Fatalf("attach foreign event = %v, want AttachError", err)
	}
	if _, err := orders.Attach(ctx, o.ID, 99999); !errors.As(err, &aErr) {
		t.Fatalf("attach missing event = %v, want AttachError", err)
	}

	// Same event cannot sit on two orders.
	own, err := svc.Schedule(ctx, maintenance.ScheduleInput{
		CompanyID: companyA, ClientID: &clientA.ID, Type: maintenance.TypeCorretiva, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("schedule own: %v", err)
	}
	if _, err := orders.Attach(ctx, o.ID, own.ID); err != nil {
		t.Fatalf("attach own: %v", err)
	}
	second, err := orders.Open(ctx, companyA, clientA.ID, "")
	if err != nil {
		t.Fatalf("open second: %v", err)
	}
	if _, err := orders.Attach(ctx, second.ID, own.ID); !errors.As(err, &aErr) {
		t.Fatalf("attach to second order = %v, want AttachError", err)
	}

	// Detach frees it up again.
	if _, err := orders.Detach(ctx, o.ID, own.ID); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	if _, err := orders.Attach(ctx, second.ID, own.ID); err != nil {
		t.Fatalf("attach after detach: %v", err)
	}

	// Opening for a client of another company fails.
	if _, err := orders.Open(ctx, companyA, clientB.ID, ""); err == nil {
		t.Fatal("open with foreign client should fail")
	}

	// Fleet-only operations do not bill through orders.
	frota := pgtest.Company(t, pool, "Transportes Andrade", "FROTA")
	if _, err := orders.Open(ctx, frota, clientA.ID, ""); !errors.Is(err, ErrOrdersDisabled) {
		t.Fatalf("open for FROTA = %v, want ErrOrdersDisabled", err)
	}
}
