package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frotaops/frota-core/internal/domain/clients"
	"github.com/frotaops/frota-core/internal/domain/companies"
	"github.com/frotaops/frota-core/internal/domain/notifications"
	"github.com/frotaops/frota-core/internal/domain/parts"
	"github.com/frotaops/frota-core/internal/domain/vehicles"
	"github.com/frotaops/frota-core/internal/infra/metrics"
)

type Config struct {
	// AllowDirectComplete lets Agendada jump straight to Concluída, for shops
	// that log work after the fact.
	AllowDirectComplete bool
	// AllowPastSchedule accepts scheduling dates before today.
	AllowPastSchedule bool
	// IntervalDays sets the next preventive maintenance after a completion.
	IntervalDays int
}

// Service drives the event lifecycle. Transitions lock the event row, and
// completion deducts the bill of materials in the same transaction, so a
// double Complete can never double-charge the stock.
type Service struct {
	pool      *pgxpool.Pool
	log       *slog.Logger
	cfg       Config
	events    *Repo
	companies *companies.Repo
	vehicles  *vehicles.Repo
	clients   *clients.Repo
	parts     *parts.Repo
	notif     *notifications.Repo
}

func NewService(pool *pgxpool.Pool, log *slog.Logger, cfg Config,
	events *Repo, companyRepo *companies.Repo, vehicleRepo *vehicles.Repo,
	clientRepo *clients.Repo, partRepo *parts.Repo, notif *notifications.Repo) *Service {
	if cfg.IntervalDays <= 0 {
		cfg.IntervalDays = 90
	}
	return &Service{
		pool:      pool,
		log:       log,
		cfg:       cfg,
		events:    events,
		companies: companyRepo,
		vehicles:  vehicleRepo,
		clients:   clientRepo,
		parts:     partRepo,
		notif:     notif,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextMaintenanceDate is when the follow-up preventive visit is due.
func NextMaintenanceDate(completed time.Time, intervalDays int) time.Time {
	return dateOnly(completed).AddDate(0, 0, intervalDays)
}

type ScheduleInput struct {
	CompanyID   int64
	VehicleID   *int64
	ClientID    *int64
	Type        Type
	Description string
	Date        time.Time
	LaborCost   float64
	Technician  string
	Notes       string
	// Parts seeds the bill of materials. Stock moves only at completion.
	Parts []PartUse
}

func validatePartUses(uses []PartUse) error {
	for _, u := range uses {
		if u.Qty <= 0 {
			return &ValidationError{Field: "quantidade", Msg: "must be positive"}
		}
		if u.UnitPrice != nil && *u.UnitPrice < 0 {
			return &ValidationError{Field: "preco_unitario", Msg: "must not be negative"}
		}
	}
	return nil
}

// Schedule creates an event in Agendada after checking the company's
// operation rules: FROTA events need a vehicle, SERVICO events need a client,
// HIBRIDO needs at least one of the two.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (*Event, error) {
	if !in.Type.Valid() {
		return nil, &ValidationError{Field: "tipo", Msg: fmt.Sprintf("unknown maintenance type %q", in.Type)}
	}
	if in.Date.IsZero() {
		return nil, &ValidationError{Field: "data_agendada", Msg: "required"}
	}
	if !s.cfg.AllowPastSchedule && dateOnly(in.Date).Before(dateOnly(time.Now())) {
		return nil, &ValidationError{Field: "data_agendada", Msg: "must not be in the past"}
	}
	if in.LaborCost < 0 {
		return nil, &ValidationError{Field: "custo_mao_obra", Msg: "must not be negative"}
	}
	if err := validatePartUses(in.Parts); err != nil {
		return nil, err
	}

	company, err := s.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, &ValidationError{Field: "empresa_id", Msg: "not found"}
	}
	op := company.Operation
	if op.RequiresVehicleOnMaintenance() && in.VehicleID == nil {
		return nil, &ValidationError{Field: "veiculo_id", Msg: "required for FROTA companies"}
	}
	if op.RequiresClientOnMaintenance() && in.ClientID == nil {
		return nil, &ValidationError{Field: "cliente_id", Msg: "required for SERVICO companies"}
	}
	if in.VehicleID == nil && in.ClientID == nil {
		return nil, &ValidationError{Field: "veiculo_id", Msg: "vehicle or client required"}
	}
	if in.ClientID != nil && !op.ClientsEnabled() {
		return nil, &ValidationError{Field: "cliente_id", Msg: "clients are disabled for FROTA companies"}
	}

	if in.VehicleID != nil {
		v, err := s.vehicles.GetByID(ctx, *in.VehicleID)
		if err != nil {
			return nil, err
		}
		if v == nil || v.CompanyID != in.CompanyID {
			return nil, &ValidationError{Field: "veiculo_id", Msg: "not found in this company"}
		}
		if v.Status == vehicles.StatusInativo {
			return nil, &ValidationError{Field: "veiculo_id", Msg: "vehicle is inactive"}
		}
	}
	if in.ClientID != nil {
		c, err := s.clients.GetByID(ctx, *in.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil || c.CompanyID != in.CompanyID {
			return nil, &ValidationError{Field: "cliente_id", Msg: "not found in this company"}
		}
		if c.Status != clients.StatusAtivo {
			return nil, &ValidationError{Field: "cliente_id", Msg: "client is inactive"}
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e, err := s.events.createTx(ctx, tx, &Event{
		CompanyID:     in.CompanyID,
		VehicleID:     in.VehicleID,
		ClientID:      in.ClientID,
		Type:          in.Type,
		Description:   in.Description,
		ScheduledDate: dateOnly(in.Date),
		LaborCost:     in.LaborCost,
		Technician:    in.Technician,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	if len(in.Parts) > 0 {
		if err := s.events.insertPlannedPartsTx(ctx, tx, e.ID, e.CompanyID, in.Parts); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.MaintenanceTransitions.WithLabelValues("agendada").Inc()
	s.log.Info("maintenance scheduled", "id", e.ID, "empresa", e.CompanyID, "tipo", e.Type, "data", e.ScheduledDate.Format("2006-01-02"), "pecas", len(in.Parts))
	return e, nil
}

// Start moves Agendada -> Em Andamento and flags the vehicle as in the shop.
func (s *Service) Start(ctx context.Context, id int64) (*Event, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e, err := s.events.lockTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(e.Status, StatusEmAndamento) {
		return nil, &StateError{EventID: id, From: e.Status, To: StatusEmAndamento}
	}
	if err := s.events.setStatusTx(ctx, tx, id, StatusEmAndamento); err != nil {
		return nil, err
	}
	if e.VehicleID != nil {
		if err := s.vehicles.SetStatusTx(ctx, tx, *e.VehicleID, vehicles.StatusEmManutencao); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.MaintenanceTransitions.WithLabelValues("em_andamento").Inc()
	s.log.Info("maintenance started", "id", id)
	e.Status = StatusEmAndamento
	return e, nil
}

type CompleteInput struct {
	Date       *time.Time // defaults to today
	LaborCost  *float64   // overrides the scheduled labor cost when set
	Technician string
	Notes      string
	VehicleKM  *int
	// Parts is what the job actually consumed. Nil charges the planned bill
	// as-is; non-nil (even empty) replaces it before charging.
	Parts []PartUse
}

// Complete closes the event and charges its bill of materials against the
// stock, all in one transaction. If any part is short, nothing moves and the
// event stays where it was.
func (s *Service) Complete(ctx context.Context, id int64, in CompleteInput) (*Event, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e, err := s.events.lockTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	direct := e.Status == StatusAgendada && s.cfg.AllowDirectComplete
	if !CanTransition(e.Status, StatusConcluida) && !direct {
		return nil, &StateError{EventID: id, From: e.Status, To: StatusConcluida}
	}

	done := dateOnly(time.Now())
	if in.Date != nil {
		done = dateOnly(*in.Date)
	}
	labor := e.LaborCost
	if in.LaborCost != nil {
		if *in.LaborCost < 0 {
			return nil, &ValidationError{Field: "custo_mao_obra", Msg: "must not be negative"}
		}
		labor = *in.LaborCost
	}
	technician := in.Technician
	if technician == "" {
		technician = e.Technician
	}

	if in.Parts != nil {
		if err := validatePartUses(in.Parts); err != nil {
			return nil, err
		}
		if err := s.events.replacePlannedPartsTx(ctx, tx, id, e.CompanyID, in.Parts); err != nil {
			return nil, err
		}
	}

	planned, err := s.events.plannedPartsTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	reason := fmt.Sprintf("Uso em manutenção #%d", id)
	var partsTotal float64
	var lowStock []*parts.Part
	for _, pp := range planned {
		p, err := s.parts.ConsumeTx(ctx, tx, pp.PartID, pp.Qty, reason, technician, &id)
		if err != nil {
			return nil, err
		}
		partsTotal += pp.Subtotal
		if p.LowStock() {
			lowStock = append(lowStock, p)
		}
	}

	items, err := s.events.serviceItemsTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	var servicesTotal float64
	for _, si := range items {
		servicesTotal += si.Subtotal
	}

	total := labor + partsTotal + servicesTotal
	if err := s.events.completeTx(ctx, tx, id, done, labor, servicesTotal, total, in.Technician, in.Notes, in.VehicleKM); err != nil {
		return nil, err
	}

	if e.VehicleID != nil {
		next := NextMaintenanceDate(done, s.cfg.IntervalDays)
		if err := s.vehicles.SetMaintenanceDatesTx(ctx, tx, *e.VehicleID, done, next); err != nil {
			return nil, err
		}
		if err := s.vehicles.SetStatusTx(ctx, tx, *e.VehicleID, vehicles.StatusOperacional); err != nil {
			return nil, err
		}
		if in.VehicleKM != nil {
			if err := s.vehicles.SetKMTx(ctx, tx, *e.VehicleID, *in.VehicleKM); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Alerts go out after commit; the periodic sweep catches any we miss.
	for _, p := range lowStock {
		metrics.LowStockAlerts.Inc()
		if s.notif != nil {
			if _, err := s.notif.LowStock(ctx, p.CompanyID, p.Name, p.StockQty, p.MinStock); err != nil {
				s.log.Error("low stock alert", "peca", p.ID, "err", err)
			}
		}
	}
	metrics.MaintenanceTransitions.WithLabelValues("concluida").Inc()
	s.log.Info("maintenance completed", "id", id, "custo_total", total, "pecas", len(planned))

	return s.events.GetByID(ctx, id)
}

// Cancel closes the event without touching stock. Planned parts stay on the
// record for reference.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*Event, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e, err := s.events.lockTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(e.Status, StatusCancelada) {
		return nil, &StateError{EventID: id, From: e.Status, To: StatusCancelada}
	}

	notes := e.Notes
	if reason != "" {
		if notes != "" {
			notes += "\n"
		}
		notes += "Cancelamento: " + reason
	}
	if err := s.events.cancelTx(ctx, tx, id, notes); err != nil {
		return nil, err
	}
	if e.VehicleID != nil && e.Status == StatusEmAndamento {
		if err := s.vehicles.SetStatusTx(ctx, tx, *e.VehicleID, vehicles.StatusOperacional); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.MaintenanceTransitions.WithLabelValues("cancelada").Inc()
	s.log.Info("maintenance cancelled", "id", id, "from", e.Status)
	return s.events.GetByID(ctx, id)
}

// AddPlannedPart puts a part on the bill of materials. Stock is not touched
// and not reserved; shortages surface at completion.
func (s *Service) AddPlannedPart(ctx context.Context, maintenanceID, partID int64, qty int, priceOverride *float64, notes string) (*PlannedPart, error) {
	if qty <= 0 {
		return nil, &ValidationError{Field: "quantidade", Msg: "must be positive"}
	}
	e, err := s.events.GetByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	if Terminal(e.Status) {
		return nil, &StateError{EventID: maintenanceID, From: e.Status, Op: "add part"}
	}

	p, err := s.parts.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.CompanyID != e.CompanyID {
		return nil, &ValidationError{Field: "peca_id", Msg: "not found in this company"}
	}
	if !p.Active {
		return nil, &ValidationError{Field: "peca_id", Msg: "part is inactive"}
	}

	price := p.UnitPrice
	if priceOverride != nil {
		if *priceOverride < 0 {
			return nil, &ValidationError{Field: "preco_unitario", Msg: "must not be negative"}
		}
		price = *priceOverride
	}
	return s.events.addPlannedPart(ctx, maintenanceID, partID, qty, price, notes)
}

// RemovePlannedPart takes a line off the bill while the event is still open.
func (s *Service) RemovePlannedPart(ctx context.Context, maintenanceID, plannedID int64) error {
	e, err := s.events.GetByID(ctx, maintenanceID)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrNotFound
	}
	if Terminal(e.Status) {
		return &StateError{EventID: maintenanceID, From: e.Status, Op: "remove part"}
	}
	ok, err := s.events.removePlannedPart(ctx, maintenanceID, plannedID)
	if err != nil {
		return err
	}
	if !ok {
		return &ValidationError{Field: "peca", Msg: "not on this maintenance"}
	}
	return nil
}

type ServiceItemInput struct {
	ServiceID *int64
	Name      string
	Qty       float64
	UnitPrice float64
	Notes     string
}

// AddServiceItem adds a labor line while the event is still open.
func (s *Service) AddServiceItem(ctx context.Context, maintenanceID int64, in ServiceItemInput) (*ServiceItem, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "nome_servico", Msg: "required"}
	}
	if in.Qty <= 0 {
		return nil, &ValidationError{Field: "quantidade", Msg: "must be positive"}
	}
	if in.UnitPrice < 0 {
		return nil, &ValidationError{Field: "valor_unitario", Msg: "must not be negative"}
	}
	e, err := s.events.GetByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	if Terminal(e.Status) {
		return nil, &StateError{EventID: maintenanceID, From: e.Status, Op: "add service"}
	}
	return s.events.addServiceItem(ctx, maintenanceID, in.ServiceID, in.Name, in.Qty, in.UnitPrice, in.Notes)
}
