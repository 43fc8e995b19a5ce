package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const eventCols = `
	id, empresa_id, veiculo_id, cliente_id, ordem_servico_id, tipo, COALESCE(descricao,''),
	data_agendada, data_realizada, COALESCE(custo_mao_obra,0), COALESCE(valor_total_servicos,0),
	COALESCE(custo_total,0), status, COALESCE(tecnico,''), COALESCE(observacoes,''), km_veiculo,
	data_criacao, updated_at`

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	if err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.VehicleID,
		&e.ClientID,
		&e.ServiceOrderID,
		&e.Type,
		&e.Description,
		&e.ScheduledDate,
		&e.CompletedDate,
		&e.LaborCost,
		&e.ServicesTotal,
		&e.TotalCost,
		&e.Status,
		&e.Technician,
		&e.Notes,
		&e.VehicleKM,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) Create(ctx context.Context, e *Event) (*Event, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO manutencoes (empresa_id, veiculo_id, cliente_id, ordem_servico_id, tipo,
			descricao, data_agendada, custo_mao_obra, status, tecnico, observacoes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'Agendada',$9,$10)
		RETURNING`+eventCols,
		e.CompanyID, e.VehicleID, e.ClientID, e.ServiceOrderID, e.Type,
		e.Description, e.ScheduledDate, e.LaborCost, e.Technician, e.Notes)
	return scanEvent(row)
}

func (r *Repo) createTx(ctx context.Context, tx pgx.Tx, e *Event) (*Event, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO manutencoes (empresa_id, veiculo_id, cliente_id, ordem_servico_id, tipo,
			descricao, data_agendada, custo_mao_obra, status, tecnico, observacoes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'Agendada',$9,$10)
		RETURNING`+eventCols,
		e.CompanyID, e.VehicleID, e.ClientID, e.ServiceOrderID, e.Type,
		e.Description, e.ScheduledDate, e.LaborCost, e.Technician, e.Notes)
	return scanEvent(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+eventCols+` FROM manutencoes WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// lockTx reads the event FOR UPDATE so a transition holds the row until
// commit. Concurrent transitions on the same event serialize here.
func (r *Repo) lockTx(ctx context.Context, tx pgx.Tx, id int64) (*Event, error) {
	row := tx.QueryRow(ctx, `SELECT`+eventCols+` FROM manutencoes WHERE id = $1 FOR UPDATE`, id)
	e, err := scanEvent(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return e, err
}

func (r *Repo) ListByCompany(ctx context.Context, companyID int64) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+eventCols+` FROM manutencoes WHERE empresa_id = $1 ORDER BY data_agendada DESC, id DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *Repo) ListByStatus(ctx context.Context, companyID int64, status Status) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+eventCols+` FROM manutencoes WHERE empresa_id = $1 AND status = $2
		ORDER BY data_agendada, id`, companyID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *Repo) ListByVehicle(ctx context.Context, vehicleID int64) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+eventCols+` FROM manutencoes WHERE veiculo_id = $1 ORDER BY data_agendada DESC, id DESC`,
		vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListOverdue returns still-scheduled events whose date slipped past before,
// oldest first, capped at limit.
func (r *Repo) ListOverdue(ctx context.Context, companyID int64, before time.Time, limit int) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+eventCols+`
		FROM manutencoes
		WHERE empresa_id = $1 AND status = 'Agendada' AND data_agendada < $2
		ORDER BY data_agendada, id
		LIMIT $3`, companyID, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows pgx.Rows) ([]Event, error) {
	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *Repo) setStatusTx(ctx context.Context, tx pgx.Tx, id int64, status Status) error {
	_, err := tx.Exec(ctx, `UPDATE manutencoes SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *Repo) completeTx(ctx context.Context, tx pgx.Tx, id int64, done time.Time,
	labor, servicesTotal, total float64, technician, notes string, km *int) error {
	_, err := tx.Exec(ctx, `
		UPDATE manutencoes SET
			status = 'Concluída',
			data_realizada = $2,
			custo_mao_obra = $3,
			valor_total_servicos = $4,
			custo_total = $5,
			tecnico = CASE WHEN $6 <> '' THEN $6 ELSE tecnico END,
			observacoes = CASE WHEN $7 <> '' THEN $7 ELSE observacoes END,
			km_veiculo = COALESCE($8, km_veiculo)
		WHERE id = $1`,
		id, done, labor, servicesTotal, total, technician, notes, km)
	return err
}

func (r *Repo) cancelTx(ctx context.Context, tx pgx.Tx, id int64, notes string) error {
	_, err := tx.Exec(ctx, `
		UPDATE manutencoes SET status = 'Cancelada', observacoes = $2 WHERE id = $1`, id, notes)
	return err
}

/* Bill of materials */

const plannedCols = `
	mp.id, mp.manutencao_id, mp.peca_id, COALESCE(p.nome,''), mp.quantidade,
	mp.preco_unitario, mp.subtotal, COALESCE(mp.observacoes,''), mp.data_adicao`

func scanPlanned(row pgx.Row) (*PlannedPart, error) {
	var pp PlannedPart
	if err := row.Scan(
		&pp.ID,
		&pp.MaintenanceID,
		&pp.PartID,
		&pp.PartName,
		&pp.Qty,
		&pp.UnitPrice,
		&pp.Subtotal,
		&pp.Notes,
		&pp.AddedAt,
	); err != nil {
		return nil, err
	}
	return &pp, nil
}

func (r *Repo) addPlannedPart(ctx context.Context, maintenanceID, partID int64, qty int, price float64, notes string) (*PlannedPart, error) {
	row := r.pool.QueryRow(ctx, `
		WITH ins AS (
			INSERT INTO manutencao_pecas (manutencao_id, peca_id, quantidade, preco_unitario, observacoes)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING *
		)
		SELECT `+plannedCols+`
		FROM ins mp
		JOIN pecas p ON p.id = mp.peca_id`,
		maintenanceID, partID, qty, price, notes)
	return scanPlanned(row)
}

func (r *Repo) PlannedParts(ctx context.Context, maintenanceID int64) ([]PlannedPart, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+plannedCols+`
		FROM manutencao_pecas mp
		JOIN pecas p ON p.id = mp.peca_id
		WHERE mp.manutencao_id = $1
		ORDER BY mp.id`, maintenanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlanned(rows)
}

func (r *Repo) plannedPartsTx(ctx context.Context, tx pgx.Tx, maintenanceID int64) ([]PlannedPart, error) {
	rows, err := tx.Query(ctx, `
		SELECT `+plannedCols+`
		FROM manutencao_pecas mp
		JOIN pecas p ON p.id = mp.peca_id
		WHERE mp.manutencao_id = $1
		ORDER BY mp.id`, maintenanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlanned(rows)
}

func collectPlanned(rows pgx.Rows) ([]PlannedPart, error) {
	var out []PlannedPart
	for rows.Next() {
		pp, err := scanPlanned(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *pp)
	}
	return out, rows.Err()
}

func (r *Repo) removePlannedPart(ctx context.Context, maintenanceID, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM manutencao_pecas WHERE id = $1 AND manutencao_id = $2`, id, maintenanceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// insertPlannedPartsTx appends lines to the bill of materials. Each insert
// pulls the part's current price unless the caller fixed one, and fails when
// the part does not belong to the company.
func (r *Repo) insertPlannedPartsTx(ctx context.Context, tx pgx.Tx, maintenanceID, companyID int64, uses []PartUse) error {
	for _, u := range uses {
		tag, err := tx.Exec(ctx, `
			INSERT INTO manutencao_pecas (manutencao_id, peca_id, quantidade, preco_unitario)
			SELECT $1, p.id, $2, COALESCE($3::numeric, p.preco_unitario)
			FROM pecas p
			WHERE p.id = $4 AND p.empresa_id = $5`,
			maintenanceID, u.Qty, u.UnitPrice, u.PartID, companyID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return &ValidationError{Field: "peca_id", Msg: fmt.Sprintf("part %d not found in this company", u.PartID)}
		}
	}
	return nil
}

// replacePlannedPartsTx swaps the bill of materials for what was actually used.
func (r *Repo) replacePlannedPartsTx(ctx context.Context, tx pgx.Tx, maintenanceID, companyID int64, uses []PartUse) error {
	if _, err := tx.Exec(ctx, `DELETE FROM manutencao_pecas WHERE manutencao_id = $1`, maintenanceID); err != nil {
		return err
	}
	return r.insertPlannedPartsTx(ctx, tx, maintenanceID, companyID, uses)
}

/* Labor lines */

const serviceItemCols = `
	id, manutencao_id, servico_id, nome_servico, COALESCE(descricao,''), quantidade,
	valor_unitario, subtotal, COALESCE(observacoes,''), created_at`

func scanServiceItem(row pgx.Row) (*ServiceItem, error) {
	var si ServiceItem
	if err := row.Scan(
		&si.ID,
		&si.MaintenanceID,
		&si.ServiceID,
		&si.Name,
		&si.Description,
		&si.Qty,
		&si.UnitPrice,
		&si.Subtotal,
		&si.Notes,
		&si.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &si, nil
}

func (r *Repo) addServiceItem(ctx context.Context, maintenanceID int64, serviceID *int64, name string, qty, price float64, notes string) (*ServiceItem, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO manutencao_servicos (manutencao_id, servico_id, nome_servico, quantidade, valor_unitario, observacoes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING`+serviceItemCols,
		maintenanceID, serviceID, name, qty, price, notes)
	return scanServiceItem(row)
}

func (r *Repo) ServiceItems(ctx context.Context, maintenanceID int64) ([]ServiceItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+serviceItemCols+` FROM manutencao_servicos WHERE manutencao_id = $1 ORDER BY id`,
		maintenanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServiceItems(rows)
}

func (r *Repo) serviceItemsTx(ctx context.Context, tx pgx.Tx, maintenanceID int64) ([]ServiceItem, error) {
	rows, err := tx.Query(ctx, `
		SELECT`+serviceItemCols+` FROM manutencao_servicos WHERE manutencao_id = $1 ORDER BY id`,
		maintenanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServiceItems(rows)
}

func collectServiceItems(rows pgx.Rows) ([]ServiceItem, error) {
	var out []ServiceItem
	for rows.Next() {
		si, err := scanServiceItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *si)
	}
	return out, rows.Err()
}
