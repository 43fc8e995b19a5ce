package serviceorders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frotaops/frota-core/internal/domain/companies"
	"github.com/frotaops/frota-core/internal/domain/maintenance"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const orderCols = `
	id, empresa_id, cliente_id, numero_os, status, COALESCE(valor_mao_obra,0),
	COALESCE(valor_pecas,0), COALESCE(valor_servicos,0), COALESCE(valor_total,0),
	data_abertura, data_conclusao, COALESCE(observacoes,''), COALESCE(observacoes_internas,''),
	created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	if err := row.Scan(
		&o.ID,
		&o.CompanyID,
		&o.ClientID,
		&o.Number,
		&o.Status,
		&o.LaborValue,
		&o.PartsValue,
		&o.ServicesValue,
		&o.TotalValue,
		&o.OpenedAt,
		&o.ClosedAt,
		&o.Notes,
		&o.InternalNotes,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Open creates an order numbered OS-<year>-<id>. The id is drawn from the
// sequence up front so the number is unique without a second round trip.
// Only SERVICO and HIBRIDO operations bill through orders.
func (r *Repo) Open(ctx context.Context, companyID, clientID int64, notes string) (*Order, error) {
	var op companies.Operation
	err := r.pool.QueryRow(ctx, `SELECT tipo_operacao FROM empresas WHERE id = $1`, companyID).Scan(&op)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("empresa %d not found", companyID)
	}
	if err != nil {
		return nil, err
	}
	if !op.ServiceOrdersEnabled() {
		return nil, fmt.Errorf("empresa %d (%s): %w", companyID, op, ErrOrdersDisabled)
	}

	row := r.pool.QueryRow(ctx, `
		WITH seq AS (
			SELECT nextval(pg_get_serial_sequence('ordens_servico','id')) AS nv
		)
		INSERT INTO ordens_servico (id, empresa_id, cliente_id, numero_os, observacoes)
		SELECT nv, $1, $2, 'OS-' || to_char(now(),'YYYY') || '-' || lpad(nv::text, 6, '0'), NULLIF($3,'')
		FROM seq
		WHERE EXISTS (SELECT 1 FROM clientes WHERE id = $2 AND empresa_id = $1 AND status = 'ATIVO')
		RETURNING`+orderCols, companyID, clientID, notes)
	o, err := scanOrder(row)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("cliente %d is not active in empresa %d", clientID, companyID)
	}
	return o, err
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+orderCols+` FROM ordens_servico WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return o, err
}

func (r *Repo) GetByNumber(ctx context.Context, number string) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+orderCols+` FROM ordens_servico WHERE numero_os = $1`, number)
	o, err := scanOrder(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return o, err
}

func (r *Repo) ListByCompany(ctx context.Context, companyID int64) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+orderCols+` FROM ordens_servico WHERE empresa_id = $1 ORDER BY data_abertura DESC, id DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Attach puts a maintenance event on the order and recomputes the order's
// status and totals in the same transaction.
func (r *Repo) Attach(ctx context.Context, orderID, maintenanceID int64) (*Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		return nil, fmt.Errorf("ordem %d: %w", orderID, ErrClosed)
	}

	var eventCompany int64
	var current *int64
	err = tx.QueryRow(ctx, `
		SELECT empresa_id, ordem_servico_id FROM manutencoes WHERE id = $1 FOR UPDATE`,
		maintenanceID).Scan(&eventCompany, &current)
	if err == pgx.ErrNoRows {
		return nil, &AttachError{OrderID: orderID, MaintenanceID: maintenanceID, Reason: "maintenance not found"}
	}
	if err != nil {
		return nil, err
	}
	if eventCompany != o.CompanyID {
		return nil, &AttachError{OrderID: orderID, MaintenanceID: maintenanceID, Reason: "different company"}
	}
	if current != nil && *current != orderID {
		return nil, &AttachError{OrderID: orderID, MaintenanceID: maintenanceID, Reason: "already on another order"}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE manutencoes SET ordem_servico_id = $1, cliente_id = COALESCE(cliente_id, $2) WHERE id = $3`,
		orderID, o.ClientID, maintenanceID); err != nil {
		return nil, err
	}
	if err := refreshTx(ctx, tx, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// Detach removes an event from an open order and recomputes it.
func (r *Repo) Detach(ctx context.Context, orderID, maintenanceID int64) (*Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.Terminal() {
		return nil, fmt.Errorf("ordem %d: %w", orderID, ErrClosed)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE manutencoes SET ordem_servico_id = NULL WHERE id = $1 AND ordem_servico_id = $2`,
		maintenanceID, orderID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, &AttachError{OrderID: orderID, MaintenanceID: maintenanceID, Reason: "not on this order"}
	}
	if err := refreshTx(ctx, tx, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// Refresh recomputes status and totals from the attached events. Call it
// after events transition.
func (r *Repo) Refresh(ctx context.Context, orderID int64) (*Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := lockOrder(ctx, tx, orderID); err != nil {
		return nil, err
	}
	if err := refreshTx(ctx, tx, orderID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

func lockOrder(ctx context.Context, tx pgx.Tx, orderID int64) (*Order, error) {
	row := tx.QueryRow(ctx, `SELECT`+orderCols+` FROM ordens_servico WHERE id = $1 FOR UPDATE`, orderID)
	o, err := scanOrder(row)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	return o, err
}

func refreshTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	rows, err := tx.Query(ctx, `SELECT status FROM manutencoes WHERE ordem_servico_id = $1`, orderID)
	if err != nil {
		return err
	}
	var statuses []maintenance.Status
	for rows.Next() {
		var st maintenance.Status
		if err := rows.Scan(&st); err != nil {
			rows.Close()
			return err
		}
		statuses = append(statuses, st)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}
	derived := DeriveStatus(statuses)

	var labor, partsSum, servicesSum float64
	err = tx.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT SUM(m.custo_mao_obra) FROM manutencoes m WHERE m.ordem_servico_id = $1), 0),
			COALESCE((SELECT SUM(mp.subtotal) FROM manutencao_pecas mp
				JOIN manutencoes m ON m.id = mp.manutencao_id WHERE m.ordem_servico_id = $1), 0),
			COALESCE((SELECT SUM(ms.subtotal) FROM manutencao_servicos ms
				JOIN manutencoes m ON m.id = ms.manutencao_id WHERE m.ordem_servico_id = $1), 0)`,
		orderID).Scan(&labor, &partsSum, &servicesSum)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE ordens_servico SET
			status = $2,
			valor_mao_obra = $3,
			valor_pecas = $4,
			valor_servicos = $5,
			data_conclusao = CASE WHEN $6 THEN COALESCE(data_conclusao, now()) ELSE NULL END
		WHERE id = $1`,
		orderID, derived, labor, partsSum, servicesSum, derived.Terminal())
	return err
}
