package parts

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frotaops/frota-core/internal/infra/metrics"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const partCols = `
	id, empresa_id, nome, COALESCE(codigo,''), COALESCE(descricao,''),
	COALESCE(veiculo_compativel,'Universal'),
	quantidade_estoque, estoque_minimo, COALESCE(preco_unitario,0),
	fornecedor_id, categoria_id, COALESCE(localizacao,''), ativo,
	data_cadastro, updated_at`

func scanPart(row pgx.Row) (*Part, error) {
	var p Part
	if err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.Name,
		&p.Code,
		&p.Description,
		&p.Compatible,
		&p.StockQty,
		&p.MinStock,
		&p.UnitPrice,
		&p.SupplierID,
		&p.CategoryID,
		&p.Location,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

/* Parts CRUD */

func (r *Repo) Create(ctx context.Context, p *Part) (*Part, error) {
	if p.StockQty < 0 {
		return nil, fmt.Errorf("initial stock must not be negative, got %d", p.StockQty)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO pecas (empresa_id, nome, codigo, descricao, veiculo_compativel,
			quantidade_estoque, estoque_minimo, preco_unitario, fornecedor_id, categoria_id, localizacao)
		VALUES ($1,$2,NULLIF($3,''),$4,COALESCE(NULLIF($5,''),'Universal'),$6,$7,$8,$9,$10,$11)
		RETURNING`+partCols,
		p.CompanyID, p.Name, p.Code, p.Description, p.Compatible, p.StockQty, p.MinStock,
		p.UnitPrice, p.SupplierID, p.CategoryID, p.Location)
	return scanPart(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Part, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+partCols+` FROM pecas WHERE id = $1`, id)
	p, err := scanPart(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *Repo) ListByCompany(ctx context.Context, companyID int64) ([]Part, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+partCols+` FROM pecas WHERE empresa_id = $1 AND ativo = TRUE ORDER BY nome`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParts(rows)
}

// ListLowStock returns active parts at or below their minimum, the shortest
// shelves first.
func (r *Repo) ListLowStock(ctx context.Context, companyID int64) ([]Part, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+partCols+`
		FROM pecas
		WHERE empresa_id = $1 AND ativo = TRUE AND quantidade_estoque <= estoque_minimo
		ORDER BY quantidade_estoque - estoque_minimo, nome`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParts(rows)
}

// ListCompatible returns active in-stock parts ranked for a vehicle:
// universal fits first, then brand, model and kind matches, everything else
// last. Empty search terms skip their rank.
func (r *Repo) ListCompatible(ctx context.Context, companyID int64, brand, model, kind string) ([]Part, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+partCols+`
		FROM pecas
		WHERE empresa_id = $1 AND ativo = TRUE AND quantidade_estoque > 0
		ORDER BY CASE
			WHEN LOWER(COALESCE(veiculo_compativel,'Universal')) = 'universal' THEN 1
			WHEN $2 <> '' AND veiculo_compativel ILIKE '%' || $2 || '%' THEN 2
			WHEN $3 <> '' AND veiculo_compativel ILIKE '%' || $3 || '%' THEN 3
			WHEN $4 <> '' AND veiculo_compativel ILIKE '%' || $4 || '%' THEN 4
			ELSE 5
		END, nome`, companyID, brand, model, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectParts(rows)
}

func collectParts(rows pgx.Rows) ([]Part, error) {
	var out []Part
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) Deactivate(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE pecas SET ativo = FALSE WHERE id = $1`, id)
	return err
}

/* Stock movements */

// ConsumeTx deducts qty inside the caller's transaction. The row is locked
// first, so concurrent consumers serialize and the non-negative check holds
// under load. The movement lands in historico_estoque in the same commit.
func (r *Repo) ConsumeTx(ctx context.Context, tx pgx.Tx, partID int64, qty int, reason, user string, maintenanceID *int64) (*Part, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonPositiveQty, qty)
	}
	p, err := lockPart(ctx, tx, partID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, fmt.Errorf("peca %d: %w", partID, ErrPartInactive)
	}
	if p.StockQty < qty {
		return nil, &InsufficientStockError{PartID: partID, Requested: qty, Available: p.StockQty}
	}
	if err := move(ctx, tx, p, OpSaida, -qty, reason, user, maintenanceID); err != nil {
		return nil, err
	}
	metrics.StockConsumed.Add(float64(qty))
	p.StockQty -= qty
	return p, nil
}

// RestockTx adds qty inside the caller's transaction.
func (r *Repo) RestockTx(ctx context.Context, tx pgx.Tx, partID int64, qty int, reason, user string) (*Part, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNonPositiveQty, qty)
	}
	p, err := lockPart(ctx, tx, partID)
	if err != nil {
		return nil, err
	}
	if err := move(ctx, tx, p, OpEntrada, qty, reason, user, nil); err != nil {
		return nil, err
	}
	metrics.StockRestocked.Add(float64(qty))
	p.StockQty += qty
	return p, nil
}

// AdjustTx sets the absolute quantity, recording the difference as AJUSTE.
// Used for physical recounts.
func (r *Repo) AdjustTx(ctx context.Context, tx pgx.Tx, partID, newQty int64, reason, user string) (*Part, error) {
	if newQty < 0 {
		return nil, fmt.Errorf("adjusted stock must not be negative, got %d", newQty)
	}
	p, err := lockPart(ctx, tx, partID)
	if err != nil {
		return nil, err
	}
	delta := int(newQty) - p.StockQty
	if delta == 0 {
		return p, nil
	}
	if err := move(ctx, tx, p, OpAjuste, delta, reason, user, nil); err != nil {
		return nil, err
	}
	p.StockQty = int(newQty)
	return p, nil
}

func lockPart(ctx context.Context, tx pgx.Tx, partID int64) (*Part, error) {
	row := tx.QueryRow(ctx, `SELECT`+partCols+` FROM pecas WHERE id = $1 FOR UPDATE`, partID)
	p, err := scanPart(row)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("peca %d: %w", partID, ErrPartNotFound)
	}
	return p, err
}

func move(ctx context.Context, tx pgx.Tx, p *Part, op MovementOp, delta int, reason, user string, maintenanceID *int64) error {
	if _, err := tx.Exec(ctx, `
		UPDATE pecas SET quantidade_estoque = quantidade_estoque + $2 WHERE id = $1`,
		p.ID, delta); err != nil {
		return err
	}
	if user == "" {
		user = "Sistema"
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO historico_estoque (peca_id, operacao, quantidade_anterior, quantidade_movimento, quantidade_nova, motivo, usuario, manutencao_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, op, p.StockQty, delta, p.StockQty+delta, reason, user, maintenanceID)
	return err
}

// Consume is the standalone form: one part, one transaction.
func (r *Repo) Consume(ctx context.Context, partID int64, qty int, reason, user string) (*Part, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := r.ConsumeTx(ctx, tx, partID, qty, reason, user, nil)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) Restock(ctx context.Context, partID int64, qty int, reason, user string) (*Part, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := r.RestockTx(ctx, tx, partID, qty, reason, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) Adjust(ctx context.Context, partID, newQty int64, reason, user string) (*Part, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := r.AdjustTx(ctx, tx, partID, newQty, reason, user)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// ListMovements returns the audit trail for one part, newest first.
func (r *Repo) ListMovements(ctx context.Context, partID int64, limit int) ([]Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, peca_id, operacao, quantidade_anterior, quantidade_movimento, quantidade_nova,
			COALESCE(motivo,''), COALESCE(usuario,'Sistema'), manutencao_id, data_operacao
		FROM historico_estoque
		WHERE peca_id = $1
		ORDER BY id DESC
		LIMIT $2`, partID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(
			&m.ID,
			&m.PartID,
			&m.Op,
			&m.QtyBefore,
			&m.QtyMoved,
			&m.QtyAfter,
			&m.Reason,
			&m.User,
			&m.MaintenanceID,
			&m.At,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
