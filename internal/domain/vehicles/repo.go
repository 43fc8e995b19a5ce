package vehicles

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const vehicleCols = `
	id, empresa_id, cliente_id, COALESCE(tipo,''), placa, COALESCE(modelo,''),
	COALESCE(marca,''), COALESCE(ano,0), COALESCE(quilometragem,0), unidade_medida,
	ultima_manutencao, proxima_manutencao, status, COALESCE(observacoes,''),
	data_cadastro, updated_at`

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	if err := row.Scan(
		&v.ID,
		&v.CompanyID,
		&v.ClientID,
		&v.Kind,
		&v.Plate,
		&v.Model,
		&v.Brand,
		&v.Year,
		&v.CurrentKM,
		&v.MeasureUnit,
		&v.LastMaintenance,
		&v.NextMaintenance,
		&v.Status,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) Create(ctx context.Context, v *Vehicle) (*Vehicle, error) {
	plate, err := CheckPlate(v.Plate)
	if err != nil {
		return nil, err
	}
	unit := v.MeasureUnit
	if unit == "" {
		unit = UnitKM
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO veiculos (empresa_id, cliente_id, tipo, placa, modelo, marca, ano, quilometragem, unidade_medida, status, observacoes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,'Operacional',$10)
		RETURNING`+vehicleCols,
		v.CompanyID, v.ClientID, v.Kind, plate, v.Model, v.Brand, v.Year, v.CurrentKM, unit, v.Notes)
	return scanVehicle(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Vehicle, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+vehicleCols+` FROM veiculos WHERE id = $1`, id)
	v, err := scanVehicle(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return v, err
}

func (r *Repo) GetByPlate(ctx context.Context, companyID int64, plate string) (*Vehicle, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+vehicleCols+` FROM veiculos WHERE empresa_id = $1 AND placa = $2`,
		companyID, NormalizePlate(plate))
	v, err := scanVehicle(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return v, err
}

func (r *Repo) ListByCompany(ctx context.Context, companyID int64) ([]Vehicle, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+vehicleCols+` FROM veiculos WHERE empresa_id = $1 ORDER BY placa`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status Status) error {
	_, err := r.pool.Exec(ctx, `UPDATE veiculos SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *Repo) SetKM(ctx context.Context, id int64, km int) error {
	_, err := r.pool.Exec(ctx, `UPDATE veiculos SET quilometragem = $2 WHERE id = $1`, id, km)
	return err
}

// SetMaintenanceDates stamps the completion that just happened and when the
// next one is due.
func (r *Repo) SetMaintenanceDates(ctx context.Context, id int64, last, next time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE veiculos SET ultima_manutencao = $2, proxima_manutencao = $3 WHERE id = $1`,
		id, last, next)
	return err
}

/* Tx variants, for callers updating the vehicle atomically with other rows */

func (r *Repo) SetStatusTx(ctx context.Context, tx pgx.Tx, id int64, status Status) error {
	_, err := tx.Exec(ctx, `UPDATE veiculos SET status = $2 WHERE id = $1`, id, status)
	return err
}

func (r *Repo) SetKMTx(ctx context.Context, tx pgx.Tx, id int64, km int) error {
	_, err := tx.Exec(ctx, `UPDATE veiculos SET quilometragem = GREATEST(quilometragem, $2) WHERE id = $1`, id, km)
	return err
}

func (r *Repo) SetMaintenanceDatesTx(ctx context.Context, tx pgx.Tx, id int64, last, next time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE veiculos SET ultima_manutencao = $2, proxima_manutencao = $3 WHERE id = $1`,
		id, last, next)
	return err
}

// ListOverdue returns vehicles whose next maintenance date passed, capped so
// one sweep cannot flood a company with alerts.
func (r *Repo) ListOverdue(ctx context.Context, companyID int64, now time.Time, limit int) ([]Vehicle, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+vehicleCols+`
		FROM veiculos
		WHERE empresa_id = $1 AND status <> 'Inativo'
		  AND proxima_manutencao IS NOT NULL AND proxima_manutencao <= $2
		ORDER BY proxima_manutencao
		LIMIT $3`, companyID, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}
