package technicians

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const technicianCols = `
	id, empresa_id, nome, COALESCE(telefone,''), COALESCE(email,''),
	COALESCE(especialidade,''), ativo, data_cadastro, updated_at`

func scanTechnician(row pgx.Row) (*Technician, error) {
	var t Technician
	if err := row.Scan(
		&t.ID,
		&t.CompanyID,
		&t.Name,
		&t.Phone,
		&t.Email,
		&t.Specialty,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repo) Create(ctx context.Context, t *Technician) (*Technician, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tecnicos (empresa_id, nome, telefone, email, especialidade)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING`+technicianCols,
		t.CompanyID, t.Name, t.Phone, t.Email, t.Specialty)
	return scanTechnician(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Technician, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+technicianCols+` FROM tecnicos WHERE id = $1`, id)
	t, err := scanTechnician(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *Repo) ListActive(ctx context.Context, companyID int64) ([]Technician, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+technicianCols+` FROM tecnicos WHERE empresa_id = $1 AND ativo = TRUE ORDER BY nome`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Technician
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *Repo) Deactivate(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE tecnicos SET ativo = FALSE WHERE id = $1`, id)
	return err
}
