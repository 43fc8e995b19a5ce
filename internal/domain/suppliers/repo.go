package suppliers

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const supplierCols = `
	id, empresa_id, nome, COALESCE(cnpj,''), COALESCE(telefone,''), COALESCE(email,''),
	COALESCE(endereco,''), COALESCE(contato,''), COALESCE(especialidade,''), ativo,
	data_cadastro, updated_at`

func scanSupplier(row pgx.Row) (*Supplier, error) {
	var s Supplier
	if err := row.Scan(
		&s.ID,
		&s.CompanyID,
		&s.Name,
		&s.CNPJ,
		&s.Phone,
		&s.Email,
		&s.Address,
		&s.Contact,
		&s.Specialty,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, s *Supplier) (*Supplier, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO fornecedores (empresa_id, nome, cnpj, telefone, email, endereco, contato, especialidade)
		VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,$7,$8)
		RETURNING`+supplierCols,
		s.CompanyID, s.Name, s.CNPJ, s.Phone, s.Email, s.Address, s.Contact, s.Specialty)
	return scanSupplier(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Supplier, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+supplierCols+` FROM fornecedores WHERE id = $1`, id)
	s, err := scanSupplier(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func (r *Repo) ListActive(ctx context.Context, companyID int64) ([]Supplier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+supplierCols+` FROM fornecedores WHERE empresa_id = $1 AND ativo = TRUE ORDER BY nome`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *Repo) Deactivate(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE fornecedores SET ativo = FALSE WHERE id = $1`, id)
	return err
}

// Delete removes a supplier no part references. Referenced suppliers stay;
// deactivate those instead.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM fornecedores
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM pecas WHERE fornecedor_id = $1)`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
