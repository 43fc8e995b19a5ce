package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const serviceCols = `
	id, empresa_id, nome, COALESCE(descricao,''), COALESCE(preco_base,0),
	tempo_estimado_minutos, COALESCE(categoria,''), ativo, created_at, updated_at`

func scanService(row pgx.Row) (*Service, error) {
	var s Service
	if err := row.Scan(
		&s.ID,
		&s.CompanyID,
		&s.Name,
		&s.Description,
		&s.BasePrice,
		&s.EstimatedMinutes,
		&s.Category,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, s *Service) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO servicos (empresa_id, nome, descricao, preco_base, tempo_estimado_minutos, categoria)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING`+serviceCols,
		s.CompanyID, s.Name, s.Description, s.BasePrice, s.EstimatedMinutes, s.Category)
	return scanService(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Service, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+serviceCols+` FROM servicos WHERE id = $1`, id)
	s, err := scanService(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func (r *Repo) ListActive(ctx context.Context, companyID int64) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+serviceCols+` FROM servicos WHERE empresa_id = $1 AND ativo = TRUE ORDER BY nome`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *Repo) Deactivate(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE servicos SET ativo = FALSE WHERE id = $1`, id)
	return err
}
