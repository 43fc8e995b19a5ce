package parts

import (
	"context"

	"github.com/jackc/pgx/v5"
)

/* Categories */

const categoryCols = `
	id, empresa_id, nome, COALESCE(descricao,''), cor, icone, ativo, created_at, updated_at`

func scanCategory(row pgx.Row) (*Category, error) {
	var c Category
	if err := row.Scan(
		&c.ID,
		&c.CompanyID,
		&c.Name,
		&c.Description,
		&c.Color,
		&c.Icon,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) CreateCategory(ctx context.Context, companyID int64, name, description string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categorias_pecas (empresa_id, nome, descricao)
		VALUES ($1,$2,$3)
		RETURNING`+categoryCols, companyID, name, description)
	return scanCategory(row)
}

func (r *Repo) ListCategories(ctx context.Context, companyID int64) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+categoryCols+`
		FROM categorias_pecas
		WHERE empresa_id = $1 AND ativo = TRUE
		ORDER BY nome`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *Repo) SetPartCategory(ctx context.Context, partID int64, categoryID *int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE pecas SET categoria_id = $2 WHERE id = $1`, partID, categoryID)
	return err
}
