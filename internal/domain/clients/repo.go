package clients

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const clientCols = `
	id, empresa_id, nome, COALESCE(documento,''), COALESCE(tipo_documento,''),
	COALESCE(telefone,''), COALESCE(email,''), COALESCE(endereco,''), COALESCE(cidade,''),
	COALESCE(estado,''), COALESCE(cep,''), COALESCE(observacoes,''), status,
	created_at, updated_at`

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	if err := row.Scan(
		&c.ID,
		&c.CompanyID,
		&c.Name,
		&c.Document,
		&c.DocumentType,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.City,
		&c.State,
		&c.ZIP,
		&c.Notes,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, c *Client) (*Client, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO clientes (empresa_id, nome, documento, tipo_documento, telefone, email,
			endereco, cidade, estado, cep, observacoes)
		VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),$5,$6,$7,$8,$9,$10,$11)
		RETURNING`+clientCols,
		c.CompanyID, c.Name, c.Document, c.DocumentType, c.Phone, c.Email,
		c.Address, c.City, c.State, c.ZIP, c.Notes)
	return scanClient(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+clientCols+` FROM clientes WHERE id = $1`, id)
	c, err := scanClient(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *Repo) ListActive(ctx context.Context, companyID int64) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+clientCols+` FROM clientes WHERE empresa_id = $1 AND status = 'ATIVO' ORDER BY nome`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *Repo) SetStatus(ctx context.Context, id int64, status Status) error {
	_, err := r.pool.Exec(ctx, `UPDATE clientes SET status = $2 WHERE id = $1`, id, status)
	return err
}
