package companies

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const companyCols = `
	id, nome, COALESCE(nome_fantasia,''), COALESCE(cnpj,''), COALESCE(telefone,''),
	COALESCE(email,''), COALESCE(endereco,''), COALESCE(cidade,''), COALESCE(estado,''),
	COALESCE(cep,''), plano, limite_veiculos, limite_usuarios, limite_clientes,
	tipo_operacao, ativo, data_criacao, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.TradeName,
		&c.CNPJ,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.City,
		&c.State,
		&c.ZIP,
		&c.Plan,
		&c.VehicleLimit,
		&c.UserLimit,
		&c.ClientLimit,
		&c.Operation,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, name, cnpj string, op Operation) (*Company, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO empresas (nome, cnpj, tipo_operacao)
		VALUES ($1, NULLIF($2,''), $3)
		RETURNING`+companyCols, name, cnpj, op)
	return scanCompany(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Company, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+companyCols+` FROM empresas WHERE id = $1`, id)
	c, err := scanCompany(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *Repo) ListActive(ctx context.Context) ([]Company, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+companyCols+` FROM empresas WHERE ativo = TRUE ORDER BY nome`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *Repo) SetOperation(ctx context.Context, id int64, op Operation) error {
	_, err := r.pool.Exec(ctx, `UPDATE empresas SET tipo_operacao = $2 WHERE id = $1`, id, op)
	return err
}

func (r *Repo) Deactivate(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE empresas SET ativo = FALSE WHERE id = $1`, id)
	return err
}
