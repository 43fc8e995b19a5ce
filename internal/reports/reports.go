// Package reports aggregates completed maintenance and current stock into the
// numbers the dashboard and the Excel export show. Reads only.
package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Filter narrows aggregates to a date window and/or a single vehicle. Nil
// fields mean no restriction.
type Filter struct {
	From      *time.Time
	To        *time.Time
	VehicleID *int64
}

type MonthlyCost struct {
	Month string // YYYY-MM
	Total float64
}

type VehicleRank struct {
	Plate string
	Model string
	Count int
	Total float64
}

type TypeCount struct {
	Type  string
	Count int
}

type Summary struct {
	Total   float64
	Average float64
	Count   int
}

type StockValuation struct {
	Parts int
	Units int
	Value float64
}

// CompletedRow is one line of the maintenance export.
type CompletedRow struct {
	ID            int64
	Vehicle       string
	Type          string
	ScheduledDate time.Time
	CompletedDate time.Time
	Technician    string
	Total         float64
}

// MonthlyCosts returns cost totals per completion month, newest first, at most
// twelve months.
func (r *Repo) MonthlyCosts(ctx context.Context, companyID int64, f Filter) ([]MonthlyCost, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(data_realizada, 'YYYY-MM') AS mes, COALESCE(SUM(custo_total), 0)
		FROM manutencoes
		WHERE empresa_id = $1 AND data_realizada IS NOT NULL
		  AND ($2::date IS NULL OR data_realizada >= $2)
		  AND ($3::date IS NULL OR data_realizada <= $3)
		  AND ($4::bigint IS NULL OR veiculo_id = $4)
		GROUP BY mes
		ORDER BY mes DESC
		LIMIT 12`,
		companyID, f.From, f.To, f.VehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyCost
	for rows.Next() {
		var m MonthlyCost
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TopVehicles ranks the company's vehicles by completed maintenance count.
// Vehicles with no work yet still appear with zero.
func (r *Repo) TopVehicles(ctx context.Context, companyID int64, f Filter, limit int) ([]VehicleRank, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT v.placa, v.modelo, COUNT(m.id), COALESCE(SUM(m.custo_total), 0)
		FROM veiculos v
		LEFT JOIN manutencoes m ON m.veiculo_id = v.id AND m.data_realizada IS NOT NULL
			AND ($2::date IS NULL OR m.data_realizada >= $2)
			AND ($3::date IS NULL OR m.data_realizada <= $3)
		WHERE v.empresa_id = $1
		  AND ($4::bigint IS NULL OR v.id = $4)
		GROUP BY v.id, v.placa, v.modelo
		ORDER BY COUNT(m.id) DESC, v.placa
		LIMIT $5`,
		companyID, f.From, f.To, f.VehicleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []VehicleRank
	for rows.Next() {
		var v VehicleRank
		if err := rows.Scan(&v.Plate, &v.Model, &v.Count, &v.Total); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// TypeDistribution counts completed maintenances per type, most frequent first.
func (r *Repo) TypeDistribution(ctx context.Context, companyID int64, f Filter) ([]TypeCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tipo, COUNT(*)
		FROM manutencoes
		WHERE empresa_id = $1 AND data_realizada IS NOT NULL
		  AND ($2::date IS NULL OR data_realizada >= $2)
		  AND ($3::date IS NULL OR data_realizada <= $3)
		  AND ($4::bigint IS NULL OR veiculo_id = $4)
		GROUP BY tipo
		ORDER BY COUNT(*) DESC`,
		companyID, f.From, f.To, f.VehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TypeCount
	for rows.Next() {
		var t TypeCount
		if err := rows.Scan(&t.Type, &t.Count); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Totals fills the summary card: total spent, average per maintenance, count.
func (r *Repo) Totals(ctx context.Context, companyID int64, f Filter) (*Summary, error) {
	var s Summary
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(custo_total), 0), COALESCE(AVG(custo_total), 0), COUNT(*)
		FROM manutencoes
		WHERE empresa_id = $1 AND data_realizada IS NOT NULL
		  AND ($2::date IS NULL OR data_realizada >= $2)
		  AND ($3::date IS NULL OR data_realizada <= $3)
		  AND ($4::bigint IS NULL OR veiculo_id = $4)`,
		companyID, f.From, f.To, f.VehicleID).Scan(&s.Total, &s.Average, &s.Count)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Stock values the active inventory at unit price.
func (r *Repo) Stock(ctx context.Context, companyID int64) (*StockValuation, error) {
	var s StockValuation
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(quantidade_estoque), 0),
			COALESCE(SUM(preco_unitario * quantidade_estoque), 0)
		FROM pecas
		WHERE empresa_id = $1 AND ativo = TRUE`,
		companyID).Scan(&s.Parts, &s.Units, &s.Value)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Completed lists the rows of the maintenance export, newest first.
func (r *Repo) Completed(ctx context.Context, companyID int64, f Filter) ([]CompletedRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id,
			COALESCE(v.placa || ' - ' || v.modelo, ''),
			m.tipo,
			m.data_agendada,
			m.data_realizada,
			COALESCE(m.tecnico, ''),
			COALESCE(m.custo_total, 0)
		FROM manutencoes m
		LEFT JOIN veiculos v ON v.id = m.veiculo_id
		WHERE m.empresa_id = $1 AND m.data_realizada IS NOT NULL
		  AND ($2::date IS NULL OR m.data_realizada >= $2)
		  AND ($3::date IS NULL OR m.data_realizada <= $3)
		  AND ($4::bigint IS NULL OR m.veiculo_id = $4)
		ORDER BY m.data_realizada DESC, m.id DESC`,
		companyID, f.From, f.To, f.VehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CompletedRow
	for rows.Next() {
		var c CompletedRow
		if err := rows.Scan(&c.ID, &c.Vehicle, &c.Type, &c.ScheduledDate, &c.CompletedDate, &c.Technician, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
