package reports

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frotaops/frota-core/internal/domain/vehicles"
	"github.com/frotaops/frota-core/internal/pgtest"
)

func seedCompleted(t *testing.T, pool *pgxpool.Pool, companyID, vehicleID int64, tipo string, done time.Time, cost float64) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO manutencoes (empresa_id, veiculo_id, tipo, descricao, data_agendada,
			data_realizada, custo_total, status)
		VALUES ($1, $2, $3, 'seed', $4, $4, $5, 'Concluída')`,
		companyID, vehicleID, tipo, done, cost)
	if err != nil {
		t.Fatalf("seed completed maintenance: %v", err)
	}
}

func seedVehicle(t *testing.T, pool *pgxpool.Pool, companyID int64, plate string) int64 {
	t.Helper()
	v, err := vehicles.NewRepo(pool).Create(context.Background(), &vehicles.Vehicle{
		CompanyID: companyID,
		Plate:     plate,
		Brand:     "Volvo",
		Model:     "FH 540",
		Year:      2020,
	})
	if err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v.ID
}

func TestAggregatesOverCompletedWork(t *testing.T) {
	pool := pgtest.Pool(t)
	pgtest.Wipe(t, pool)
	ctx := context.Background()

	companyID := pgtest.Company(t, pool, "Transportes Report", "FROTA")
	v1 := seedVehicle(t, pool, companyID, "REP1A11")
	v2 := seedVehicle(t, pool, companyID, "REP2B22")
	seedVehicle(t, pool, companyID, "REP3C33") // never maintained

	may10 := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	may20 := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	jun01 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedCompleted(t, pool, companyID, v1, "Preventiva", may10, 100)
	seedCompleted(t, pool, companyID, v1, "Corretiva", may20, 50)
	seedCompleted(t, pool, companyID, v2, "Preventiva", jun01, 200)

	// A scheduled-only row never counts.
	if _, err := pool.Exec(ctx, `
		INSERT INTO manutencoes (empresa_id, veiculo_id, tipo, data_agendada, status)
		VALUES ($1, $2, 'Preventiva', $3, 'Agendada')`,
		companyID, v1, jun01); err != nil {
		t.Fatalf("seed scheduled maintenance: %v", err)
	}

	repo := NewRepo(pool)

	monthly, err := repo.MonthlyCosts(ctx, companyID, Filter{})
	if err != nil {
		t.Fatalf("monthly costs: %v", err)
	}
	if len(monthly) != 2 {
		t.Fatalf("got %d months, want 2", len(monthly))
	}
	if monthly[0].Month != "2025-06" || monthly[0].Total != 200 {
		t.Fatalf("newest month = %+v", monthly[0])
	}
	if monthly[1].Month != "2025-05" || monthly[1].Total != 150 {
		t.Fatalf("older month = %+v", monthly[1])
	}

	top, err := repo.TopVehicles(ctx, companyID, Filter{}, 10)
	if err != nil {
		t.Fatalf("top vehicles: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d ranked vehicles, want 3", len(top))
	}
	if top[0].Plate != "REP1A11" || top[0].Count != 2 || top[0].Total != 150 {
		t.Fatalf("rank 1 = %+v", top[0])
	}
	if top[2].Count != 0 || top[2].Total != 0 {
		t.Fatalf("idle vehicle should rank last with zero, got %+v", top[2])
	}

	types, err := repo.TypeDistribution(ctx, companyID, Filter{})
	if err != nil {
		t.Fatalf("type distribution: %v", err)
	}
	if len(types) != 2 || types[0].Type != "Preventiva" || types[0].Count != 2 {
		t.Fatalf("type distribution = %+v", types)
	}

	sum, err := repo.Totals(ctx, companyID, Filter{})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if sum.Count != 3 || sum.Total != 350 {
		t.Fatalf("summary = %+v", sum)
	}
	if math.Abs(sum.Average-350.0/3) > 0.01 {
		t.Fatalf("average = %v", sum.Average)
	}

	// Date filter keeps only June.
	filtered, err := repo.Totals(ctx, companyID, Filter{From: &jun01})
	if err != nil {
		t.Fatalf("filtered totals: %v", err)
	}
	if filtered.Count != 1 || filtered.Total != 200 {
		t.Fatalf("filtered summary = %+v", filtered)
	}

	// Vehicle filter keeps only v2.
	byVehicle, err := repo.Totals(ctx, companyID, Filter{VehicleID: &v2})
	if err != nil {
		t.Fatalf("vehicle totals: %v", err)
	}
	if byVehicle.Count != 1 || byVehicle.Total != 200 {
		t.Fatalf("vehicle summary = %+v", byVehicle)
	}

	rows, err := repo.Completed(ctx, companyID, Filter{})
	if err != nil {
		t.Fatalf("completed rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d export rows, want 3", len(rows))
	}
	if rows[0].Vehicle != "REP2B22 - FH 540" {
		t.Fatalf("newest row vehicle = %q", rows[0].Vehicle)
	}
}

func TestStockValuationCountsActivePartsOnly(t *testing.T) {
	pool := pgtest.Pool(t)
	pgtest.Wipe(t, pool)
	ctx := context.Background()

	companyID := pgtest.Company(t, pool, "Pecas Report", "FROTA")
	if _, err := pool.Exec(ctx, `
		INSERT INTO pecas (empresa_id, nome, codigo, quantidade_estoque, estoque_minimo, preco_unitario, ativo)
		VALUES ($1, 'Filtro', 'F1', 4, 2, 10.00, TRUE),
			($1, 'Correia', 'C1', 2, 1, 5.50, TRUE),
			($1, 'Obsoleta', 'O1', 9, 1, 99.00, FALSE)`,
		companyID); err != nil {
		t.Fatalf("seed parts: %v", err)
	}

	s, err := NewRepo(pool).Stock(ctx, companyID)
	if err != nil {
		t.Fatalf("stock valuation: %v", err)
	}
	if s.Parts != 2 || s.Units != 6 {
		t.Fatalf("valuation counts = %+v", s)
	}
	if math.Abs(s.Value-51) > 0.001 {
		t.Fatalf("valuation value = %v", s.Value)
	}
}
