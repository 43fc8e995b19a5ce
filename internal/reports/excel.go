package reports

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// MaintenanceReport bundles everything the export sheet shows.
type MaintenanceReport struct {
	GeneratedAt time.Time
	Rows        []CompletedRow
	Summary     Summary
	Monthly     []MonthlyCost
	Types       []TypeCount
}

// BuildMaintenanceReport runs the aggregate queries for one company.
func (r *Repo) BuildMaintenanceReport(ctx context.Context, companyID int64, f Filter) (*MaintenanceReport, error) {
	rows, err := r.Completed(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	sum, err := r.Totals(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	monthly, err := r.MonthlyCosts(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	types, err := r.TypeDistribution(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	return &MaintenanceReport{
		GeneratedAt: time.Now(),
		Rows:        rows,
		Summary:     *sum,
		Monthly:     monthly,
		Types:       types,
	}, nil
}

// WriteExcel renders the report as a single-sheet workbook.
func WriteExcel(rep *MaintenanceReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"ID",
		"Veículo",
		"Tipo",
		"Data Agendada",
		"Data Realizada",
		"Técnico",
		"Custo Total",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("header row: %w", err)
	}

	row := 2
	for _, m := range rep.Rows {
		excelRow := []interface{}{
			m.ID,
			m.Vehicle,
			m.Type,
			m.ScheduledDate.Format("02/01/2006"),
			m.CompletedDate.Format("02/01/2006"),
			m.Technician,
			m.Total,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++
	}

	// Summary block, one blank row below the data.
	row++
	for _, line := range [][]interface{}{
		{"Manutenções concluídas", rep.Summary.Count},
		{"Custo total", rep.Summary.Total},
		{"Custo médio", rep.Summary.Average},
		{"Gerado em", rep.GeneratedAt.Format("02/01/2006 15:04")},
	} {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("summary row %d: %w", row, err)
		}
		l := line
		if err := f.SetSheetRow(sheet, cell, &l); err != nil {
			return nil, fmt.Errorf("summary row %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// Save writes the workbook under dir and returns the full path.
func Save(rep *MaintenanceReport, dir string) (string, error) {
	buf, err := WriteExcel(rep)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("relatorio_manutencoes_%s.xlsx", rep.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
