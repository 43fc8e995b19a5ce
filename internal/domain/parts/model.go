package parts

import "time"

// MovementOp mirrors the historico_estoque CHECK constraint.
type MovementOp string

const (
	OpEntrada MovementOp = "ENTRADA"
	OpSaida   MovementOp = "SAIDA"
	OpAjuste  MovementOp = "AJUSTE"
)

type Part struct {
	ID          int64
	CompanyID   int64
	Name        string
	Code        string
	Description string
	// Compatible is free text: a brand/model/kind hint, or "Universal" for
	// parts that fit everything.
	Compatible string
	StockQty   int
	MinStock   int
	UnitPrice  float64
	SupplierID *int64
	CategoryID *int64
	Location   string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LowStock reports whether the part sits at or below its minimum. The
// boundary itself counts: min 5 with 5 on the shelf already needs a reorder.
func (p *Part) LowStock() bool {
	return p.StockQty <= p.MinStock
}

type Movement struct {
	ID            int64
	PartID        int64
	Op            MovementOp
	QtyBefore     int
	QtyMoved      int
	QtyAfter      int
	Reason        string
	User          string
	MaintenanceID *int64
	At            time.Time
}

type Category struct {
	ID          int64
	CompanyID   int64
	Name        string
	Description string
	Color       string
	Icon        string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
