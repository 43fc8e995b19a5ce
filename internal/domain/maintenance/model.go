package maintenance

import "time"

// Status values are stored as-is in manutencoes.status.
type Status string

const (
	StatusAgendada    Status = "Agendada"
	StatusEmAndamento Status = "Em Andamento"
	StatusConcluida   Status = "Concluída"
	StatusCancelada   Status = "Cancelada"
)

type Type string

const (
	TypePreventiva  Type = "Preventiva"
	TypeCorretiva   Type = "Corretiva"
	TypeEmergencial Type = "Emergencial"
)

func (t Type) Valid() bool {
	switch t {
	case TypePreventiva, TypeCorretiva, TypeEmergencial:
		return true
	}
	return false
}

// Event is one maintenance, scheduled or done. VehicleID is nil for bench
// work on client equipment; ClientID is nil for the company's own fleet.
type Event struct {
	ID             int64
	CompanyID      int64
	VehicleID      *int64
	ClientID       *int64
	ServiceOrderID *int64
	Type           Type
	Description    string
	ScheduledDate  time.Time
	CompletedDate  *time.Time
	LaborCost      float64
	ServicesTotal  float64
	TotalCost      float64
	Status         Status
	Technician     string
	Notes          string
	VehicleKM      *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PlannedPart is the bill of materials: what the job expects to use. Stock
// only moves when the event completes.
type PlannedPart struct {
	ID            int64
	MaintenanceID int64
	PartID        int64
	PartName      string
	Qty           int
	UnitPrice     float64
	Subtotal      float64
	Notes         string
	AddedAt       time.Time
}

// PartUse is one line of what a completion actually consumed. A nil UnitPrice
// takes the part's current price.
type PartUse struct {
	PartID    int64
	Qty       int
	UnitPrice *float64
}

// ServiceItem is a labor line on the event, priced independently of parts.
type ServiceItem struct {
	ID            int64
	MaintenanceID int64
	ServiceID     *int64
	Name          string
	Description   string
	Qty           float64
	UnitPrice     float64
	Subtotal      float64
	Notes         string
	CreatedAt     time.Time
}
