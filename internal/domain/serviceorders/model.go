package serviceorders

import "time"

// Status is derived from the attached maintenance events, never set by hand.
type Status string

const (
	StatusAberta     Status = "ABERTA"
	StatusEmExecucao Status = "EM_EXECUCAO"
	StatusConcluida  Status = "CONCLUIDA"
	StatusCancelada  Status = "CANCELADA"
)

func (s Status) Terminal() bool {
	return s == StatusConcluida || s == StatusCancelada
}

// Order groups one client's maintenance events into a billable unit.
type Order struct {
	ID            int64
	CompanyID     int64
	ClientID      int64
	Number        string
	Status        Status
	LaborValue    float64
	PartsValue    float64
	ServicesValue float64
	TotalValue    float64
	OpenedAt      time.Time
	ClosedAt      *time.Time
	Notes         string
	InternalNotes string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
