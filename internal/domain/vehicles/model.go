package vehicles

import "time"

type Status string

const (
	StatusOperacional  Status = "Operacional"
	StatusEmManutencao Status = "Em Manutenção"
	StatusInativo      Status = "Inativo"
)

// MeasureUnit is what quilometragem counts: road vehicles run on km, stationary
// machines (generators, tractors) on engine hours.
type MeasureUnit string

const (
	UnitKM    MeasureUnit = "km"
	UnitHoras MeasureUnit = "horas"
)

type Vehicle struct {
	ID              int64
	CompanyID       int64
	ClientID        *int64 // set when the vehicle belongs to a client, not the fleet
	Kind            string // Caminhão, Van, Empilhadeira...
	Plate           string
	Model           string
	Brand           string
	Year            int
	CurrentKM       int
	MeasureUnit     MeasureUnit
	LastMaintenance *time.Time
	NextMaintenance *time.Time
	Status          Status
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
