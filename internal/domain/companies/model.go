package companies

import "time"

// Operation defines what a company does with the system: run its own fleet,
// service third-party vehicles, or both.
type Operation string

const (
	OperationFrota   Operation = "FROTA"
	OperationServico Operation = "SERVICO"
	OperationHibrido Operation = "HIBRIDO"
)

func (o Operation) Valid() bool {
	switch o {
	case OperationFrota, OperationServico, OperationHibrido:
		return true
	}
	return false
}

type Company struct {
	ID           int64
	Name         string
	TradeName    string
	CNPJ         string
	Phone        string
	Email        string
	Address      string
	City         string
	State        string
	ZIP          string
	Plan         string
	VehicleLimit int
	UserLimit    int
	ClientLimit  int
	Operation    Operation
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
