package suppliers

import "time"

type Supplier struct {
	ID        int64
	CompanyID int64
	Name      string
	CNPJ      string
	Phone     string
	Email     string
	Address   string
	Contact   string
	Specialty string // what they supply: "Pneus", "Elétrica"...
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
