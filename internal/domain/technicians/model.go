package technicians

import "time"

type Technician struct {
	ID        int64
	CompanyID int64
	Name      string
	Phone     string
	Email     string
	Specialty string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
