package services

import "time"

// Service is a catalog entry: named labor with a base price, reusable across
// maintenance events.
type Service struct {
	ID               int64
	CompanyID        int64
	Name             string
	Description      string
	BasePrice        float64
	EstimatedMinutes *int
	Category         string
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
