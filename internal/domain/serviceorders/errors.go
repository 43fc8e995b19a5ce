package serviceorders

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("service order not found")
	ErrClosed         = errors.New("service order is closed")
	ErrOrdersDisabled = errors.New("operation type does not bill through service orders")
)

// AttachError explains why a maintenance event cannot join an order.
type AttachError struct {
	OrderID       int64
	MaintenanceID int64
	Reason        string
}

func (e *AttachError) Error() string {
	return fmt.Sprintf("ordem %d: cannot attach manutencao %d: %s", e.OrderID, e.MaintenanceID, e.Reason)
}
