package parts

import (
	"errors"
	"fmt"
)

var (
	ErrNonPositiveQty = errors.New("quantity must be positive")
	ErrPartInactive   = errors.New("part is inactive")
	ErrPartNotFound   = errors.New("part not found")
)

// InsufficientStockError carries the numbers so callers can tell the user how
// short the shelf is.
type InsufficientStockError struct {
	PartID    int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("peca %d: insufficient stock: requested %d, available %d",
		e.PartID, e.Requested, e.Available)
}
