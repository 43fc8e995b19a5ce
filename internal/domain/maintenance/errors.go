package maintenance

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("maintenance not found")

// StateError is an action the status graph forbids: either a transition that
// is not an edge, or an edit (Op) on a closed event.
type StateError struct {
	EventID int64
	From    Status
	To      Status
	Op      string
}

func (e *StateError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("manutencao %d: cannot %s while %q", e.EventID, e.Op, e.From)
	}
	return fmt.Sprintf("manutencao %d: illegal transition %q -> %q", e.EventID, e.From, e.To)
}

// ValidationError rejects input before anything touches the database.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}
