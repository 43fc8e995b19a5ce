package migrate

import (
	"errors"
	"fmt"
)

// ErrLockHeld is returned when another process already holds the schema lock.
var ErrLockHeld = errors.New("schema lock held by another process")

// MigrationError identifies the exact unit that broke a forward or backward run.
type MigrationError struct {
	Version int64
	Name    string
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %d (%s): %v", e.Version, e.Name, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }
