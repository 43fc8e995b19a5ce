package migrate

import (
	"fmt"
	"sort"
)

// Migration is one versioned, reversible schema change. Up and Down hold
// ordered SQL statements; every statement must be safe to re-run (IF NOT
// EXISTS / IF EXISTS guards) so a half-applied unit can be retried after a
// crash without duplicate-object errors.
type Migration struct {
	Version int64
	Name    string
	Up      []string
	Down    []string
}

func validate(migs []Migration) error {
	if len(migs) == 0 {
		return fmt.Errorf("empty migration registry")
	}
	last := int64(0)
	for _, m := range migs {
		if m.Version <= last {
			return fmt.Errorf("migration versions must be strictly ascending: %d after %d", m.Version, last)
		}
		if m.Name == "" {
			return fmt.Errorf("migration %d has no name", m.Version)
		}
		if len(m.Up) == 0 || len(m.Down) == 0 {
			return fmt.Errorf("migration %d (%s) must define both up and down statements", m.Version, m.Name)
		}
		last = m.Version
	}
	return nil
}

// pending returns the registry entries whose version has no successful ledger
// row, keeping ascending order.
func pending(migs []Migration, applied map[int64]bool) []Migration {
	var out []Migration
	for _, m := range migs {
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out
}

// rollbackPlan returns the applied units above target, newest first. Every
// applied version above target must still exist in the registry, otherwise
// its Down statements are lost and the rollback cannot proceed.
func rollbackPlan(migs []Migration, applied []int64, target int64) ([]Migration, error) {
	byVersion := make(map[int64]Migration, len(migs))
	for _, m := range migs {
		byVersion[m.Version] = m
	}
	sorted := make([]int64, len(applied))
	copy(sorted, applied)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	var out []Migration
	for _, v := range sorted {
		if v <= target {
			continue
		}
		m, ok := byVersion[v]
		if !ok {
			return nil, fmt.Errorf("version %d is applied but missing from the registry", v)
		}
		out = append(out, m)
	}
	return out, nil
}
