package migrate

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateRejectsNonAscendingVersions(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"SELECT 1"}, Down: []string{"SELECT 1"}},
		{Version: 3, Name: "b", Up: []string{"SELECT 1"}, Down: []string{"SELECT 1"}},
		{Version: 2, Name: "c", Up: []string{"SELECT 1"}, Down: []string{"SELECT 1"}},
	}
	if err := validate(migs); err == nil {
		t.Fatal("expected error for out-of-order versions")
	}
}

func TestValidateRejectsDuplicateVersions(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"SELECT 1"}, Down: []string{"SELECT 1"}},
		{Version: 1, Name: "b", Up: []string{"SELECT 1"}, Down: []string{"SELECT 1"}},
	}
	if err := validate(migs); err == nil {
		t.Fatal("expected error for duplicate versions")
	}
}

func TestValidateRejectsMissingDown(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"SELECT 1"}},
	}
	if err := validate(migs); err == nil {
		t.Fatal("expected error for migration without down statements")
	}
}

func TestValidateRejectsEmptyRegistry(t *testing.T) {
	if err := validate(nil); err == nil {
		t.Fatal("expected error for empty registry")
	}
}

func TestPendingSkipsApplied(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 2, Name: "b", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 3, Name: "c", Up: []string{"x"}, Down: []string{"x"}},
	}
	got := pending(migs, map[int64]bool{1: true, 3: true})
	if len(got) != 1 || got[0].Version != 2 {
		t.Fatalf("pending = %+v, want only version 2", got)
	}
}

func TestPendingKeepsAscendingOrder(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 2, Name: "b", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 3, Name: "c", Up: []string{"x"}, Down: []string{"x"}},
	}
	got := pending(migs, nil)
	for i := 1; i < len(got); i++ {
		if got[i].Version <= got[i-1].Version {
			t.Fatalf("pending not ascending: %d before %d", got[i-1].Version, got[i].Version)
		}
	}
}

func TestRollbackPlanDescendingAboveTarget(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 2, Name: "b", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 3, Name: "c", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 4, Name: "d", Up: []string{"x"}, Down: []string{"x"}},
	}
	plan, err := rollbackPlan(migs, []int64{1, 2, 3, 4}, 2)
	if err != nil {
		t.Fatalf("rollbackPlan: %v", err)
	}
	if len(plan) != 2 || plan[0].Version != 4 || plan[1].Version != 3 {
		t.Fatalf("plan = %+v, want versions 4 then 3", plan)
	}
}

func TestRollbackPlanEmptyWhenTargetIsHead(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"x"}, Down: []string{"x"}},
		{Version: 2, Name: "b", Up: []string{"x"}, Down: []string{"x"}},
	}
	plan, err := rollbackPlan(migs, []int64{1, 2}, 2)
	if err != nil {
		t.Fatalf("rollbackPlan: %v", err)
	}
	if len(plan) != 0 {
		t.Fatalf("plan = %+v, want empty", plan)
	}
}

func TestRollbackPlanFailsOnUnknownAppliedVersion(t *testing.T) {
	migs := []Migration{
		{Version: 1, Name: "a", Up: []string{"x"}, Down: []string{"x"}},
	}
	if _, err := rollbackPlan(migs, []int64{1, 7}, 0); err == nil {
		t.Fatal("expected error for applied version missing from registry")
	}
}

func TestMigrationErrorUnwrap(t *testing.T) {
	inner := errors.New("relation already exists")
	err := &MigrationError{Version: 3, Name: "create_clientes", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("MigrationError should unwrap to the inner error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "3") || !strings.Contains(msg, "create_clientes") {
		t.Fatalf("error message %q should carry version and name", msg)
	}
}

func TestRegistryIsWellFormed(t *testing.T) {
	if err := validate(All); err != nil {
		t.Fatalf("registry invalid: %v", err)
	}
	for i, m := range All {
		if want := int64(i + 1); m.Version != want {
			t.Fatalf("registry version at index %d = %d, want %d", i, m.Version, want)
		}
	}
}

func TestRegistryStatementsAreGuarded(t *testing.T) {
	// CREATE TABLE / CREATE INDEX must be re-runnable after a crashed ledger
	// write, so they carry IF NOT EXISTS.
	for _, m := range All {
		for _, stmt := range m.Up {
			up := strings.ToUpper(stmt)
			if strings.HasPrefix(strings.TrimSpace(up), "CREATE TABLE") && !strings.Contains(up, "IF NOT EXISTS") {
				t.Errorf("migration %d: CREATE TABLE without IF NOT EXISTS", m.Version)
			}
			if strings.HasPrefix(strings.TrimSpace(up), "CREATE INDEX") && !strings.Contains(up, "IF NOT EXISTS") {
				t.Errorf("migration %d: CREATE INDEX without IF NOT EXISTS", m.Version)
			}
		}
		for _, stmt := range m.Down {
			up := strings.ToUpper(stmt)
			if strings.HasPrefix(strings.TrimSpace(up), "DROP TABLE") && !strings.Contains(up, "IF EXISTS") {
				t.Errorf("migration %d: DROP TABLE without IF EXISTS", m.Version)
			}
		}
	}
}
