package maintenance

import (
	"strings"
	"testing"
	"time"
)

func TestNextMaintenanceDate(t *testing.T) {
	done := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	next := NextMaintenanceDate(done, 90)
	want := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("NextMaintenanceDate = %v, want %v", next, want)
	}
	// Time of day is dropped so the due date is a plain calendar day.
	if next.Hour() != 0 || next.Minute() != 0 {
		t.Fatalf("next date should be midnight, got %v", next)
	}
}

func TestTypeValid(t *testing.T) {
	for _, ty := range []Type{TypePreventiva, TypeCorretiva, TypeEmergencial} {
		if !ty.Valid() {
			t.Errorf("%s should be valid", ty)
		}
	}
	if Type("Estetica").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func TestValidatePartUses(t *testing.T) {
	if err := validatePartUses([]PartUse{{PartID: 1, Qty: 0}}); err == nil {
		t.Error("zero qty should fail")
	}
	neg := -1.0
	if err := validatePartUses([]PartUse{{PartID: 1, Qty: 2, UnitPrice: &neg}}); err == nil {
		t.Error("negative price should fail")
	}
	price := 12.5
	if err := validatePartUses([]PartUse{{PartID: 1, Qty: 2}, {PartID: 2, Qty: 1, UnitPrice: &price}}); err != nil {
		t.Errorf("valid uses rejected: %v", err)
	}
	if err := validatePartUses(nil); err != nil {
		t.Errorf("nil uses rejected: %v", err)
	}
}

func TestStateErrorMessages(t *testing.T) {
	trans := &StateError{EventID: 9, From: StatusConcluida, To: StatusEmAndamento}
	if msg := trans.Error(); !strings.Contains(msg, string(StatusConcluida)) || !strings.Contains(msg, string(StatusEmAndamento)) {
		t.Fatalf("transition message %q should carry both statuses", msg)
	}

	edit := &StateError{EventID: 9, From: StatusCancelada, Op: "add part"}
	if msg := edit.Error(); !strings.Contains(msg, "add part") || !strings.Contains(msg, string(StatusCancelada)) {
		t.Fatalf("edit message %q should carry the operation and status", msg)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "data_agendada", Msg: "must not be in the past"}
	if got := err.Error(); got != "data_agendada: must not be in the past" {
		t.Fatalf("Error() = %q", got)
	}
}
