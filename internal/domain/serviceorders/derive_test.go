package serviceorders

import (
	"testing"

	"github.com/frotaops/frota-core/internal/domain/maintenance"
)

func TestDeriveStatus(t *testing.T) {
	ag := maintenance.StatusAgendada
	ea := maintenance.StatusEmAndamento
	co := maintenance.StatusConcluida
	ca := maintenance.StatusCancelada

	cases := []struct {
		name   string
		events []maintenance.Status
		want   Status
	}{
		{"empty", nil, StatusAberta},
		{"single scheduled", []maintenance.Status{ag}, StatusAberta},
		{"single running", []maintenance.Status{ea}, StatusEmExecucao},
		{"running wins over completed", []maintenance.Status{co, ea}, StatusEmExecucao},
		{"running wins over scheduled", []maintenance.Status{ag, ea}, StatusEmExecucao},
		{"scheduled holds it open", []maintenance.Status{ag, co}, StatusAberta},
		{"all completed", []maintenance.Status{co, co}, StatusConcluida},
		{"completed and cancelled", []maintenance.Status{co, ca}, StatusConcluida},
		{"all cancelled", []maintenance.Status{ca, ca}, StatusCancelada},
		{"single cancelled", []maintenance.Status{ca}, StatusCancelada},
	}
	for _, c := range cases {
		if got := DeriveStatus(c.events); got != c.want {
			t.Errorf("%s: DeriveStatus = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusConcluida.Terminal() || !StatusCancelada.Terminal() {
		t.Error("CONCLUIDA and CANCELADA are terminal")
	}
	if StatusAberta.Terminal() || StatusEmExecucao.Terminal() {
		t.Error("ABERTA and EM_EXECUCAO are not terminal")
	}
}
