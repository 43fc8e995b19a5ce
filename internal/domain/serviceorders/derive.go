package serviceorders

import "github.com/frotaops/frota-core/internal/domain/maintenance"

// DeriveStatus folds the attached events into the order's status:
//
//   - nothing attached, or any event still Agendada and none running: ABERTA
//   - any event Em Andamento: EM_EXECUCAO
//   - every event closed, at least one Concluída: CONCLUIDA
//   - every event Cancelada: CANCELADA
func DeriveStatus(events []maintenance.Status) Status {
	if len(events) == 0 {
		return StatusAberta
	}
	running, completed, open := 0, 0, 0
	for _, st := range events {
		switch st {
		case maintenance.StatusEmAndamento:
			running++
		case maintenance.StatusConcluida:
			completed++
		case maintenance.StatusAgendada:
			open++
		}
	}
	switch {
	case running > 0:
		return StatusEmExecucao
	case open > 0:
		return StatusAberta
	case completed > 0:
		return StatusConcluida
	default:
		return StatusCancelada
	}
}
