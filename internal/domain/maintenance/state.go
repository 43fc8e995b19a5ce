package maintenance

// AllowTransition is the status graph. Concluída and Cancelada are terminal:
// nothing leaves them, and a status never transitions to itself.
var AllowTransition = map[Status][]Status{
	StatusAgendada:    {StatusEmAndamento, StatusCancelada},
	StatusEmAndamento: {StatusConcluida, StatusCancelada},
	StatusConcluida:   {},
	StatusCancelada:   {},
}

// CanTransition reports whether from -> to is an edge of the graph.
func CanTransition(from, to Status) bool {
	for _, s := range AllowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether st is a known status with no way out.
func Terminal(st Status) bool {
	next, ok := AllowTransition[st]
	return ok && len(next) == 0
}
