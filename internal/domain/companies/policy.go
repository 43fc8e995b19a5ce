package companies

/* Feature gates per operation type */

// FleetEnabled: the company tracks vehicles of its own.
func (o Operation) FleetEnabled() bool {
	return o == OperationFrota || o == OperationHibrido
}

// ClientsEnabled: the company registers external clients.
func (o Operation) ClientsEnabled() bool {
	return o == OperationServico || o == OperationHibrido
}

// ServiceOrdersEnabled: the company bills work through service orders.
func (o Operation) ServiceOrdersEnabled() bool {
	return o == OperationServico || o == OperationHibrido
}

// RequiresClientOnMaintenance: events must name the client being served.
// HIBRIDO accepts either a vehicle or a client, so only SERVICO forces it.
func (o Operation) RequiresClientOnMaintenance() bool {
	return o == OperationServico
}

// RequiresVehicleOnMaintenance: fleet-only companies always work on a vehicle.
func (o Operation) RequiresVehicleOnMaintenance() bool {
	return o == OperationFrota
}
