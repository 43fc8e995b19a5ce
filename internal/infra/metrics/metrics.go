package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MigrationsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "migrate",
		Name:      "applied_total",
		Help:      "Schema migrations applied successfully.",
	})

	MigrationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "migrate",
		Name:      "failed_total",
		Help:      "Schema migrations that failed and halted the run.",
	})

	MigrationsRolledBack = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "migrate",
		Name:      "rolled_back_total",
		Help:      "Schema migrations reverted by rollback.",
	})

	MaintenanceTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "maintenance",
		Name:      "transitions_total",
		Help:      "Maintenance state transitions by target status.",
	}, []string{"to"})

	StockConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "inventory",
		Name:      "consumed_units_total",
		Help:      "Part units deducted from stock.",
	})

	StockRestocked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "inventory",
		Name:      "restocked_units_total",
		Help:      "Part units added to stock.",
	})

	LowStockAlerts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "inventory",
		Name:      "low_stock_alerts_total",
		Help:      "Low stock alerts emitted.",
	})

	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "frota",
		Subsystem: "sweep",
		Name:      "runs_total",
		Help:      "Periodic sweep executions.",
	})
)
