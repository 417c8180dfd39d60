package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// CommandTotal counts status-change commands issued to the fleet service.
	// result: success/failed, operation: assign/release/maintenance.
	CommandTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_console_commands_total",
			Help: "Total number of status-change commands issued to the fleet service.",
		},
		[]string{"operation", "result"},
	)

	// CommandLatency records the round-trip latency of status-change commands.
	CommandLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fleet_console_command_latency_seconds",
			Help:    "Latency of status-change commands against the fleet service.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// SnapshotRefreshTotal counts wholesale snapshot reloads from the fleet
	// service. result: success/failed, kind: vehicles/drivers.
	SnapshotRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_console_snapshot_refresh_total",
			Help: "Total number of snapshot reloads from the fleet service.",
		},
		[]string{"kind", "result"},
	)

	// NotificationsTotal counts notifications recorded on the bus, by type.
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_console_notifications_total",
			Help: "Total number of notifications recorded.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(CommandTotal)
	prometheus.MustRegister(CommandLatency)
	prometheus.MustRegister(SnapshotRefreshTotal)
	prometheus.MustRegister(NotificationsTotal)
}
