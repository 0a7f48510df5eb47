package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notes_relay_active_rooms",
		Help: "Number of rooms with at least one connected client.",
	})

	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "notes_relay_connected_clients",
		Help: "Number of live websocket connections.",
	})

	UpdatesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notes_relay_updates_total",
		Help: "Update payloads accepted into room logs.",
	})

	BroadcastFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notes_relay_broadcast_failures_total",
		Help: "Clients dropped because their send queue was full.",
	})

	Replays = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notes_relay_replays_total",
		Help: "Room state snapshots replayed to joining clients.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
