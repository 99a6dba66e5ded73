package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enhancement metrics
var (
	AttachTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seekbar_attach_total",
			Help: "Total number of videos enhanced with a seek control",
		},
	)

	DetachTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seekbar_detach_total",
			Help: "Total number of enhancements torn down",
		},
	)

	AttachErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seekbar_attach_errors_total",
			Help: "Total number of enhancement attempts that faulted",
		},
	)

	EnhancedVideos = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seekbar_enhanced_videos",
			Help: "Number of videos currently carrying a seek control",
		},
	)
)

// Command and mutation metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seekbar_commands_total",
			Help: "Total number of playback commands by token and outcome",
		},
		[]string{"command", "outcome"},
	)

	MutationNodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seekbar_mutation_nodes_total",
			Help: "Total number of videos processed from childList mutations",
		},
		[]string{"action"}, // "attach", "detach"
	)
)

// Transport metrics
var (
	BridgeConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seekbar_bridge_connected",
			Help: "Whether a page bridge connection is currently established",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seekbar_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "path", "status"},
	)
)
