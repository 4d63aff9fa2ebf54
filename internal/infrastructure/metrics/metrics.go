package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "personachat",
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "personachat",
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Turn outcomes per session mode
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "personachat",
			Subsystem: "server",
			Name:      "chat_turns_total",
			Help:      "Total chat turns processed, by session mode and outcome",
		},
		[]string{"mode", "status"},
	)

	// Completion gateway calls
	ProviderCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "personachat",
			Subsystem: "server",
			Name:      "provider_calls_total",
			Help:      "Total completion provider calls, by outcome",
		},
		[]string{"status"},
	)

	// Completion gateway latency
	ProviderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "personachat",
			Subsystem: "server",
			Name:      "provider_duration_seconds",
			Help:      "Completion provider call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 75},
		},
	)

	// Conversation row counts per operation
	ConversationOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "personachat",
			Subsystem: "server",
			Name:      "conversation_ops_total",
			Help:      "Total conversation store operations, by operation and outcome",
		},
		[]string{"operation", "status"},
	)
)
