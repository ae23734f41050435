// Package metrics holds the prometheus instruments for the tailer and the
// push channel.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the registry served at /metrics.
var Registry = prometheus.NewRegistry()

var (
	TailerRecords = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auditstream",
		Subsystem: "tailer",
		Name:      "records_total",
		Help:      "Records discovered by the tailer and handed to the router.",
	})
	TailerPollErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auditstream",
		Subsystem: "tailer",
		Name:      "poll_errors_total",
		Help:      "Store failures while resuming or polling.",
	})
	TailerResumes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auditstream",
		Subsystem: "tailer",
		Name:      "resumes_total",
		Help:      "Times the cursor was placed at the newest stored record.",
	})
	TailerLastPoll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "auditstream",
		Subsystem: "tailer",
		Name:      "last_poll_timestamp_seconds",
		Help:      "Unix time of the last successful poll.",
	})

	FanoutConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "auditstream",
		Subsystem: "fanout",
		Name:      "connections",
		Help:      "Connections currently joined to at least one topic.",
	})
	FanoutDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auditstream",
		Subsystem: "fanout",
		Name:      "deliveries_total",
		Help:      "Frames handed to connections, by topic kind.",
	}, []string{"kind"})
	FanoutDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auditstream",
		Subsystem: "fanout",
		Name:      "dropped_total",
		Help:      "Frames a connection refused.",
	})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		TailerRecords,
		TailerPollErrors,
		TailerResumes,
		TailerLastPoll,
		FanoutConnections,
		FanoutDeliveries,
		FanoutDropped,
	)
}
