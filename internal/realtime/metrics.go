package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crm",
		Subsystem: "realtime",
		Name:      "connections",
		Help:      "Number of registered realtime connections.",
	})

	eventsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "realtime",
		Name:      "events_sent_total",
		Help:      "Frames queued for delivery, by event name.",
	}, []string{"event"})

	connectionsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "realtime",
		Name:      "connections_dropped_total",
		Help:      "Connections removed from the registry because they could not keep up or failed.",
	}, []string{"reason"})

	handshakesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "realtime",
		Name:      "handshakes_rejected_total",
		Help:      "Connection attempts refused because the token did not authenticate.",
	})
)
