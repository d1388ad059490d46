package chathub

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_connections",
		Help: "Number of websocket connections currently registered",
	})

	messagesBroadcast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_broadcast_total",
		Help: "Total outbound frames delivered to connected clients",
	})

	messagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_dropped_total",
		Help: "Inbound payloads dropped because persistence failed",
	})

	notificationsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_notifications_enqueued_total",
		Help: "Notification tasks handed to the dispatcher",
	})

	cachesEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_caches_evicted_total",
		Help: "Recent-message caches deleted by the janitor",
	})
)
