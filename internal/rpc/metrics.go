package rpc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_rpc_requests_total",
			Help: "Total number of RPC commands handled",
		},
		[]string{"command", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipes_rpc_request_duration_seconds",
			Help:    "RPC command latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipes_rpc_requests_in_flight",
			Help: "Current number of RPC commands being processed",
		},
	)

	messagesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_rpc_messages_dropped_total",
			Help: "Inbound bus messages that could not be handled",
		},
		[]string{"reason"},
	)
)

func observe(command string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(command, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}
