package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// acquire latency at the store, including time spent queued behind conflicts
	// labels: mode (read/write)
	AcquireDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cohere_acquire_duration_seconds",
			Help:    "time taken to grant an object access mode",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"mode"},
	)

	// acquire outcomes
	// labels: mode, status (granted/queued/not_found/cancelled/failed)
	AcquireTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cohere_acquire_total",
			Help: "total number of acquire requests by outcome",
		},
		[]string{"mode", "status"},
	)

	// requests currently parked in waiter queues
	Waiters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cohere_lock_waiters",
			Help: "current number of blocked acquire requests",
		},
	)

	// objects in the store, pending creates included
	Objects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cohere_objects",
			Help: "current number of stored objects",
		},
	)

	// batch outcomes at the store
	// labels: status (applied/duplicate/out_of_sequence/rejected)
	BatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cohere_batch_total",
			Help: "total number of update batches received by outcome",
		},
		[]string{"status"},
	)

	// callbacks issued to nodes
	// labels: target (read/none)
	CallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cohere_callback_total",
			Help: "total number of callbacks dispatched",
		},
		[]string{"target"},
	)

	// callbacks that were not answered in time
	// every timeout forcibly revokes the node's modes
	CallbackBusyTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cohere_callback_busy_total",
			Help: "total number of callback sends refused by a node without capacity",
		},
	)

	CallbackTimeoutTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cohere_callback_timeout_total",
			Help: "total number of callbacks that timed out",
		},
	)

	// callbacks awaiting an answer
	CallbacksPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cohere_callbacks_pending",
			Help: "current number of outstanding callbacks",
		},
	)

	// connected nodes
	Sessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cohere_sessions",
			Help: "current number of node sessions",
		},
	)

	// session ends
	// labels: reason (disconnect/expired/unresponsive/replaced)
	SessionEndTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cohere_session_end_total",
			Help: "total number of node sessions ended",
		},
		[]string{"reason"},
	)

	// node side: batches waiting for acknowledgement
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cohere_queue_depth",
			Help: "current number of unacknowledged update batches",
		},
	)

	// node side: delivery attempts that failed and will be retried
	QueueRetryTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cohere_queue_retry_total",
			Help: "total number of update batch delivery retries",
		},
	)

	// node side: transaction outcomes
	// labels: status (committed/aborted/failed)
	TxnTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cohere_txn_total",
			Help: "total number of local transactions by outcome",
		},
		[]string{"status"},
	)

	// service uptime - always 1 when running
	Up = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cohere_up",
			Help: "whether the service is up (always 1 when running)",
		},
	)
)

func init() {
	Up.Set(1)
}
