package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	SessionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsCompleted,
			Help: HelpTextSessionsCompleted,
		},
	)

	SessionsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionsAbandoned,
			Help: HelpTextSessionsAbandoned,
		},
	)

	SessionSeconds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSessionSeconds,
			Help: HelpTextSessionSeconds,
		},
	)

	CreditsAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCreditsAwarded,
			Help: HelpTextCreditsAwarded,
		},
	)

	CreditsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCreditsSpent,
			Help: HelpTextCreditsSpent,
		},
	)

	Purchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePurchases,
			Help: HelpTextPurchases,
		},
		[]string{LabelItem},
	)

	ComponentsPlaced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameComponentsPlaced,
			Help: HelpTextComponentsPlaced,
		},
		[]string{LabelItem},
	)

	ConnectionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameConnectionsCreated,
			Help: HelpTextConnectionsCreated,
		},
	)

	ConnectionsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameConnectionsRejected,
			Help: HelpTextConnectionsRejected,
		},
	)

	SyncOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncOperations,
			Help: HelpTextSyncOperations,
		},
		[]string{LabelStatus},
	)

	AgentMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAgentMessages,
			Help: HelpTextAgentMessages,
		},
		[]string{LabelMode, LabelOutcome},
	)
)
