package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameSessionsCompleted   = "sessions_completed_total"
	MetricNameSessionsAbandoned   = "sessions_abandoned_total"
	MetricNameSessionSeconds      = "session_duration_seconds_total"
	MetricNameCreditsAwarded      = "credits_awarded_total"
	MetricNameCreditsSpent        = "credits_spent_total"
	MetricNamePurchases           = "purchases_total"
	MetricNameComponentsPlaced    = "components_placed_total"
	MetricNameConnectionsCreated  = "connections_created_total"
	MetricNameConnectionsRejected = "connections_rejected_total"
	MetricNameSyncOperations      = "sync_operations_total"
	MetricNameAgentMessages       = "agent_messages_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextSessionsCompleted   = "Total number of focus sessions completed"
	HelpTextSessionsAbandoned   = "Total number of focus sessions abandoned"
	HelpTextSessionSeconds      = "Total focus time recorded, in seconds"
	HelpTextCreditsAwarded      = "Total credits awarded for sessions"
	HelpTextCreditsSpent        = "Total credits spent in the shop"
	HelpTextPurchases           = "Total number of shop purchases"
	HelpTextComponentsPlaced    = "Total number of components placed on the canvas"
	HelpTextConnectionsCreated  = "Total number of connections created"
	HelpTextConnectionsRejected = "Total number of connections rejected"
	HelpTextSyncOperations      = "Total number of state sync operations"
	HelpTextAgentMessages       = "Total number of persona messages dispatched"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelItem    = "item"
	LabelMode    = "mode"
	LabelOutcome = "outcome"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
