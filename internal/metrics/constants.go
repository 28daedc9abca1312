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

// Engine metric names
const (
	MetricNameActivitiesStarted = "activities_started_total"
	MetricNameActivitiesStopped = "activities_stopped_total"
	MetricNameUnitsClaimed      = "activity_units_claimed_total"
	MetricNameItemsGranted      = "items_granted_total"
	MetricNameItemsUnfit        = "items_unfit_total"
	MetricNameXPAwarded         = "xp_awarded_total"
	MetricNameLevelUps          = "level_ups_total"
	MetricNameCapacityChanges   = "capacity_changes_total"
	MetricNameStacksLost        = "capacity_stacks_lost_total"
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

// Engine metric help text
const (
	HelpTextActivitiesStarted = "Total number of activities started"
	HelpTextActivitiesStopped = "Total number of activities stopped or completed"
	HelpTextUnitsClaimed      = "Total number of production units claimed"
	HelpTextItemsGranted      = "Total number of items granted into inventories"
	HelpTextItemsUnfit        = "Total number of items that did not fit on grant"
	HelpTextXPAwarded         = "Total experience points awarded"
	HelpTextLevelUps          = "Total number of level ups"
	HelpTextCapacityChanges   = "Total number of capacity reconciliations"
	HelpTextStacksLost        = "Total number of stacks lost to capacity shrinks"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelKind     = "kind"
	LabelVocation = "vocation"
	LabelItem     = "item"
	LabelTrack    = "track"
	LabelReason   = "reason"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
