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

// Engine Metrics
var (
	ActivitiesStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActivitiesStarted,
			Help: HelpTextActivitiesStarted,
		},
		[]string{LabelKind, LabelVocation},
	)

	ActivitiesStopped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActivitiesStopped,
			Help: HelpTextActivitiesStopped,
		},
		[]string{LabelKind, LabelReason},
	)

	UnitsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameUnitsClaimed,
			Help: HelpTextUnitsClaimed,
		},
		[]string{LabelVocation},
	)

	ItemsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsGranted,
			Help: HelpTextItemsGranted,
		},
		[]string{LabelItem},
	)

	ItemsUnfit = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsUnfit,
			Help: HelpTextItemsUnfit,
		},
		[]string{LabelItem},
	)

	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelTrack},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
		[]string{LabelTrack},
	)

	CapacityChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCapacityChanges,
			Help: HelpTextCapacityChanges,
		},
	)

	StacksLost = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStacksLost,
			Help: HelpTextStacksLost,
		},
	)
)
