package slasher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processedAttestationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasher_attestations_processed_total",
		Help: "The number of attestations checked for slashable offenses.",
	})
	droppedAttestationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasher_attestations_dropped_total",
		Help: "The number of attestations dropped as malformed, too old or over the queue capacity.",
	})
	deferredAttestationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasher_attestations_deferred_total",
		Help: "The number of attestations deferred because they target a future epoch.",
	})
	attesterSlashingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasher_attester_slashings_total",
		Help: "The number of new attester slashings detected.",
	})
	slashedValidatorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasher_slashed_validators_total",
		Help: "The number of distinct validators reported as slashable.",
	})
	invalidSlashingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasher_invalid_slashings_total",
		Help: "The number of detected slashings that failed validation.",
	})
	detectionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slasher_detection_seconds",
		Help:    "Time taken to run slashing detection over the history window.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	})
)
