// Package measure records how long each step of a pipeline takes.
package measure

import (
	"time"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// Measure holds one metric per step.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) (Metric, bool)
	AllMetrics() map[string]Metric
}

// Metric aggregates the durations of the calls made to a step.
type Metric interface {
	AddDuration(op model.Operation, elapsed time.Duration)
	AVGDuration() time.Duration
	AVGOperationDuration(op model.Operation) time.Duration
	Total() int64
}
