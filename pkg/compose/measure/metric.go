package measure

import (
	"sync"
	"time"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type operationInfo struct {
	elapsed time.Duration
	total   int64
}

// DefaultMetric keeps the count and the cumulated duration of the calls, per operation and
// overall. It is safe for concurrent use.
type DefaultMetric struct {
	mu          sync.Mutex
	operations  map[string]*operationInfo
	stepElapsed time.Duration
	total       int64
}

func (mt *DefaultMetric) AddDuration(op model.Operation, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	mt.total++
	mt.stepElapsed += elapsed

	info, ok := mt.operations[string(op)]
	if !ok {
		info = &operationInfo{}
		mt.operations[string(op)] = info
	}

	info.elapsed += elapsed
	info.total++
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

func (mt *DefaultMetric) AVGOperationDuration(op model.Operation) time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	info, ok := mt.operations[string(op)]
	if !ok || info.total == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(info.elapsed) / float64(info.total)))
}

func (mt *DefaultMetric) Total() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

var roundingUnits = []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond}

// round keeps the precision of a duration relative to its magnitude.
func round(d time.Duration) time.Duration {
	for _, unit := range roundingUnits {
		if d > unit {
			return d.Round(unit)
		}
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
