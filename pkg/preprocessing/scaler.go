package preprocessing

import (
	"math"

	"github.com/askiada/go-compose/internal/num"
	"github.com/askiada/go-compose/pkg/compose/model"
)

type runningStat struct {
	count float64
	mean  float64
	m2    float64
}

func (rs *runningStat) update(v float64) {
	rs.count++
	delta := v - rs.mean
	rs.mean += delta / rs.count
	rs.m2 += delta * (v - rs.mean)
}

func (rs *runningStat) variance() float64 {
	if rs.count == 0 {
		return 0
	}

	return rs.m2 / rs.count
}

// StandardScaler scales numeric features to zero mean and unit variance using running
// statistics. Other features are left untouched.
type StandardScaler struct {
	stats map[string]*runningStat
}

func NewStandardScaler() *StandardScaler {
	return &StandardScaler{stats: make(map[string]*runningStat)}
}

// Learn updates the running mean and variance of each numeric feature.
func (s *StandardScaler) Learn(x model.Features) error {
	for k, v := range x {
		f, ok := num.Float(v)
		if !ok {
			continue
		}

		stat, ok := s.stats[k]
		if !ok {
			stat = &runningStat{}
			s.stats[k] = stat
		}

		stat.update(f)
	}

	return nil
}

func (s *StandardScaler) Transform(x model.Features) (model.Features, error) {
	out := make(model.Features, len(x))

	for k, v := range x {
		f, ok := num.Float(v)
		if !ok {
			out[k] = v

			continue
		}

		stat, ok := s.stats[k]
		if !ok {
			out[k] = 0.0

			continue
		}

		std := math.Sqrt(stat.variance())
		if std == 0 {
			out[k] = 0.0

			continue
		}

		out[k] = (f - stat.mean) / std
	}

	return out, nil
}

// MinMaxScaler scales numeric features to [0, 1] using the running minimum and maximum.
type MinMaxScaler struct {
	min map[string]float64
	max map[string]float64
}

func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{
		min: make(map[string]float64),
		max: make(map[string]float64),
	}
}

func (s *MinMaxScaler) Learn(x model.Features) error {
	for k, v := range x {
		f, ok := num.Float(v)
		if !ok {
			continue
		}

		if current, seen := s.min[k]; !seen || f < current {
			s.min[k] = f
		}

		if current, seen := s.max[k]; !seen || f > current {
			s.max[k] = f
		}
	}

	return nil
}

func (s *MinMaxScaler) Transform(x model.Features) (model.Features, error) {
	out := make(model.Features, len(x))

	for k, v := range x {
		f, ok := num.Float(v)
		if !ok {
			out[k] = v

			continue
		}

		lo, hi := s.min[k], s.max[k]
		if hi <= lo {
			out[k] = 0.0

			continue
		}

		out[k] = (f - lo) / (hi - lo)
	}

	return out, nil
}

var (
	_ model.Learner     = (*StandardScaler)(nil)
	_ model.Transformer = (*StandardScaler)(nil)
	_ model.Learner     = (*MinMaxScaler)(nil)
	_ model.Transformer = (*MinMaxScaler)(nil)
)
