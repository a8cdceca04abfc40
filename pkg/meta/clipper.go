// Package meta provides steps wrapping other steps.
package meta

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-compose/internal/num"
	"github.com/askiada/go-compose/pkg/compose/model"
)

var ErrRegressor = errors.New("wrapped model must predict and learn from a target")

type regressor interface {
	model.Predictor
	model.SupervisedLearner
}

// Clipper bounds the numeric predictions of a regressor to [Min, Max].
type Clipper struct {
	model regressor
	Min   float64
	Max   float64
}

// NewClipper wraps inner, which must be a model.Predictor and a model.SupervisedLearner.
func NewClipper(inner model.Step, lo, hi float64) (*Clipper, error) {
	reg, ok := inner.(regressor)
	if !ok {
		return nil, errors.Wrapf(ErrRegressor, "got %T", inner)
	}

	if lo > hi {
		return nil, errors.Errorf("min %v is greater than max %v", lo, hi)
	}

	return &Clipper{model: reg, Min: lo, Max: hi}, nil
}

func (c *Clipper) LearnSupervised(x model.Features, y any) error {
	return c.model.LearnSupervised(x, y)
}

func (c *Clipper) Predict(x model.Features) (any, error) {
	pred, err := c.model.Predict(x)
	if err != nil {
		return nil, err
	}

	f, ok := num.Float(pred)
	if !ok {
		return pred, nil
	}

	switch {
	case f < c.Min:
		return c.Min, nil
	case f > c.Max:
		return c.Max, nil
	default:
		return f, nil
	}
}

func (c *Clipper) Unwrap() model.Step {
	return c.model
}

func (c *Clipper) LabelLoc() string {
	return "b"
}

var (
	_ model.Wrapper      = (*Clipper)(nil)
	_ model.LabelLocator = (*Clipper)(nil)
	_ model.Predictor    = (*Clipper)(nil)
)
