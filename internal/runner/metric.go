package runner

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-compose/internal/num"
)

var ErrTarget = errors.New("prediction and target cannot be compared")

// Metric accumulates the quality of predictions, one observation at a time.
type Metric interface {
	Update(yTrue, yPred any) error
	Score() float64
	Name() string
}

// MSE is the mean squared error of numeric predictions.
type MSE struct {
	sum   float64
	count int
}

func (m *MSE) Update(yTrue, yPred any) error {
	target, ok := num.Float(yTrue)
	if !ok {
		return errors.Wrapf(ErrTarget, "target %T is not numeric", yTrue)
	}

	pred, ok := num.Float(yPred)
	if !ok {
		return errors.Wrapf(ErrTarget, "prediction %T is not numeric", yPred)
	}

	diff := pred - target
	m.sum += diff * diff
	m.count++

	return nil
}

func (m *MSE) Score() float64 {
	if m.count == 0 {
		return 0
	}

	return m.sum / float64(m.count)
}

func (m *MSE) Name() string {
	return "MSE"
}

// Accuracy is the share of predictions equal to their target.
type Accuracy struct {
	correct int
	count   int
}

func (a *Accuracy) Update(yTrue, yPred any) error {
	if yTrue == yPred {
		a.correct++
	}

	a.count++

	return nil
}

func (a *Accuracy) Score() float64 {
	if a.count == 0 {
		return 0
	}

	return float64(a.correct) / float64(a.count)
}

func (a *Accuracy) Name() string {
	return "Accuracy"
}
