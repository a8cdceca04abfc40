package linear

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/internal/num"
	"github.com/askiada/go-compose/pkg/compose/model"
)

var ErrNumericTarget = errors.New("target must be numeric")

// weights is a sparse linear model shared by the regressors of this package.
type weights struct {
	lr        float64
	coef      map[string]float64
	intercept float64
}

func newWeights(lr float64) weights {
	return weights{lr: lr, coef: make(map[string]float64)}
}

func (w *weights) dot(x model.Features) float64 {
	out := w.intercept

	for k, v := range x {
		f, ok := num.Float(v)
		if !ok {
			continue
		}

		out += w.coef[k] * f
	}

	return out
}

// step moves the weights against gradient, the derivative of the loss w.r.t. the raw output.
func (w *weights) step(x model.Features, gradient float64) {
	for k, v := range x {
		f, ok := num.Float(v)
		if !ok {
			continue
		}

		w.coef[k] -= w.lr * gradient * f
	}

	w.intercept -= w.lr * gradient
}

// explain lists the contribution of each feature to the raw output, largest first.
func (w *weights) explain(x model.Features) string {
	type contribution struct {
		name  string
		value float64
		coef  float64
	}

	contributions := make([]contribution, 0, len(x)+1)
	for k, v := range x {
		f, ok := num.Float(v)
		if !ok {
			continue
		}

		contributions = append(contributions, contribution{name: k, value: f, coef: w.coef[k]})
	}

	sort.Slice(contributions, func(i, j int) bool {
		ci := math.Abs(contributions[i].value * contributions[i].coef)
		cj := math.Abs(contributions[j].value * contributions[j].coef)
		if ci != cj {
			return ci > cj
		}

		return contributions[i].name < contributions[j].name
	})

	lines := make([]string, 0, len(contributions)+1)
	for _, c := range contributions {
		lines = append(lines, fmt.Sprintf("%s: %.5f x %.5f = %.5f", c.name, c.value, c.coef, c.value*c.coef))
	}

	lines = append(lines, fmt.Sprintf("intercept: %.5f", w.intercept))

	return strings.Join(lines, "\n")
}

// LinearRegression minimises the squared error with a constant learning rate.
type LinearRegression struct {
	weights
}

func NewLinearRegression(lr float64) *LinearRegression {
	return &LinearRegression{weights: newWeights(lr)}
}

func (lr *LinearRegression) Predict(x model.Features) (any, error) {
	return lr.dot(x), nil
}

func (lr *LinearRegression) LearnSupervised(x model.Features, y any) error {
	target, ok := num.Float(y)
	if !ok {
		return errors.Wrapf(ErrNumericTarget, "got %T", y)
	}

	lr.step(x, lr.dot(x)-target)

	return nil
}

func (lr *LinearRegression) Explain(x model.Features) (string, error) {
	return lr.explain(x), nil
}

// Weight returns the coefficient of the feature name.
func (lr *LinearRegression) Weight(name string) float64 {
	return lr.coef[name]
}

// LogisticRegression is a binary classifier minimising the log loss. Targets are booleans,
// or numbers where anything above 0 is the positive class.
type LogisticRegression struct {
	weights
}

func NewLogisticRegression(lr float64) *LogisticRegression {
	return &LogisticRegression{weights: newWeights(lr)}
}

func (lr *LogisticRegression) probability(x model.Features) float64 {
	return 1 / (1 + math.Exp(-lr.dot(x)))
}

func (lr *LogisticRegression) PredictProba(x model.Features) (map[any]float64, error) {
	p := lr.probability(x)

	return map[any]float64{false: 1 - p, true: p}, nil
}

func (lr *LogisticRegression) Predict(x model.Features) (any, error) {
	return lr.probability(x) >= 0.5, nil
}

func (lr *LogisticRegression) LearnSupervised(x model.Features, y any) error {
	target, ok := num.Float(y)
	if !ok {
		return errors.Wrapf(ErrNumericTarget, "got %T", y)
	}

	positive := 0.0
	if target > 0 {
		positive = 1
	}

	lr.step(x, lr.probability(x)-positive)

	return nil
}

func (lr *LogisticRegression) Explain(x model.Features) (string, error) {
	return lr.explain(x), nil
}

var (
	_ model.Predictor         = (*LinearRegression)(nil)
	_ model.SupervisedLearner = (*LinearRegression)(nil)
	_ model.Explainer         = (*LinearRegression)(nil)
	_ model.ProbaPredictor    = (*LogisticRegression)(nil)
	_ model.Predictor         = (*LogisticRegression)(nil)
	_ model.SupervisedLearner = (*LogisticRegression)(nil)
)
