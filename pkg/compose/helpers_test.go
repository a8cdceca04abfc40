package compose_test

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type call struct {
	step string
	op   model.Operation
	x    model.Features
	y    any
}

// journal records the calls made to the steps sharing it.
type journal struct {
	calls []call
}

func (j *journal) add(step string, op model.Operation, x model.Features, y any) {
	j.calls = append(j.calls, call{step: step, op: op, x: copyFeatures(x), y: y})
}

func (j *journal) filter(step string, op model.Operation) []call {
	var res []call
	for _, c := range j.calls {
		if c.step == step && c.op == op {
			res = append(res, c)
		}
	}

	return res
}

func copyFeatures(x model.Features) model.Features {
	if x == nil {
		return nil
	}

	out := make(model.Features, len(x))
	for k, v := range x {
		out[k] = v
	}

	return out
}

// marker adds its name as a feature on transform.
type marker struct {
	name string
	j    *journal
}

func (m *marker) Transform(x model.Features) (model.Features, error) {
	m.j.add(m.name, model.TransformOperation, x, nil)

	out := copyFeatures(x)
	if out == nil {
		out = make(model.Features)
	}

	out[m.name] = float64(len(x))

	return out, nil
}

func (m *marker) Describe() string {
	return m.name
}

// unsupervisedMarker learns from features only.
type unsupervisedMarker struct {
	marker
}

func newUnsupervised(name string, j *journal) *unsupervisedMarker {
	return &unsupervisedMarker{marker{name: name, j: j}}
}

func (m *unsupervisedMarker) Learn(x model.Features) error {
	m.j.add(m.name, model.LearnOperation, x, nil)

	return nil
}

// supervisedMarker learns from features and target.
type supervisedMarker struct {
	marker
}

func newSupervised(name string, j *journal) *supervisedMarker {
	return &supervisedMarker{marker{name: name, j: j}}
}

func (m *supervisedMarker) LearnSupervised(x model.Features, y any) error {
	m.j.add(m.name, model.LearnSupervisedOperation, x, y)

	return nil
}

// regressor predicts the number of features it receives.
type regressor struct {
	name string
	j    *journal
}

func (r *regressor) Predict(x model.Features) (any, error) {
	r.j.add(r.name, model.PredictOperation, x, nil)

	return float64(len(x)), nil
}

func (r *regressor) LearnSupervised(x model.Features, y any) error {
	r.j.add(r.name, model.LearnSupervisedOperation, x, y)

	return nil
}

func (r *regressor) Describe() string {
	return r.name
}

// classifier always predicts the same probabilities.
type classifier struct{}

func (classifier) PredictProba(x model.Features) (map[any]float64, error) {
	return map[any]float64{"spam": 0.25, "ham": 0.75}, nil
}

func (classifier) LearnSupervised(x model.Features, y any) error {
	return nil
}

// forecaster returns the horizon and records what it receives.
type forecaster struct {
	xs []model.Features
}

func (f *forecaster) Forecast(horizon int, xs []model.Features) ([]float64, error) {
	f.xs = xs

	out := make([]float64, horizon)
	for i := range out {
		out[i] = float64(i)
	}

	return out, nil
}

func (f *forecaster) LearnSupervised(x model.Features, y any) error {
	return nil
}

var errBroken = errors.New("broken step")

type broken struct{}

func (broken) Transform(x model.Features) (model.Features, error) {
	return nil, errBroken
}

// StandardScaler only exists to test name inference.
type StandardScaler struct{}

func (StandardScaler) Transform(x model.Features) (model.Features, error) {
	return x, nil
}

func addOne(x model.Features) model.Features {
	out := copyFeatures(x)
	out["one"] = 1.0

	return out
}

type wrapper struct {
	inner model.Step
}

func (w *wrapper) Unwrap() model.Step {
	return w.inner
}

func (w *wrapper) Predict(x model.Features) (any, error) {
	return w.inner.(model.Predictor).Predict(x)
}

func (w *wrapper) LearnSupervised(x model.Features, y any) error {
	return w.inner.(model.SupervisedLearner).LearnSupervised(x, y)
}
