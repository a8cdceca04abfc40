package compose

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// Transform passes x through every transformer of the pipeline.
//
// Unsupervised steps learn from x right before transforming it, so Transform updates the
// running statistics of the pipeline even though it looks like a read. This is intended:
// in online learning an observation is usually transformed before its target is known, and
// its features are worth learning from straight away. Supervised steps are never updated
// here, see Fit.
func (p *Pipeline) Transform(x model.Features) (model.Features, error) {
	return p.transform(x, true)
}

// Fit updates the pipeline with the observation x and its target y.
//
// Each supervised step, including the members of a union, learns from the features it
// received before its own transformation, and the terminal step learns from the fully
// transformed features. Unsupervised steps are not updated again: they already learn when
// an observation is transformed.
func (p *Pipeline) Fit(x model.Features, y any) (*Pipeline, error) {
	last, err := p.terminal()
	if err != nil {
		return p, err
	}

	for i, e := range p.transformers() {
		info := stepInfo(i, e)

		xt, err := p.transformStep(info, e.step, x, false)
		if err != nil {
			return p, err
		}

		err = p.learnSupervised(info, e.step, x, y)
		if err != nil {
			return p, err
		}

		x = xt
	}

	if isTransformer(last.step) {
		return p, nil
	}

	info := stepInfo(p.Len()-1, last)
	switch typed := last.step.(type) {
	case model.SupervisedLearner:
		err = p.observe(info, model.LearnSupervisedOperation, func() error {
			return typed.LearnSupervised(x, y)
		})
	case model.Learner:
		err = p.observe(info, model.LearnOperation, func() error {
			return typed.Learn(x)
		})
	default:
		err = capabilityError(info.Name, "learn")
	}

	return p, err
}

// LearnSupervised fits the pipeline; it lets a pipeline be nested in another one.
func (p *Pipeline) LearnSupervised(x model.Features, y any) error {
	_, err := p.Fit(x, y)

	return err
}

// Predict transforms x, see Transform for the side effects, and returns the prediction of
// the terminal step.
func (p *Pipeline) Predict(x model.Features) (any, error) {
	return p.predict(x, true)
}

// PredictProba transforms x, see Transform for the side effects, and returns the class
// probabilities predicted by the terminal step.
func (p *Pipeline) PredictProba(x model.Features) (map[any]float64, error) {
	return p.predictProba(x, true)
}

// Forecast transforms every observation of xs, see Transform for the side effects, and
// returns the forecast of the terminal step for the next horizon values.
func (p *Pipeline) Forecast(horizon int, xs []model.Features) ([]float64, error) {
	last, err := p.terminal()
	if err != nil {
		return nil, err
	}

	if !canForecast(last.step) {
		return nil, capabilityError(last.name, "forecast")
	}

	var transformed []model.Features
	if xs != nil {
		transformed = make([]model.Features, len(xs))
		for i, x := range xs {
			transformed[i], err = p.Transform(x)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to transform observation %d", i)
			}
		}
	}

	var out []float64
	err = p.observe(stepInfo(p.Len()-1, last), model.ForecastOperation, func() error {
		var err error
		out, err = forecastWith(last.step, horizon, transformed)

		return err
	})

	return out, err
}

func (p *Pipeline) transform(x model.Features, learn bool) (model.Features, error) {
	for i, e := range p.transformers() {
		info := stepInfo(i, e)

		if learn {
			err := p.learnUnsupervised(info, e.step, x)
			if err != nil {
				return nil, err
			}
		}

		xt, err := p.transformStep(info, e.step, x, learn)
		if err != nil {
			return nil, err
		}

		x = xt
	}

	return x, nil
}

func (p *Pipeline) predict(x model.Features, learn bool) (any, error) {
	last, err := p.terminal()
	if err != nil {
		return nil, err
	}

	if !canPredict(last.step) {
		return nil, capabilityError(last.name, "predict")
	}

	x, err = p.transform(x, learn)
	if err != nil {
		return nil, err
	}

	var out any
	err = p.observe(stepInfo(p.Len()-1, last), model.PredictOperation, func() error {
		var err error
		out, err = predictWith(last.step, x, learn)

		return err
	})

	return out, err
}

func (p *Pipeline) predictProba(x model.Features, learn bool) (map[any]float64, error) {
	last, err := p.terminal()
	if err != nil {
		return nil, err
	}

	if !canPredictProba(last.step) {
		return nil, capabilityError(last.name, "predict probabilities")
	}

	x, err = p.transform(x, learn)
	if err != nil {
		return nil, err
	}

	var out map[any]float64
	err = p.observe(stepInfo(p.Len()-1, last), model.PredictProbaOperation, func() error {
		var err error
		out, err = predictProbaWith(last.step, x, learn)

		return err
	})

	return out, err
}

// learnUnsupervised updates step from x when it is not supervised. Union members are
// updated one by one with the union input.
func (p *Pipeline) learnUnsupervised(info *model.StepInfo, step model.Step, x model.Features) error {
	if union, ok := step.(*Union); ok {
		for j, member := range union.steps.entries {
			err := p.learnUnsupervised(memberInfo(info, j, member), member.step, x)
			if err != nil {
				return err
			}
		}

		return nil
	}

	if isSupervised(step) {
		return nil
	}

	learner, ok := step.(model.Learner)
	if !ok {
		return nil
	}

	return p.observe(info, model.LearnOperation, func() error {
		return learner.Learn(x)
	})
}

// learnSupervised updates step from x and y when it is supervised. Union members are
// updated one by one with the union input.
func (p *Pipeline) learnSupervised(info *model.StepInfo, step model.Step, x model.Features, y any) error {
	if union, ok := step.(*Union); ok {
		for j, member := range union.steps.entries {
			err := p.learnSupervised(memberInfo(info, j, member), member.step, x, y)
			if err != nil {
				return err
			}
		}

		return nil
	}

	learner, ok := step.(model.SupervisedLearner)
	if !ok {
		return nil
	}

	return p.observe(info, model.LearnSupervisedOperation, func() error {
		return learner.LearnSupervised(x, y)
	})
}

func (p *Pipeline) transformStep(info *model.StepInfo, step model.Step, x model.Features, learn bool) (model.Features, error) {
	var out model.Features
	err := p.observe(info, model.TransformOperation, func() error {
		var err error
		if union, ok := step.(*Union); ok {
			out, err = p.transformUnion(info, union, x, learn)
		} else {
			out, err = transformWith(step, x, learn)
		}

		return err
	})

	return out, err
}

// transformUnion merges the outputs of the members of union, each call being observed
// as a member of info.
func (p *Pipeline) transformUnion(info *model.StepInfo, union *Union, x model.Features, learn bool) (model.Features, error) {
	out := make(model.Features)

	for j, member := range union.steps.entries {
		xt, err := p.transformStep(memberInfo(info, j, member), member.step, x, learn)
		if err != nil {
			return nil, errors.Wrapf(err, "union member %s", member.name)
		}

		for k, v := range xt {
			out[k] = v
		}
	}

	return out, nil
}

// observe runs fn and notifies the hooks of the pipeline once it succeeds.
func (p *Pipeline) observe(info *model.StepInfo, op model.Operation, fn func() error) error {
	start := time.Now()

	err := fn()
	if err != nil {
		return errors.Wrapf(err, "step %s: unable to %s", info.Name, op)
	}

	elapsed := time.Since(start)
	for _, hook := range p.hooks {
		err := hook.OnStep(info, op, elapsed)
		if err != nil {
			return errors.Wrapf(err, "step %s: hook failed", info.Name)
		}
	}

	return nil
}

// transformWith transforms x with step. When learn is false, nested pipelines transform
// without updating their unsupervised steps.
func transformWith(step model.Step, x model.Features, learn bool) (model.Features, error) {
	switch typed := step.(type) {
	case *Pipeline:
		return typed.transform(x, learn)
	case *Union:
		return typed.transform(x, learn)
	case model.Transformer:
		return typed.Transform(x)
	}

	return nil, capabilityError(describe(step), "transform")
}

func predictWith(step model.Step, x model.Features, learn bool) (any, error) {
	switch typed := step.(type) {
	case *Pipeline:
		return typed.predict(x, learn)
	case model.Predictor:
		return typed.Predict(x)
	}

	return nil, capabilityError(describe(step), "predict")
}

func predictProbaWith(step model.Step, x model.Features, learn bool) (map[any]float64, error) {
	switch typed := step.(type) {
	case *Pipeline:
		return typed.predictProba(x, learn)
	case model.ProbaPredictor:
		return typed.PredictProba(x)
	}

	return nil, capabilityError(describe(step), "predict probabilities")
}

func forecastWith(step model.Step, horizon int, xs []model.Features) ([]float64, error) {
	if forecaster, ok := step.(model.Forecaster); ok {
		return forecaster.Forecast(horizon, xs)
	}

	return nil, capabilityError(describe(step), "forecast")
}

func canPredict(step model.Step) bool {
	if pipe, ok := step.(*Pipeline); ok {
		last, err := pipe.terminal()

		return err == nil && canPredict(last.step)
	}

	_, ok := step.(model.Predictor)

	return ok
}

func canPredictProba(step model.Step) bool {
	if pipe, ok := step.(*Pipeline); ok {
		last, err := pipe.terminal()

		return err == nil && canPredictProba(last.step)
	}

	_, ok := step.(model.ProbaPredictor)

	return ok
}

func canForecast(step model.Step) bool {
	if pipe, ok := step.(*Pipeline); ok {
		last, err := pipe.terminal()

		return err == nil && canForecast(last.step)
	}

	_, ok := step.(model.Forecaster)

	return ok
}
