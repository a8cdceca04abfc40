package model

// Features is a single observation, keyed by feature name.
type Features map[string]any

// Step is a processing unit. A value is a valid step as soon as it implements at least one
// of the capability interfaces below; the engine checks which ones before each dispatch.
type Step interface{}

// Transformer turns an observation into a new observation.
type Transformer interface {
	Transform(x Features) (Features, error)
}

// Learner updates its internal state from features only.
type Learner interface {
	Learn(x Features) error
}

// SupervisedLearner updates its internal state from features and a target.
// A step implementing it is "supervised-capable": the pipeline never calls Learn on it and
// only updates it during Fit, with the input it received before its own transformation.
type SupervisedLearner interface {
	LearnSupervised(x Features, y any) error
}

// Predictor predicts a single value.
type Predictor interface {
	Predict(x Features) (any, error)
}

// ProbaPredictor predicts a probability per class label.
type ProbaPredictor interface {
	PredictProba(x Features) (map[any]float64, error)
}

// Forecaster predicts the next horizon values. xs, when not nil, holds one observation
// per forecasted step.
type Forecaster interface {
	Forecast(horizon int, xs []Features) ([]float64, error)
}

// Describer returns a short human readable description of a step.
type Describer interface {
	Describe() string
}

// Explainer details how a step reaches its output for x.
type Explainer interface {
	Explain(x Features) (string, error)
}

// Wrapper is a step owning exactly one inner step.
type Wrapper interface {
	Unwrap() Step
}

// LabelLocator gives the label placement hint of a wrapper when it is drawn ("t" or "b").
type LabelLocator interface {
	LabelLoc() string
}

// HasCapability reports whether step implements at least one capability a pipeline can use.
func HasCapability(step Step) bool {
	switch step.(type) {
	case Transformer, Learner, SupervisedLearner, Predictor, ProbaPredictor, Forecaster:
		return true
	default:
		return false
	}
}
