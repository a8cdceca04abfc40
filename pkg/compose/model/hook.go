package model

import "time"

// Operation is the kind of call a hook is notified about.
type Operation string

const (
	TransformOperation       Operation = "transform"
	LearnOperation           Operation = "learn"
	LearnSupervisedOperation Operation = "learn_supervised"
	PredictOperation         Operation = "predict"
	PredictProbaOperation    Operation = "predict_proba"
	ForecastOperation        Operation = "forecast"
)

// Hook is notified after each step call issued by a pipeline.
type Hook interface {
	// OnStep runs after step has completed op. Returning an error aborts the current call.
	OnStep(step *StepInfo, op Operation, elapsed time.Duration) error
}
