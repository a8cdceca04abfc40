// Package compose chains online learning steps into a single model that learns and predicts
// one observation at a time.
//
// A Pipeline is an ordered, name-keyed list of steps. Every step but the last is used as a
// transformer; the last one, the terminal step, decides whether the pipeline behaves as a
// transformer or as a predictor. Steps are plain Go values: a step declares what it can do by
// implementing the capability interfaces of the model package (model.Transformer,
// model.Learner, model.SupervisedLearner, model.Predictor, ...). A Union runs several steps on
// the same observation and merges their outputs.
//
// Pipelines are built with New, Sequence and Parallel:
//
//	model, err := compose.Sequence(preprocessing.NewStandardScaler(), linear.NewLinearRegression(0.01))
//
// The engine takes care of the timing of supervision. Unsupervised steps learn while
// observations are transformed, as early as possible. Supervised transformers only learn
// during Fit, from the features they received before transforming them, so the target never
// leaks into a transformation applied before the target is known.
//
// A pipeline can also be inspected: Trace details how an observation is transformed by each
// step, and Draw turns the pipeline into a Network that a Renderer, such as the one of the
// drawer package, can turn into a picture.
//
// A Pipeline is not safe for concurrent use. Steps update their state in place; use one
// pipeline per goroutine.
package compose
