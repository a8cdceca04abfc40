// Package runner evaluates compositions on a stream with progressive validation: each
// observation is predicted before the composition learns from it.
package runner

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-compose/internal/catalog"
	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/measure"
	"github.com/askiada/go-compose/pkg/compose/model"
	"github.com/askiada/go-compose/pkg/stream"
)

const progressEvery = 1000

// Result is the outcome of the evaluation of one model.
type Result struct {
	Model   string
	Metric  string
	Score   float64
	Samples int
	Elapsed time.Duration
	Measure measure.Measure
}

// NewMetric returns the metric suited to the terminal step of pipe: accuracy for
// classifiers, mean squared error otherwise.
func NewMetric(pipe *compose.Pipeline) Metric {
	terminal, err := pipe.Terminal()
	if err == nil {
		if _, ok := terminal.(model.ProbaPredictor); ok {
			return &Accuracy{}
		}
	}

	return &MSE{}
}

// Evaluate predicts then fits every sample of dataset with pipe. The durations of each step
// are recorded in the measure of the result, through a hook that is removed from pipe
// once the evaluation ends.
func Evaluate(ctx context.Context, logger zerolog.Logger, name string, pipe *compose.Pipeline, dataset stream.Dataset) (Result, error) {
	msr := measure.NewDefaultMeasure()
	hook := measure.PipelineMeasure(msr)
	pipe.WithHooks(hook)
	defer pipe.WithoutHooks(hook)

	metric := NewMetric(pipe)
	res := Result{Model: name, Metric: metric.Name(), Measure: msr}
	start := time.Now()

	err := stream.Iterate(ctx, dataset, func(sample stream.Sample) error {
		pred, err := pipe.Predict(sample.X)
		if err != nil {
			return errors.Wrapf(err, "sample %d: unable to predict", res.Samples)
		}

		err = metric.Update(sample.Y, pred)
		if err != nil {
			return errors.Wrapf(err, "sample %d", res.Samples)
		}

		_, err = pipe.Fit(sample.X, sample.Y)
		if err != nil {
			return errors.Wrapf(err, "sample %d: unable to fit", res.Samples)
		}

		res.Samples++
		if res.Samples%progressEvery == 0 {
			logger.Debug().Str("model", name).Int("samples", res.Samples).Float64(metric.Name(), metric.Score()).Msg("progress")
		}

		return nil
	})
	if err != nil {
		return res, errors.Wrapf(err, "unable to evaluate %s", name)
	}

	res.Score = metric.Score()
	res.Elapsed = time.Since(start)

	logger.Info().Str("model", name).Int("samples", res.Samples).Float64(res.Metric, res.Score).Dur("elapsed", res.Elapsed).Msg("model evaluated")

	return res, nil
}

// EvaluateModel builds m and evaluates it on the dataset of cfg.
func EvaluateModel(ctx context.Context, logger zerolog.Logger, cfg *config.Config, m config.Model) (*compose.Pipeline, Result, error) {
	pipe, err := catalog.Build(m, logger)
	if err != nil {
		return nil, Result{}, err
	}

	dataset, err := stream.IterDataset(cfg.Dataset.Name, stream.Options{Size: cfg.Dataset.Size, Seed: cfg.Dataset.Seed})
	if err != nil {
		return nil, Result{}, err
	}

	res, err := Evaluate(ctx, logger, m.Name, pipe, dataset)

	return pipe, res, err
}

// Bench evaluates every model of cfg, each in its own goroutine, at most cfg.Concurrency at
// a time. Results follow the order of the models. The first failure cancels the others.
func Bench(ctx context.Context, logger zerolog.Logger, cfg *config.Config) ([]Result, error) {
	results := make([]Result, len(cfg.Models))

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(max(cfg.Concurrency, 1))

	for idx, m := range cfg.Models {
		errGrp.Go(func() error {
			_, res, err := EvaluateModel(dCtx, logger, cfg, m)
			if err != nil {
				return err
			}

			results[idx] = res

			return nil
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return nil, errors.Wrap(err, "benchmark failed")
	}

	return results, nil
}
