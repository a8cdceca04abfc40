package compose_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/model"
	"github.com/askiada/go-compose/pkg/linear"
	"github.com/askiada/go-compose/pkg/preprocessing"
	"github.com/askiada/go-compose/pkg/stream"
)

func takeSamples(t *testing.T, name string, opts stream.Options) []stream.Sample {
	t.Helper()

	dataset, err := stream.IterDataset(name, opts)
	require.NoError(t, err)

	samples, err := stream.Take(context.Background(), dataset, opts.Size)
	require.NoError(t, err)
	require.Len(t, samples, opts.Size)

	return samples
}

func meanSquaredError(t *testing.T, pipe *compose.Pipeline, samples []stream.Sample) float64 {
	t.Helper()

	total := 0.0
	for _, sample := range samples {
		pred, err := pipe.Predict(sample.X)
		require.NoError(t, err)

		diff := pred.(float64) - sample.Y.(float64)
		total += diff * diff
	}

	return total / float64(len(samples))
}

func TestRegressionConverges(t *testing.T) {
	t.Parallel()

	pipe, err := compose.New(
		preprocessing.NewStandardScaler(),
		preprocessing.NewStandardScaler(),
		linear.NewLinearRegression(0.05),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"StandardScaler", "StandardScaler1", "LinearRegression"}, pipe.Names())

	train := takeSamples(t, "LinearRegression", stream.Options{Size: 500, Seed: 1})
	test := takeSamples(t, "LinearRegression", stream.Options{Size: 200, Seed: 2})

	checkpoints := map[int]float64{}
	for i, sample := range train {
		if i == 0 || i == 20 {
			checkpoints[i] = meanSquaredError(t, pipe, test)
		}

		_, err := pipe.Predict(sample.X)
		require.NoError(t, err)

		_, err = pipe.Fit(sample.X, sample.Y)
		require.NoError(t, err)
	}

	final := meanSquaredError(t, pipe, test)

	assert.Greater(t, checkpoints[0], checkpoints[20])
	assert.Greater(t, checkpoints[20], final)
	assert.Less(t, final, 5.0)

	report, err := pipe.Trace(test[0].X, compose.DefaultTraceOptions())
	require.NoError(t, err)
	assert.Contains(t, report, "1. StandardScaler")
	assert.Contains(t, report, "3. LinearRegression")
	assert.Contains(t, report, "intercept: ")
	assert.Contains(t, report, "Prediction: ")
}

func TestClassificationLearns(t *testing.T) {
	t.Parallel()

	union, err := compose.Parallel(
		compose.Named("scaled", preprocessing.NewStandardScaler()),
		compose.Named("raw", preprocessing.NewRenamer("raw_")),
	)
	require.NoError(t, err)

	pipe, err := compose.Sequence(union, linear.NewLogisticRegression(0.1))
	require.NoError(t, err)

	train := takeSamples(t, "Binary", stream.Options{Size: 1000, Seed: 3})
	test := takeSamples(t, "Binary", stream.Options{Size: 200, Seed: 4})

	for _, sample := range train {
		_, err := pipe.Predict(sample.X)
		require.NoError(t, err)

		_, err = pipe.Fit(sample.X, sample.Y)
		require.NoError(t, err)
	}

	correct := 0
	for _, sample := range test {
		pred, err := pipe.Predict(sample.X)
		require.NoError(t, err)

		if pred == sample.Y {
			correct++
		}

		proba, err := pipe.PredictProba(sample.X)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, proba[true]+proba[false], 1e-9)
	}

	assert.Greater(t, float64(correct)/float64(len(test)), 0.85)

	features, err := pipe.Transform(model.Features{"x0": 0.5, "x1": -0.2})
	require.NoError(t, err)
	assert.Contains(t, features, "x0")
	assert.Contains(t, features, "raw_x1")
}
