package stream_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/pkg/compose/model"
	"github.com/askiada/go-compose/pkg/stream"
)

type fixed struct {
	samples []stream.Sample
}

func (f *fixed) Stream(ctx context.Context) <-chan stream.Sample {
	output := make(chan stream.Sample)

	go func() {
		defer close(output)

		for _, s := range f.samples {
			select {
			case <-ctx.Done():
				return
			case output <- s:
			}
		}
	}()

	return output
}

func TestAvailable(t *testing.T) {
	t.Parallel()

	names := stream.Available()
	assert.Contains(t, names, "Binary")
	assert.Contains(t, names, "LinearRegression")
	assert.IsNonDecreasing(t, names)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	samples := []stream.Sample{{X: model.Features{"a": 1.0}, Y: 2.0}}
	err := stream.Register("fixed-register", func(stream.Options) (stream.Dataset, error) {
		return &fixed{samples: samples}, nil
	})
	require.NoError(t, err)

	err = stream.Register("fixed-register", nil)
	require.ErrorIs(t, err, stream.ErrDatasetExists)

	dataset, err := stream.IterDataset("fixed-register", stream.Options{})
	require.NoError(t, err)

	got, err := stream.Take(context.Background(), dataset, 10)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestIterDatasetErrors(t *testing.T) {
	t.Parallel()

	_, err := stream.IterDataset("missing", stream.Options{})
	require.ErrorIs(t, err, stream.ErrDatasetNotFound)

	_, err = stream.IterDataset("LinearRegression", stream.Options{Size: -1})
	require.ErrorIs(t, err, stream.ErrInvalidOptions)
}

func TestTake(t *testing.T) {
	t.Parallel()

	dataset, err := stream.IterDataset("LinearRegression", stream.Options{Size: 20, Seed: 1})
	require.NoError(t, err)

	got, err := stream.Take(context.Background(), dataset, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = stream.Take(context.Background(), dataset, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = stream.Take(context.Background(), dataset, -1)
	require.ErrorIs(t, err, stream.ErrInvalidOptions)
	assert.Nil(t, got)
}

func TestLinearRegressionDataset(t *testing.T) {
	t.Parallel()

	dataset, err := stream.IterDataset("LinearRegression", stream.Options{Size: 50, Seed: 42})
	require.NoError(t, err)

	first, err := stream.Take(context.Background(), dataset, 100)
	require.NoError(t, err)
	require.Len(t, first, 50)

	second, err := stream.Take(context.Background(), dataset, 100)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for _, sample := range first {
		expected := stream.LinearIntercept
		for i, w := range stream.LinearWeights {
			expected += w * sample.X[[]string{"x0", "x1", "x2"}[i]].(float64)
		}

		assert.InDelta(t, expected, sample.Y, 1e-9)
	}
}

func TestBinaryDatasetDefaultSize(t *testing.T) {
	t.Parallel()

	dataset, err := stream.IterDataset("Binary", stream.Options{Seed: 1})
	require.NoError(t, err)

	count, positives := 0, 0
	err = stream.Iterate(context.Background(), dataset, func(sample stream.Sample) error {
		count++

		x0 := sample.X["x0"].(float64)
		x1 := sample.X["x1"].(float64)
		assert.Equal(t, x0+x1 > 0, sample.Y)

		if sample.Y.(bool) {
			positives++
		}

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1000, count)
	assert.Greater(t, positives, 400)
	assert.Less(t, positives, 600)
}

func TestIterateStopsOnError(t *testing.T) {
	t.Parallel()

	dataset, err := stream.IterDataset("Binary", stream.Options{Size: 10})
	require.NoError(t, err)

	errStop := assert.AnError
	count := 0
	err = stream.Iterate(context.Background(), dataset, func(stream.Sample) error {
		count++
		if count == 3 {
			return errStop
		}

		return nil
	})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 3, count)
}

func TestIterateCancelled(t *testing.T) {
	t.Parallel()

	dataset, err := stream.IterDataset("Binary", stream.Options{Size: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = stream.Iterate(ctx, dataset, func(stream.Sample) error {
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
