package stream

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/model"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrDatasetExists   = errors.New("dataset already registered")
	ErrInvalidOptions  = errors.New("invalid dataset options")
)

// Sample is an observation and its target.
type Sample struct {
	X model.Features
	Y any
}

// Dataset streams samples.
type Dataset interface {
	// Stream sends every sample on the returned channel, which is closed once the dataset is
	// exhausted or ctx is done.
	Stream(ctx context.Context) <-chan Sample
}

// Options parametrises the built-in datasets.
type Options struct {
	Size int
	Seed int64
}

// Constructor builds a dataset.
type Constructor func(opts Options) (Dataset, error)

var (
	mu       sync.RWMutex
	registry = map[string]Constructor{
		"LinearRegression": newLinearRegressionDataset,
		"Binary":           newBinaryDataset,
	}
)

// Register makes a dataset available under name.
func Register(name string, constructor Constructor) error {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := registry[name]; ok {
		return errors.Wrapf(ErrDatasetExists, "%q", name)
	}

	registry[name] = constructor

	return nil
}

// Available returns the names of the registered datasets, sorted.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// IterDataset builds the dataset registered under name.
func IterDataset(name string, opts Options) (Dataset, error) {
	mu.RLock()
	constructor, ok := registry[name]
	mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrDatasetNotFound, "%q", name)
	}

	dataset, err := constructor(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create dataset %s", name)
	}

	return dataset, nil
}

// Iterate calls fn on every sample of dataset, stopping on the first error.
func Iterate(ctx context.Context, dataset Dataset, fn func(Sample) error) error {
	dCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for sample := range dataset.Stream(dCtx) {
		err := fn(sample)
		if err != nil {
			return err
		}
	}

	return ctx.Err()
}

// Take collects the first n samples of dataset.
func Take(ctx context.Context, dataset Dataset, n int) ([]Sample, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidOptions, "cannot take %d samples", n)
	}

	samples := make([]Sample, 0, n)

	dCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for sample := range dataset.Stream(dCtx) {
		if len(samples) == n {
			break
		}

		samples = append(samples, sample)
	}

	return samples, ctx.Err()
}
