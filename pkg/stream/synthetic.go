package stream

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/model"
)

const defaultSize = 1000

// Synthetic generates samples from a random number generator seeded with Seed, so two
// streams of the same dataset are identical.
type Synthetic struct {
	Size     int
	Seed     int64
	generate func(rnd *rand.Rand) Sample
}

func (s *Synthetic) Stream(ctx context.Context) <-chan Sample {
	output := make(chan Sample)

	go func() {
		defer close(output)

		rnd := rand.New(rand.NewSource(s.Seed)) //nolint:gosec // reproducible data, not security

		for i := 0; i < s.Size; i++ {
			select {
			case <-ctx.Done():
				return
			case output <- s.generate(rnd):
			}
		}
	}()

	return output
}

func checkOptions(opts Options) (Options, error) {
	if opts.Size < 0 {
		return opts, errors.Wrapf(ErrInvalidOptions, "size %d is negative", opts.Size)
	}

	if opts.Size == 0 {
		opts.Size = defaultSize
	}

	return opts, nil
}

// LinearWeights are the coefficients used by the LinearRegression dataset, for the features
// x0, x1 and x2. The features live on very different scales.
var (
	LinearWeights   = []float64{2, -3, 0.5}
	LinearIntercept = 1.0
	linearOffsets   = []float64{10, -5, 100}
	linearScales    = []float64{1, 4, 20}
)

// newLinearRegressionDataset generates a noise-free linear target.
func newLinearRegressionDataset(opts Options) (Dataset, error) {
	opts, err := checkOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Synthetic{
		Size: opts.Size,
		Seed: opts.Seed,
		generate: func(rnd *rand.Rand) Sample {
			x := make(model.Features, len(LinearWeights))
			y := LinearIntercept

			for i, w := range LinearWeights {
				v := linearOffsets[i] + linearScales[i]*(2*rnd.Float64()-1)
				x["x"+strconv.Itoa(i)] = v
				y += w * v
			}

			return Sample{X: x, Y: y}
		},
	}, nil
}

// newBinaryDataset generates two features and a boolean target, true when x0 + x1 > 0.
func newBinaryDataset(opts Options) (Dataset, error) {
	opts, err := checkOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Synthetic{
		Size: opts.Size,
		Seed: opts.Seed,
		generate: func(rnd *rand.Rand) Sample {
			x0 := 2*rnd.Float64() - 1
			x1 := 2*rnd.Float64() - 1

			return Sample{
				X: model.Features{"x0": x0, "x1": x1},
				Y: x0+x1 > 0,
			}
		},
	}, nil
}
