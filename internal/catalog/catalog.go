// Package catalog builds compositions from the step names found in the configuration.
package catalog

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/model"
	"github.com/askiada/go-compose/pkg/linear"
	"github.com/askiada/go-compose/pkg/meta"
	"github.com/askiada/go-compose/pkg/preprocessing"
)

const unionSeparator = "+"

var ErrUnknownStep = errors.New("unknown step")

// Constructor creates a fresh step using the parameters of m.
type Constructor func(m config.Model) (model.Step, error)

var constructors = map[string]Constructor{
	"StandardScaler": func(config.Model) (model.Step, error) {
		return preprocessing.NewStandardScaler(), nil
	},
	"MinMaxScaler": func(config.Model) (model.Step, error) {
		return preprocessing.NewMinMaxScaler(), nil
	},
	"LinearRegression": func(m config.Model) (model.Step, error) {
		return linear.NewLinearRegression(m.LearningRate), nil
	},
	"LogisticRegression": func(m config.Model) (model.Step, error) {
		return linear.NewLogisticRegression(m.LearningRate), nil
	},
	"ClippedLinearRegression": func(m config.Model) (model.Step, error) {
		return meta.NewClipper(linear.NewLinearRegression(m.LearningRate), m.ClipMin, m.ClipMax)
	},
}

// Names returns the known step names, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Build creates the composition described by m. Every call returns new steps.
func Build(m config.Model, logger zerolog.Logger) (*compose.Pipeline, error) {
	pipe, err := compose.New()
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	pipe.WithLogger(logger.With().Str("model", m.Name).Logger())

	for _, desc := range m.Steps {
		step, err := buildStep(desc, m)
		if err != nil {
			return nil, errors.Wrapf(err, "model %s", m.Name)
		}

		_, err = pipe.Append(step)
		if err != nil {
			return nil, errors.Wrapf(err, "model %s", m.Name)
		}
	}

	return pipe, nil
}

// buildStep turns "A" into a step and "A + B" into a union of A and B.
func buildStep(desc string, m config.Model) (any, error) {
	parts := strings.Split(desc, unionSeparator)
	if len(parts) == 1 {
		return newStep(strings.TrimSpace(desc), m)
	}

	var union *compose.Union

	for _, part := range parts {
		step, err := newStep(strings.TrimSpace(part), m)
		if err != nil {
			return nil, err
		}

		if union == nil {
			union, err = compose.NewUnion(step)
		} else {
			union, err = compose.Parallel(union, step)
		}

		if err != nil {
			return nil, errors.Wrapf(err, "step %q", desc)
		}
	}

	return union, nil
}

func newStep(name string, m config.Model) (model.Step, error) {
	constructor, ok := constructors[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownStep, "%q, expected one of %s", name, strings.Join(Names(), ", "))
	}

	step, err := constructor(m)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create %s", name)
	}

	return step, nil
}
