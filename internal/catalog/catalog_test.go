package catalog_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/internal/catalog"
	"github.com/askiada/go-compose/internal/config"
	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/model"
	"github.com/askiada/go-compose/pkg/meta"
)

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"ClippedLinearRegression",
		"LinearRegression",
		"LogisticRegression",
		"MinMaxScaler",
		"StandardScaler",
	}, catalog.Names())
}

func TestBuild(t *testing.T) {
	t.Parallel()

	m := config.Model{
		Name:         "union",
		Steps:        []string{"StandardScaler + MinMaxScaler", "StandardScaler", "LogisticRegression"},
		LearningRate: 0.1,
	}

	pipe, err := catalog.Build(m, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"Union", "StandardScaler", "LogisticRegression"}, pipe.Names())

	union, err := pipe.Get("Union")
	require.NoError(t, err)
	assert.Equal(t, []string{"StandardScaler", "MinMaxScaler"}, union.(*compose.Union).Names())

	_, err = pipe.Fit(model.Features{"a": 1.0}, true)
	require.NoError(t, err)

	proba, err := pipe.PredictProba(model.Features{"a": 1.0})
	require.NoError(t, err)
	assert.Len(t, proba, 2)

	other, err := catalog.Build(m, zerolog.Nop())
	require.NoError(t, err)
	assert.NotSame(t, pipe.Steps()[1], other.Steps()[1])
}

func TestBuildClipped(t *testing.T) {
	t.Parallel()

	pipe, err := catalog.Build(config.Model{
		Name:         "clipped",
		Steps:        []string{"ClippedLinearRegression"},
		LearningRate: 0.1,
		ClipMin:      -1,
		ClipMax:      1,
	}, zerolog.Nop())
	require.NoError(t, err)

	terminal, err := pipe.Terminal()
	require.NoError(t, err)
	assert.IsType(t, &meta.Clipper{}, terminal)
}

func TestBuildUnknownStep(t *testing.T) {
	t.Parallel()

	_, err := catalog.Build(config.Model{Name: "bad", Steps: []string{"Tree"}, LearningRate: 0.1}, zerolog.Nop())
	require.ErrorIs(t, err, catalog.ErrUnknownStep)

	_, err = catalog.Build(config.Model{Name: "bad", Steps: []string{"StandardScaler + Tree"}, LearningRate: 0.1}, zerolog.Nop())
	require.ErrorIs(t, err, catalog.ErrUnknownStep)
}
