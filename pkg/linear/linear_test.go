package linear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/pkg/compose/model"
	"github.com/askiada/go-compose/pkg/linear"
)

func TestLinearRegressionStep(t *testing.T) {
	t.Parallel()

	reg := linear.NewLinearRegression(0.1)
	x := model.Features{"a": 2.0, "name": "ignored"}

	pred, err := reg.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pred)

	require.NoError(t, reg.LearnSupervised(x, 1.0))

	// the gradient is -1: a moves by 0.1 * 2, the intercept by 0.1
	assert.InDelta(t, 0.2, reg.Weight("a"), 1e-9)
	assert.Zero(t, reg.Weight("name"))

	pred, err = reg.Predict(x)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pred, 1e-9)

	explanation, err := reg.Explain(x)
	require.NoError(t, err)
	assert.Equal(t, "a: 2.00000 x 0.20000 = 0.40000\nintercept: 0.10000", explanation)

	err = reg.LearnSupervised(x, "one")
	require.ErrorIs(t, err, linear.ErrNumericTarget)
}

func TestLinearRegressionFits(t *testing.T) {
	t.Parallel()

	reg := linear.NewLinearRegression(0.1)

	for i := 0; i < 2000; i++ {
		a := float64(i%10)/5 - 1
		require.NoError(t, reg.LearnSupervised(model.Features{"a": a}, 3*a+1))
	}

	assert.InDelta(t, 3.0, reg.Weight("a"), 1e-3)

	pred, err := reg.Predict(model.Features{"a": 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, pred, 1e-3)
}

func TestLogisticRegression(t *testing.T) {
	t.Parallel()

	clf := linear.NewLogisticRegression(0.5)

	proba, err := clf.PredictProba(model.Features{"a": 1.0})
	require.NoError(t, err)
	assert.Equal(t, map[any]float64{false: 0.5, true: 0.5}, proba)

	for i := 0; i < 500; i++ {
		require.NoError(t, clf.LearnSupervised(model.Features{"a": 1.0}, true))
		require.NoError(t, clf.LearnSupervised(model.Features{"a": -1.0}, 0))
	}

	pred, err := clf.Predict(model.Features{"a": 1.0})
	require.NoError(t, err)
	assert.Equal(t, true, pred)

	pred, err = clf.Predict(model.Features{"a": -1.0})
	require.NoError(t, err)
	assert.Equal(t, false, pred)

	proba, err = clf.PredictProba(model.Features{"a": 1.0})
	require.NoError(t, err)
	assert.Greater(t, proba[true], 0.9)
	assert.InDelta(t, 1.0, proba[true]+proba[false], 1e-9)

	explanation, err := clf.Explain(model.Features{"a": 1.0})
	require.NoError(t, err)
	assert.Contains(t, explanation, "intercept: ")

	err = clf.LearnSupervised(model.Features{"a": 1.0}, "yes")
	require.ErrorIs(t, err, linear.ErrNumericTarget)
}
