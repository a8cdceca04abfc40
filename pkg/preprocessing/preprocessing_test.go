package preprocessing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-compose/pkg/compose/model"
	"github.com/askiada/go-compose/pkg/preprocessing"
)

func TestStandardScaler(t *testing.T) {
	t.Parallel()

	scaler := preprocessing.NewStandardScaler()

	out, err := scaler.Transform(model.Features{"a": 1.0})
	require.NoError(t, err)
	assert.Equal(t, model.Features{"a": 0.0}, out)

	require.NoError(t, scaler.Learn(model.Features{"a": 1.0, "c": "red"}))

	out, err = scaler.Transform(model.Features{"a": 5.0})
	require.NoError(t, err)
	assert.Equal(t, model.Features{"a": 0.0}, out, "a single value has no variance")

	require.NoError(t, scaler.Learn(model.Features{"a": 3, "c": "blue"}))

	out, err = scaler.Transform(model.Features{"a": 3.0, "b": 10.0, "c": "red"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 1.0, out["a"], 1e-9)
	assert.Equal(t, 0.0, out["b"])
	assert.Equal(t, "red", out["c"])
}

func TestMinMaxScaler(t *testing.T) {
	t.Parallel()

	scaler := preprocessing.NewMinMaxScaler()
	require.NoError(t, scaler.Learn(model.Features{"a": 0.0, "flag": true}))
	require.NoError(t, scaler.Learn(model.Features{"a": 10.0, "flag": false}))
	require.NoError(t, scaler.Learn(model.Features{"a": 4.0}))

	out, err := scaler.Transform(model.Features{"a": 5.0, "flag": true, "name": "x", "new": 3.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out["a"], 1e-9)
	assert.InDelta(t, 1.0, out["flag"], 1e-9)
	assert.Equal(t, "x", out["name"])
	assert.Equal(t, 0.0, out["new"])
}

func TestRenamer(t *testing.T) {
	t.Parallel()

	out, err := preprocessing.NewRenamer("raw_").Transform(model.Features{"a": 1.0, "b": "x"})
	require.NoError(t, err)
	assert.Equal(t, model.Features{"raw_a": 1.0, "raw_b": "x"}, out)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	sel := preprocessing.NewSelect("a", "missing")

	out, err := sel.Transform(model.Features{"a": 1.0, "b": 2.0})
	require.NoError(t, err)
	assert.Equal(t, model.Features{"a": 1.0}, out)
	assert.Equal(t, "Select(a, missing)", sel.Describe())
}

func TestTargetEncoder(t *testing.T) {
	t.Parallel()

	enc := preprocessing.NewTargetEncoder("city", 10)

	require.NoError(t, enc.LearnSupervised(model.Features{"city": "paris"}, 2.0))
	require.NoError(t, enc.LearnSupervised(model.Features{"city": "paris"}, 4))
	require.NoError(t, enc.LearnSupervised(model.Features{"other": 1.0}, 100.0))

	out, err := enc.Transform(model.Features{"city": "paris", "a": 1.0})
	require.NoError(t, err)
	assert.Equal(t, model.Features{"city_target_mean": 3.0, "a": 1.0}, out)

	out, err = enc.Transform(model.Features{"city": "london"})
	require.NoError(t, err)
	assert.Equal(t, model.Features{"city_target_mean": 10.0}, out)

	err = enc.LearnSupervised(model.Features{"city": "paris"}, "high")
	require.ErrorIs(t, err, preprocessing.ErrNumericTarget)
}
