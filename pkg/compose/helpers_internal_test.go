package compose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type scaler struct{}

func (*scaler) Transform(x model.Features) (model.Features, error) {
	return x, nil
}

func (s *scaler) method(x model.Features) model.Features {
	return x
}

func identity(x model.Features) model.Features {
	return x
}

func TestFuncName(t *testing.T) {
	t.Parallel()

	s := &scaler{}

	assert.Equal(t, "identity", funcName(identity))
	assert.Equal(t, "method", funcName(s.method))
	assert.Equal(t, "func", funcName(nil))
	assert.Equal(t, "func", funcName(42))

	var nilFn func(model.Features) model.Features
	assert.Equal(t, "func", funcName(nilFn))
}

func TestKindName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "scaler", kindName(&scaler{}))
	assert.Equal(t, "scaler", kindName(scaler{}))
	assert.Equal(t, "Union", kindName(&Union{}))
}

func TestFormatFloat(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		value    float64
		decimals int
		expected string
	}{
		{value: 1234567.891, decimals: 2, expected: "1,234,567.89"},
		{value: -0.5, decimals: 3, expected: "-0.500"},
		{value: 2.4, decimals: 0, expected: "2"},
		{value: 1, decimals: 12, expected: "1.000000000000"},
		{value: 0.5, decimals: 0, expected: "0"},
		{value: 1.5, decimals: 0, expected: "2"},
		{value: 2.5, decimals: 0, expected: "2"},
		{value: 0.125, decimals: 2, expected: "0.12"},
		{value: -1234.5, decimals: 0, expected: "-1,234"},
		{value: 1e20, decimals: 1, expected: "100,000,000,000,000,000,000.0"},
		{value: 3.14159, decimals: -1, expected: "3"},
		{value: math.NaN(), decimals: 2, expected: "NaN"},
		{value: math.Inf(-1), decimals: 2, expected: "-Inf"},
	}

	for _, tc := range tcs {
		assert.Equal(t, tc.expected, formatFloat(tc.value, tc.decimals))
	}
}

func TestIsTransformer(t *testing.T) {
	t.Parallel()

	empty := &Pipeline{steps: newRegistry()}
	assert.False(t, isTransformer(empty))
	assert.True(t, isTransformer(&Union{steps: newRegistry()}))
	assert.True(t, isTransformer(&scaler{}))

	nested := &Pipeline{steps: newRegistry()}
	_, err := nested.Append(&scaler{})
	assert.NoError(t, err)
	assert.True(t, isTransformer(nested))
}
