// Package num converts feature and target values to numbers.
package num

import "github.com/spf13/cast"

// Float returns v as a float64. Booleans are converted to 0 and 1. ok is false when v is
// not numeric; strings are never numeric, even when they could be parsed as a number, as
// string features are categories.
func Float(v any) (f float64, ok bool) {
	switch v.(type) {
	case nil, string, []byte:
		return 0, false
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}

	return f, true
}
