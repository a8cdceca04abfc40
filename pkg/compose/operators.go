package compose

import (
	"github.com/pkg/errors"
)

// Sequence chains a then b.
//
// If a is a pipeline, b is appended to it and a is returned. Otherwise, if b is a pipeline,
// a is prepended to it and b is returned. Otherwise a new pipeline made of a and b is
// returned.
func Sequence(a, b any) (*Pipeline, error) {
	if pipe, ok := a.(*Pipeline); ok {
		_, err := pipe.Append(b)
		if err != nil {
			return nil, errors.Wrap(err, "unable to append step")
		}

		return pipe, nil
	}

	if pipe, ok := b.(*Pipeline); ok {
		_, err := pipe.Prepend(a)
		if err != nil {
			return nil, errors.Wrap(err, "unable to prepend step")
		}

		return pipe, nil
	}

	return New(a, b)
}

// Parallel runs a and b side by side.
//
// If a is a union, b is added to it and a is returned. Otherwise, if b is a union, a is
// added at its start and b is returned. Otherwise a new union made of a and b is returned.
func Parallel(a, b any) (*Union, error) {
	if union, ok := a.(*Union); ok {
		_, err := union.Append(b)
		if err != nil {
			return nil, errors.Wrap(err, "unable to add step to union")
		}

		return union, nil
	}

	if union, ok := b.(*Union); ok {
		_, err := union.Prepend(a)
		if err != nil {
			return nil, errors.Wrap(err, "unable to add step to union")
		}

		return union, nil
	}

	return NewUnion(a, b)
}
