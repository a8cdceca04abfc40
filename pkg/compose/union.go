package compose

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// Union applies several steps to the same observation and merges their outputs.
// When two members output the same feature, the last member wins.
type Union struct {
	steps registry
}

// NewUnion creates a union from steps. Steps are normalised and named like pipeline steps.
func NewUnion(steps ...any) (*Union, error) {
	union := &Union{steps: newRegistry()}

	for _, step := range steps {
		_, err := union.Append(step)
		if err != nil {
			return nil, errors.Wrap(err, "unable to add step to union")
		}
	}

	return union, nil
}

// Append adds step as the last member of the union.
func (u *Union) Append(step any) (string, error) {
	return u.steps.insert(step, false)
}

// Prepend adds step as the first member of the union.
func (u *Union) Prepend(step any) (string, error) {
	return u.steps.insert(step, true)
}

// Get returns the member stored under name.
func (u *Union) Get(name string) (model.Step, error) {
	return u.steps.get(name)
}

// Len returns the number of members.
func (u *Union) Len() int {
	return len(u.steps.entries)
}

// Names returns the member names, in order.
func (u *Union) Names() []string {
	return u.steps.names()
}

// Steps returns the members, in order.
func (u *Union) Steps() []model.Step {
	return u.steps.steps()
}

// Transform merges the output of every member. It does not update any member; learning is
// driven by the pipeline the union belongs to.
func (u *Union) Transform(x model.Features) (model.Features, error) {
	return u.transform(x, false)
}

func (u *Union) transform(x model.Features, learn bool) (model.Features, error) {
	out := make(model.Features)

	for _, e := range u.steps.entries {
		xt, err := transformWith(e.step, x, learn)
		if err != nil {
			return nil, errors.Wrapf(err, "union member %s", e.name)
		}

		for k, v := range xt {
			out[k] = v
		}
	}

	return out, nil
}

// String joins the description of every member with a plus.
func (u *Union) String() string {
	parts := make([]string, len(u.steps.entries))
	for i, e := range u.steps.entries {
		parts[i] = describe(e.step)
	}

	return strings.Join(parts, " + ")
}

// Describe is the same as String.
func (u *Union) Describe() string {
	return u.String()
}

var (
	_ model.Transformer = (*Union)(nil)
	_ model.Describer   = (*Union)(nil)
)
