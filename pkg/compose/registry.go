package compose

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// NamedStep attaches an explicit name to a step.
type NamedStep struct {
	Name string
	Step any
}

// Named gives step a name instead of the inferred one.
func Named(name string, step any) NamedStep {
	return NamedStep{Name: name, Step: step}
}

type entry struct {
	name string
	step model.Step
}

// registry is an ordered collection of uniquely named steps.
type registry struct {
	entries []entry
	logger  zerolog.Logger
}

func newRegistry() registry {
	return registry{logger: zerolog.Nop()}
}

// insert adds step at the head or at the tail of the registry and returns its name.
func (r *registry) insert(step any, atHead bool) (string, error) {
	name, normalised, err := normalise(step)
	if err != nil {
		return "", err
	}

	if r.index(name) >= 0 {
		unique := r.uniqueName(name)
		r.logger.Debug().Str("name", name).Str("renamed", unique).Msg("step name already used")
		name = unique
	}

	e := entry{name: name, step: normalised}
	if atHead {
		r.entries = append([]entry{e}, r.entries...)
	} else {
		r.entries = append(r.entries, e)
	}

	r.logger.Debug().Str("name", name).Bool("head", atHead).Int("steps", len(r.entries)).Msg("step added")

	return name, nil
}

func (r *registry) uniqueName(name string) string {
	for counter := 1; ; counter++ {
		candidate := name + strconv.Itoa(counter)
		if r.index(candidate) < 0 {
			return candidate
		}
	}
}

func (r *registry) index(name string) int {
	for i, e := range r.entries {
		if e.name == name {
			return i
		}
	}

	return -1
}

func (r *registry) get(name string) (model.Step, error) {
	idx := r.index(name)
	if idx < 0 {
		return nil, errors.Wrapf(ErrStepNotFound, "%q", name)
	}

	return r.entries[idx].step, nil
}

func (r *registry) names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}

	return names
}

func (r *registry) steps() []model.Step {
	steps := make([]model.Step, len(r.entries))
	for i, e := range r.entries {
		steps[i] = e.step
	}

	return steps
}

// normalise resolves the name of step and turns functions into steps.
func normalise(step any) (string, model.Step, error) {
	name := ""
	if named, ok := step.(NamedStep); ok {
		name = named.Name
		step = named.Step
	}

	switch typed := step.(type) {
	case nil:
		return "", nil, ErrNilStep
	case func(model.Features) model.Features:
		if typed == nil {
			return "", nil, ErrNilStep
		}
		ft := NewFuncTransformer(func(x model.Features) (model.Features, error) {
			return typed(x), nil
		})
		ft.name = funcName(typed)
		step = ft
	case func(model.Features) (model.Features, error):
		if typed == nil {
			return "", nil, ErrNilStep
		}
		step = NewFuncTransformer(typed)
	default:
		built, ok, err := construct(step)
		if err != nil {
			return "", nil, err
		}
		if ok {
			step = built
		}
	}

	if !model.HasCapability(step) {
		return "", nil, errors.Wrapf(ErrNoCapability, "%T", step)
	}

	if name == "" {
		name = inferName(step)
	}

	return name, step, nil
}

// construct calls step when it is a constructor: a function taking no
// argument and returning a single value.
func construct(step any) (model.Step, bool, error) {
	fn := reflect.ValueOf(step)
	if fn.Kind() != reflect.Func || fn.Type().NumIn() != 0 || fn.Type().NumOut() != 1 {
		return nil, false, nil
	}

	if fn.IsNil() {
		return nil, false, ErrNilStep
	}

	out := fn.Call(nil)[0]
	switch out.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if out.IsNil() {
			return nil, false, ErrNilStep
		}
	}

	return out.Interface(), true, nil
}

func inferName(step model.Step) string {
	if ft, ok := step.(*FuncTransformer); ok {
		return ft.name
	}

	return kindName(step)
}

// kindName returns the name of the concrete type of step.
func kindName(step model.Step) string {
	typ := reflect.TypeOf(step)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ.Name() != "" {
		return typ.Name()
	}

	return typ.String()
}

// describe returns the display name of step.
func describe(step model.Step) string {
	if d, ok := step.(model.Describer); ok {
		return d.Describe()
	}

	return kindName(step)
}
