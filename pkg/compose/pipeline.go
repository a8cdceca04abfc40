package compose

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// Pipeline is an ordered, name-keyed sequence of steps.
type Pipeline struct {
	steps registry
	hooks []model.Hook
}

// New creates a pipeline from steps, in order.
//
// A step is any value implementing a capability of the model package, a NamedStep, a
// function with the signature func(model.Features) model.Features or
// func(model.Features) (model.Features, error), or a constructor func() model.Step which is
// called without argument.
func New(steps ...any) (*Pipeline, error) {
	pipe := &Pipeline{steps: newRegistry()}

	for _, step := range steps {
		_, err := pipe.Append(step)
		if err != nil {
			return nil, errors.Wrap(err, "unable to add step to pipeline")
		}
	}

	return pipe, nil
}

// WithLogger sets the logger used when steps are added.
func (p *Pipeline) WithLogger(logger zerolog.Logger) *Pipeline {
	p.steps.logger = logger.With().Str("component", "pipeline").Logger()

	return p
}

// WithHooks registers hooks notified after each step call.
func (p *Pipeline) WithHooks(hooks ...model.Hook) *Pipeline {
	p.hooks = append(p.hooks, hooks...)

	return p
}

// WithoutHooks unregisters hooks previously passed to WithHooks. Hooks are compared with ==.
func (p *Pipeline) WithoutHooks(hooks ...model.Hook) *Pipeline {
	p.hooks = slices.DeleteFunc(p.hooks, func(registered model.Hook) bool {
		return slices.Contains(hooks, registered)
	})

	return p
}

// Append inserts step at the end of the pipeline and returns the name it was stored under.
func (p *Pipeline) Append(step any) (string, error) {
	return p.steps.insert(step, false)
}

// Prepend inserts step at the start of the pipeline and returns the name it was stored under.
func (p *Pipeline) Prepend(step any) (string, error) {
	return p.steps.insert(step, true)
}

// Get returns the step stored under name.
func (p *Pipeline) Get(name string) (model.Step, error) {
	return p.steps.get(name)
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps.entries)
}

// Names returns the step names, in order.
func (p *Pipeline) Names() []string {
	return p.steps.names()
}

// Steps returns the steps, in order.
func (p *Pipeline) Steps() []model.Step {
	return p.steps.steps()
}

// Terminal returns the last step of the pipeline.
func (p *Pipeline) Terminal() (model.Step, error) {
	last, err := p.terminal()
	if err != nil {
		return nil, err
	}

	return last.step, nil
}

// String joins the description of every step with a pipe.
func (p *Pipeline) String() string {
	parts := make([]string, len(p.steps.entries))
	for i, e := range p.steps.entries {
		parts[i] = describe(e.step)
	}

	return strings.Join(parts, " | ")
}

// Describe is the same as String.
func (p *Pipeline) Describe() string {
	return p.String()
}

func (p *Pipeline) terminal() (entry, error) {
	if len(p.steps.entries) == 0 {
		return entry{}, ErrEmptyPipeline
	}

	return p.steps.entries[len(p.steps.entries)-1], nil
}

// transformers returns the steps used to transform an observation: every step but the last,
// plus the last one when it can transform.
func (p *Pipeline) transformers() []entry {
	last, err := p.terminal()
	if err != nil {
		return nil
	}

	if isTransformer(last.step) {
		return p.steps.entries
	}

	return p.steps.entries[:len(p.steps.entries)-1]
}

// isTransformer reports whether step can be used to transform an observation.
// A nested pipeline can when its own terminal step can.
func isTransformer(step model.Step) bool {
	switch typed := step.(type) {
	case *Union:
		return true
	case *Pipeline:
		last, err := typed.terminal()

		return err == nil && isTransformer(last.step)
	}

	_, ok := step.(model.Transformer)

	return ok
}

func isSupervised(step model.Step) bool {
	_, ok := step.(model.SupervisedLearner)

	return ok
}

func stepInfo(idx int, e entry) *model.StepInfo {
	info := &model.StepInfo{
		Type:  model.NormalStepType,
		Name:  e.name,
		Index: idx,
	}

	switch e.step.(type) {
	case *Union:
		info.Type = model.UnionStepType
	case *Pipeline:
		info.Type = model.PipelineStepType
	}

	return info
}

func memberInfo(parent *model.StepInfo, idx int, e entry) *model.StepInfo {
	info := stepInfo(idx, e)
	info.Type = model.MemberStepType
	info.Parent = parent.Key()

	return info
}

var (
	_ model.Transformer       = (*Pipeline)(nil)
	_ model.SupervisedLearner = (*Pipeline)(nil)
	_ model.Predictor         = (*Pipeline)(nil)
	_ model.ProbaPredictor    = (*Pipeline)(nil)
	_ model.Forecaster        = (*Pipeline)(nil)
	_ model.Describer         = (*Pipeline)(nil)
)
