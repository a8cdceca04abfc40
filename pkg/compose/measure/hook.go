package measure

import (
	"time"

	"github.com/askiada/go-compose/pkg/compose/model"
)

type pipelineMeasure struct {
	Measure
}

// OnStep records the duration of a step call under the key of the step, which is
// "<union>/<member>" for union members.
func (pm *pipelineMeasure) OnStep(step *model.StepInfo, op model.Operation, elapsed time.Duration) error {
	pm.AddMetric(step.Key()).AddDuration(op, elapsed)

	return nil
}

// PipelineMeasure turns measure into a hook to pass to a pipeline.
func PipelineMeasure(measure Measure) model.Hook {
	return &pipelineMeasure{measure}
}
