package preprocessing

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/askiada/go-compose/internal/num"
	"github.com/askiada/go-compose/pkg/compose/model"
)

var ErrNumericTarget = errors.New("target must be numeric")

// TargetEncoder replaces a categorical feature with the running mean of the target observed
// for its category. Categories never seen are encoded with Prior.
type TargetEncoder struct {
	On    string
	Prior float64
	means map[string]*runningStat
}

func NewTargetEncoder(on string, prior float64) *TargetEncoder {
	return &TargetEncoder{
		On:    on,
		Prior: prior,
		means: make(map[string]*runningStat),
	}
}

// LearnSupervised updates the target mean of the category of x.
func (te *TargetEncoder) LearnSupervised(x model.Features, y any) error {
	target, ok := num.Float(y)
	if !ok {
		return errors.Wrapf(ErrNumericTarget, "got %T", y)
	}

	category, ok := x[te.On]
	if !ok {
		return nil
	}

	key := fmt.Sprint(category)
	stat, ok := te.means[key]
	if !ok {
		stat = &runningStat{}
		te.means[key] = stat
	}

	stat.update(target)

	return nil
}

func (te *TargetEncoder) Transform(x model.Features) (model.Features, error) {
	out := make(model.Features, len(x))

	for k, v := range x {
		if k != te.On {
			out[k] = v

			continue
		}

		encoded := te.Prior
		if stat, ok := te.means[fmt.Sprint(v)]; ok {
			encoded = stat.mean
		}

		out[k+"_target_mean"] = encoded
	}

	return out, nil
}

var (
	_ model.SupervisedLearner = (*TargetEncoder)(nil)
	_ model.Transformer       = (*TargetEncoder)(nil)
)
