package compose

import (
	"github.com/pkg/errors"
)

var (
	ErrStepNotFound       = errors.New("step not found")
	ErrCapabilityMismatch = errors.New("step does not have the required capability")
	ErrNoCapability       = errors.New("value does not implement any step capability")
	ErrNilStep            = errors.New("step must be set")
	ErrEmptyPipeline      = errors.New("pipeline has no step")
	ErrNoRenderer         = errors.New("renderer must be set")
)

func capabilityError(name, capability string) error {
	return errors.Wrapf(ErrCapabilityMismatch, "%s cannot %s", name, capability)
}
