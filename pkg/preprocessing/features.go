package preprocessing

import (
	"fmt"
	"strings"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// Renamer adds a prefix to every feature name.
type Renamer struct {
	Prefix string
}

func NewRenamer(prefix string) *Renamer {
	return &Renamer{Prefix: prefix}
}

func (r *Renamer) Transform(x model.Features) (model.Features, error) {
	out := make(model.Features, len(x))
	for k, v := range x {
		out[r.Prefix+k] = v
	}

	return out, nil
}

// Select keeps the given features only. Missing features are ignored.
type Select struct {
	Keys []string
}

func NewSelect(keys ...string) *Select {
	return &Select{Keys: keys}
}

func (s *Select) Transform(x model.Features) (model.Features, error) {
	out := make(model.Features, len(s.Keys))

	for _, k := range s.Keys {
		if v, ok := x[k]; ok {
			out[k] = v
		}
	}

	return out, nil
}

func (s *Select) Describe() string {
	return fmt.Sprintf("Select(%s)", strings.Join(s.Keys, ", "))
}

var (
	_ model.Transformer = (*Renamer)(nil)
	_ model.Transformer = (*Select)(nil)
	_ model.Describer   = (*Select)(nil)
)
