// Package drawer renders the network of a pipeline.
package drawer

import (
	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/measure"
)

// Drawer is a compose.Renderer which can also display step durations.
type Drawer interface {
	compose.Renderer
	// AddMeasure annotates the next renderings with the durations recorded by measure.
	AddMeasure(measure measure.Measure) error
}
