package drawer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-compose/pkg/compose"
	"github.com/askiada/go-compose/pkg/compose/measure"
	"github.com/askiada/go-compose/pkg/compose/model"
)

// DOTDrawer renders a network in the DOT language of Graphviz.
type DOTDrawer struct {
	wrt        io.Writer
	fileName   string
	measure    measure.Measure
	attributes map[string]string
}

// Option configures a DOTDrawer.
type Option func(d *DOTDrawer)

// GraphAttribute sets an attribute of the whole graph, such as rankdir.
func GraphAttribute(key, value string) Option {
	return func(d *DOTDrawer) {
		d.attributes[key] = value
	}
}

// NewDOTDrawer creates a drawer writing to wrt.
func NewDOTDrawer(wrt io.Writer, opts ...Option) *DOTDrawer {
	d := &DOTDrawer{
		wrt:        wrt,
		attributes: make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// NewDOTFileDrawer creates a drawer writing to the file fileName, truncated on each rendering.
func NewDOTFileDrawer(fileName string, opts ...Option) *DOTDrawer {
	d := NewDOTDrawer(nil, opts...)
	d.fileName = fileName

	return d
}

// AddMeasure annotates each node having a metric in msr with its average duration.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	if msr == nil {
		return errors.New("measure must be set")
	}

	d.measure = msr

	return nil
}

// Render writes the DOT description of net.
func (d *DOTDrawer) Render(net *compose.Network) error {
	if net == nil {
		return errors.New("network must be set")
	}

	bld := newBuilder()

	err := bld.addNetwork(net, nil)
	if err != nil {
		return errors.Wrap(err, "unable to build graph")
	}

	err = decorateTerminals(bld)
	if err != nil {
		return err
	}

	if d.measure != nil {
		err = decorateDurations(bld, d.measure)
		if err != nil {
			return errors.Wrap(err, "unable to add durations")
		}
	}

	desc, err := generateDOT(bld, d.attributes)
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	wrt := d.wrt
	if d.fileName != "" {
		file, err := os.Create(d.fileName)
		if err != nil {
			return errors.Wrapf(err, "unable to create file %s", d.fileName)
		}
		defer file.Close()

		wrt = file
	}

	if wrt == nil {
		return errors.New("writer must be set")
	}

	return renderDOT(wrt, desc)
}

func decorateTerminals(bld *builder) error {
	fill, err := colors.RGB(230, 230, 230) //nolint
	if err != nil {
		return errors.Wrap(err, "unable to get colour")
	}

	for _, name := range []string{model.Source, model.Sink} {
		err := bld.store.UpdateVertex(name,
			graph.VertexAttribute("shape", "circle"),
			graph.VertexAttribute("style", "filled"),
			graph.VertexAttribute("fillcolor", fill.ToHEX().String()),
		)
		if err != nil && !errors.Is(err, graph.ErrVertexNotFound) {
			return errors.Wrapf(err, "unable to decorate %s", name)
		}
	}

	return nil
}

const maxRGB = 240

// decorateDurations labels each node with the average duration recorded under its key and
// colours it from blue, the fastest step, to red, the slowest one.
func decorateDurations(bld *builder, msr measure.Measure) error {
	vertices, err := bld.store.ListVertices()
	if err != nil {
		return errors.Wrap(err, "unable to list vertices")
	}

	durations := make(map[string]time.Duration)
	var minValue, maxValue time.Duration

	for _, name := range vertices {
		mt, ok := msr.GetMetric(bld.key(name))
		if !ok || mt.Total() == 0 {
			continue
		}

		avg := mt.AVGDuration()
		if len(durations) == 0 || avg < minValue {
			minValue = avg
		}

		if len(durations) == 0 || avg > maxValue {
			maxValue = avg
		}

		durations[name] = avg
	}

	for _, name := range vertices {
		avg, ok := durations[name]
		if !ok {
			continue
		}

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		err = bld.store.UpdateVertex(name,
			graph.VertexAttribute("xlabel", avg.String()),
			graph.VertexAttribute("color", colour.ToHEX().String()),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to update vertex %s", name)
		}
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict digraph {
{{- range $k, $v := .Attributes}}
	{{$k}}="{{escape $v}}";
{{- end}}
{{- range .Nodes}}
	"{{escape .Name}}" [ {{if .HTMLLabel}}label={{.HTMLLabel}}, {{end}}{{range $k, $v := .Attributes}}{{$k}}="{{escape $v}}", {{end}}weight={{.Weight}} ];
{{- end}}
{{- range .Clusters}}{{template "cluster" .}}{{end}}
{{- range .Edges}}
	"{{escape .Source}}" -> "{{escape .Target}}" [ {{range $k, $v := .Attributes}}{{$k}}="{{escape $v}}", {{end}}weight={{.Weight}} ];
{{- end}}
}
{{define "cluster"}}
	subgraph "cluster_{{escape .Name}}" {
		label="{{escape .Name}}";
		labelloc="{{.LabelLoc}}";
{{- range .Nodes}}
		"{{escape .}}";
{{- end}}
{{- range .Children}}{{template "cluster" .}}{{end}}
	}
{{- end}}`

type description struct {
	Attributes map[string]string
	Nodes      []nodeStatement
	Edges      []edgeStatement
	Clusters   []*cluster
}

type nodeStatement struct {
	Name       string
	HTMLLabel  string
	Attributes map[string]string
	Weight     int
}

type edgeStatement struct {
	Source     string
	Target     string
	Attributes map[string]string
	Weight     int
}

func generateDOT(bld *builder, attributes map[string]string) (description, error) {
	desc := description{
		Attributes: attributes,
		Clusters:   bld.clusters,
	}

	vertices, err := bld.store.ListVertices()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list vertices")
	}

	for _, vertex := range vertices {
		_, properties, err := bld.graph.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attrs := make(map[string]string, len(properties.Attributes))
		for k, v := range properties.Attributes {
			attrs[k] = v
		}

		stmt := nodeStatement{
			Name:       vertex,
			Attributes: attrs,
			Weight:     properties.Weight,
		}

		if xlabel, ok := attrs["xlabel"]; ok {
			stmt.HTMLLabel = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, htmlEscape(vertex), htmlEscape(xlabel))

			delete(attrs, "xlabel")
		}

		desc.Nodes = append(desc.Nodes, stmt)
	}

	edges, err := bld.graph.Edges()
	if err != nil {
		return desc, errors.Wrap(err, "unable to list edges")
	}

	for _, edge := range edges {
		desc.Edges = append(desc.Edges, edgeStatement{
			Source:     edge.Source,
			Target:     edge.Target,
			Attributes: edge.Properties.Attributes,
			Weight:     edge.Properties.Weight,
		})
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Funcs(template.FuncMap{
		"escape": escape,
	}).Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func htmlEscape(s string) string {
	return htmlReplacer.Replace(s)
}

var _ Drawer = (*DOTDrawer)(nil)
