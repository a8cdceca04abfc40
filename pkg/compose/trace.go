package compose

import (
	"fmt"
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/askiada/go-compose/pkg/compose/model"
)

const traceIndent = "    "

// TraceOptions configures Trace.
type TraceOptions struct {
	// ShowTypes appends the Go type of each value.
	ShowTypes bool
	// DecimalPlaces is the number of decimals printed for floating point values. Values are
	// rounded half to even; a negative count prints no decimals.
	DecimalPlaces int
}

// DefaultTraceOptions shows types and five decimals.
func DefaultTraceOptions() TraceOptions {
	return TraceOptions{ShowTypes: true, DecimalPlaces: 5}
}

// Trace returns a report of the state of x after each step of the pipeline, followed by the
// prediction of the terminal step when it is not a transformer.
//
// Trace does not update any step, so calling it twice with the same observation returns the
// same report.
func (p *Pipeline) Trace(x model.Features, opts TraceOptions) (string, error) {
	tr := &tracer{opts: opts}

	tr.title("0. Input", false)
	tr.features(x, opts.ShowTypes, false, true)

	for i, e := range p.transformers() {
		union, ok := e.step.(*Union)
		if !ok {
			tr.title(fmt.Sprintf("%d. %s", i+1, describe(e.step)), false)

			xt, err := transformWith(e.step, x, false)
			if err != nil {
				return "", errors.Wrapf(err, "step %s", e.name)
			}

			x = xt
			tr.features(x, opts.ShowTypes, false, true)

			continue
		}

		tr.title(fmt.Sprintf("%d. Union", i+1), false)

		for j, member := range union.steps.entries {
			name := member.name
			if pipe, ok := member.step.(*Pipeline); ok {
				name = pipe.String()
			}

			tr.title(fmt.Sprintf("%d.%d %s", i+1, j, name), true)

			xt, err := transformWith(member.step, x, false)
			if err != nil {
				return "", errors.Wrapf(err, "union member %s", member.name)
			}

			tr.features(xt, opts.ShowTypes, true, true)
		}

		xt, err := union.transform(x, false)
		if err != nil {
			return "", errors.Wrapf(err, "step %s", e.name)
		}

		x = xt
		tr.features(x, opts.ShowTypes, false, true)
	}

	last, err := p.terminal()
	if err != nil || isTransformer(last.step) {
		return tr.String(), nil //nolint:nilerr // an empty pipeline only has an input section
	}

	err = tr.terminal(p.Len(), last, x)
	if err != nil {
		return "", err
	}

	return tr.String(), nil
}

type tracer struct {
	buf  strings.Builder
	opts TraceOptions
}

func (tr *tracer) terminal(position int, last entry, x model.Features) error {
	tr.title(fmt.Sprintf("%d. %s", position, describe(last.step)), false)

	if explainer, ok := last.step.(model.Explainer); ok {
		explanation, err := explainer.Explain(x)
		if err != nil {
			return errors.Wrapf(err, "unable to explain %s", last.name)
		}

		tr.line(explanation)
	}

	tr.line("")

	if canPredictProba(last.step) {
		proba, err := predictProbaWith(last.step, x, false)
		if err != nil {
			return errors.Wrapf(err, "step %s", last.name)
		}

		tr.proba(proba)

		return nil
	}

	if canPredict(last.step) {
		pred, err := predictWith(last.step, x, false)
		if err != nil {
			return errors.Wrapf(err, "step %s", last.name)
		}

		tr.line("Prediction: " + tr.value(pred))
	}

	return nil
}

func (tr *tracer) line(s string) {
	tr.buf.WriteString(s)
	tr.buf.WriteByte('\n')
}

func (tr *tracer) title(title string, indent bool) {
	prefix := ""
	if indent {
		prefix = traceIndent
	}

	tr.line(prefix + title)
	tr.line(prefix + strings.Repeat("-", len(title)))
}

func (tr *tracer) features(x model.Features, showTypes, indent, spaceAfter bool) {
	prefix := ""
	if indent {
		prefix = traceIndent
	}

	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		v := x[k]

		typ := ""
		if showTypes {
			typ = fmt.Sprintf(" (%T)", v)
		}

		tr.line(prefix + k + ": " + tr.value(v) + typ)
	}

	if spaceAfter {
		tr.line("")
	}
}

func (tr *tracer) proba(proba map[any]float64) {
	type classProba struct {
		label string
		proba float64
	}

	classes := make([]classProba, 0, len(proba))
	for label, p := range proba {
		classes = append(classes, classProba{label: fmt.Sprint(label), proba: p})
	}

	sort.Slice(classes, func(i, j int) bool {
		return classes[i].label < classes[j].label
	})

	for _, c := range classes {
		tr.line(c.label + ": " + tr.value(c.proba))
	}
}

func (tr *tracer) value(v any) string {
	switch typed := v.(type) {
	case float64:
		return formatFloat(typed, tr.opts.DecimalPlaces)
	case float32:
		return formatFloat(float64(typed), tr.opts.DecimalPlaces)
	default:
		return fmt.Sprint(v)
	}
}

func (tr *tracer) String() string {
	return strings.TrimRight(tr.buf.String(), " \n")
}

// formatFloat prints f with a comma as thousands separator and a dot as decimal separator.
func formatFloat(f float64, decimals int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', max(decimals, 0), 64)

	sign := ""
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = "-", rest
	}

	whole, fraction, hasFraction := strings.Cut(s, ".")
	if n, ok := new(big.Int).SetString(whole, 10); ok {
		whole = humanize.BigComma(n)
	}

	if hasFraction {
		return sign + whole + "." + fraction
	}

	return sign + whole
}
