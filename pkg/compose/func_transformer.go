package compose

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/askiada/go-compose/pkg/compose/model"
)

// FuncTransformer turns a function into a step with the transform capability.
type FuncTransformer struct {
	fn   func(x model.Features) (model.Features, error)
	name string
}

// NewFuncTransformer wraps fn. The step is named after the function.
func NewFuncTransformer(fn func(x model.Features) (model.Features, error)) *FuncTransformer {
	return &FuncTransformer{fn: fn, name: funcName(fn)}
}

// Transform calls the wrapped function.
func (f *FuncTransformer) Transform(x model.Features) (model.Features, error) {
	return f.fn(x)
}

// Describe returns the name of the wrapped function.
func (f *FuncTransformer) Describe() string {
	return f.name
}

// funcName returns the identifier of a function, without its package path.
// Closures are reported by the compiler as func1, func2, ...
func funcName(fn any) string {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func || value.IsNil() {
		return "func"
	}

	rf := runtime.FuncForPC(value.Pointer())
	if rf == nil {
		return "func"
	}

	name := rf.Name()
	name = name[strings.LastIndex(name, "/")+1:]
	name = name[strings.LastIndex(name, ".")+1:]

	return strings.TrimSuffix(name, "-fm")
}

var (
	_ model.Transformer = (*FuncTransformer)(nil)
	_ model.Describer   = (*FuncTransformer)(nil)
)
