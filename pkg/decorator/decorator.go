package decorator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// Element is the view of a form element that decorators work with.
type Element interface {
	html.Node

	Name() string
	ID() string
	Label() string
	Description() string
	Messages() []string
	IsRequired() bool
	HasBeenValidated() bool
	IsValid() bool
}

// Decorator adds markup around an element by mutating the result.
type Decorator interface {
	Decorate(res *Result, el Element) error
}

// Func adapts a function to Decorator.
type Func func(res *Result, el Element) error

// Decorate implements Decorator.
func (f Func) Decorate(res *Result, el Element) error { return f(res, el) }

// Configurable is implemented by decorators that accept options.
type Configurable interface {
	Decorator
	SetOptions(opts Options) error
}

// Cloner is implemented by decorators that carry per-application state.
// The chain applies a fresh clone each time.
type Cloner interface {
	CloneDecorator() Decorator
}

// Named lets a decorator choose the name it is registered under when added
// to a chain by value.
type Named interface {
	DecoratorName() string
}

// Skipper is implemented by elements that never want some decorators, for
// example hidden inputs that have no label.
type Skipper interface {
	SkipDecorators() []string
}

// DescriptionNoder is implemented by elements whose description is markup
// rather than plain text.
type DescriptionNoder interface {
	DescriptionNode() html.Node
}

// NameOf returns the chain name of d.
func NameOf(d Decorator) string {
	if n, ok := d.(Named); ok {
		return n.DecoratorName()
	}
	t := reflect.TypeOf(d)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return fmt.Sprintf("%T", d)
	}
	return t.Name()
}

// Options configures a decorator.
type Options map[string]any

// String returns the string option key, or def.
func (o Options) String(key, def string) (string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidOption(key, "string", v)
	}
	return s, nil
}

// Bool returns the boolean option key, or def.
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, invalidOption(key, "bool", v)
	}
	return b, nil
}

// Attrs returns the map option key as attributes.
func (o Options) Attrs(key string) (html.Attrs, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch m := v.(type) {
	case html.Attrs:
		return m, nil
	case map[string]any:
		return html.Attrs(m), nil
	case map[string]string:
		attrs := make(html.Attrs, len(m))
		for k, s := range m {
			attrs[k] = s
		}
		return attrs, nil
	}
	return nil, invalidOption(key, "map", v)
}

// Keys returns the option names in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// checkKeys rejects options outside known.
func (o Options) checkKeys(known ...string) error {
	allowed := make(map[string]bool, len(known))
	for _, k := range known {
		allowed[k] = true
	}
	for _, k := range o.Keys() {
		if !allowed[k] {
			return herrors.New("D006").
				WithDetailf("unknown option %q", k).
				WithSuggestion("Supported options: " + strings.Join(known, ", "))
		}
	}
	return nil
}

func invalidOption(key, want string, got any) error {
	return herrors.New("D006").WithDetailf("option %q must be a %s, got %T", key, want, got)
}

// Placement says where a decorator puts its markup.
type Placement string

// Placements.
const (
	Append  Placement = "append"
	Prepend Placement = "prepend"
)

func parsePlacement(o Options, def Placement) (Placement, error) {
	s, err := o.String("placement", string(def))
	if err != nil {
		return "", err
	}
	switch p := Placement(strings.ToLower(s)); p {
	case Append, Prepend:
		return p, nil
	}
	return "", herrors.New("D006").WithDetailf("placement must be %q or %q, got %q", Append, Prepend, s)
}

func place(res *Result, p Placement, n html.Node) {
	if p == Prepend {
		res.Prepend(n)
		return
	}
	res.Append(n)
}
