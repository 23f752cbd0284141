package form

import (
	"sort"
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

// Factory creates an element of one type.
type Factory func(name string, opts ...Option) (Element, error)

// Typed adapts a constructor returning a concrete element to Factory.
func Typed[T Element](fn func(name string, opts ...Option) (T, error)) Factory {
	return func(name string, opts ...Option) (Element, error) {
		el, err := fn(name, opts...)
		if err != nil {
			return nil, err
		}
		return el, nil
	}
}

// Registry maps type names to element factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for typ.
func (r *Registry) Register(typ string, f Factory) {
	r.factories[strings.ToLower(typ)] = f
}

// Lookup returns the factory for typ.
func (r *Registry) Lookup(typ string) (Factory, bool) {
	f, ok := r.factories[strings.ToLower(typ)]
	return f, ok
}

// Types returns the registered type names, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// New creates an element of type typ.
func (r *Registry) New(typ, name string, opts ...Option) (Element, error) {
	f, ok := r.Lookup(typ)
	if !ok {
		return nil, herrors.New("F002").
			WithDetailf("%q", typ).
			WithSuggestion("known types: " + strings.Join(r.Types(), ", "))
	}
	return f(name, opts...)
}

// Clone returns a copy that can be extended independently.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for t, f := range r.factories {
		c.factories[t] = f
	}
	return c
}

var defaultRegistry = newBuiltinRegistry()

// DefaultRegistry returns the registry of built-in element types. Clone it
// before registering custom types.
func DefaultRegistry() *Registry { return defaultRegistry }

func newBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeText, Typed(NewText))
	r.Register(TypePassword, Typed(NewPassword))
	r.Register(TypeEmail, Typed(NewEmail))
	r.Register(TypeNumber, Typed(NewNumber))
	r.Register(TypeHidden, Typed(NewHidden))
	r.Register(TypeSubmit, Typed(NewSubmit))
	r.Register("button", Typed(NewButton))
	r.Register("checkbox", Typed(NewCheckbox))
	r.Register("textarea", Typed(NewTextarea))
	r.Register("select", Typed(NewSelect))
	r.Register("radio", Typed(NewRadio))
	r.Register("fieldset", Typed(NewFieldset))
	return r
}
