package decorator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

// Factory creates a decorator with default settings.
type Factory func() Decorator

// Registry maps decorator names to factories. Lookups ignore case.
type Registry struct {
	namespace string

	mu        sync.RWMutex
	factories map[string]Factory
	names     map[string]string
}

// NewRegistry creates an empty registry. The namespace only shows up in
// error messages.
func NewRegistry(namespace string) *Registry {
	return &Registry{
		namespace: namespace,
		factories: make(map[string]Factory),
		names:     make(map[string]string),
	}
}

// Namespace returns the registry namespace.
func (r *Registry) Namespace() string { return r.namespace }

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(name)
	r.factories[key] = f
	r.names[key] = name
}

// Lookup returns the factory for name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[strings.ToLower(name)]
	return f, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for _, n := range r.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New creates the named decorator and applies opts.
func (r *Registry) New(name string, opts Options) (Decorator, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, herrors.New("D001").
			WithDetailf("%q in namespace %s", name, r.namespace).
			WithSuggestion("Registered decorators: " + strings.Join(r.Names(), ", "))
	}
	d := f()
	if err := configure(name, d, opts); err != nil {
		return nil, err
	}
	return d, nil
}

func configure(name string, d Decorator, opts Options) error {
	if len(opts) == 0 {
		return nil
	}
	c, ok := d.(Configurable)
	if !ok {
		return herrors.New("D002").WithDetailf("%s got options %v", name, opts.Keys())
	}
	if err := c.SetOptions(opts); err != nil {
		return fmt.Errorf("decorator %s: %w", name, err)
	}
	return nil
}

// Loader resolves names against a search path of registries. Earlier
// registries win.
type Loader struct {
	mu         sync.RWMutex
	registries []*Registry
}

// NewLoader creates a loader searching registries in order.
func NewLoader(registries ...*Registry) *Loader {
	return &Loader{registries: registries}
}

// Prepend puts r in front of the search path.
func (l *Loader) Prepend(r *Registry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registries = append([]*Registry{r}, l.registries...)
}

// Append puts r at the end of the search path.
func (l *Loader) Append(r *Registry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.registries = append(l.registries, r)
}

// Load creates the named decorator from the first registry that knows it.
func (l *Loader) Load(name string, opts Options) (Decorator, error) {
	l.mu.RLock()
	registries := append([]*Registry(nil), l.registries...)
	l.mu.RUnlock()

	namespaces := make([]string, 0, len(registries))
	for _, r := range registries {
		if _, ok := r.Lookup(name); ok {
			return r.New(name, opts)
		}
		namespaces = append(namespaces, r.Namespace())
	}
	return nil, herrors.New("D001").
		WithDetailf("%q (searched: %s)", name, strings.Join(namespaces, ", ")).
		WithSuggestion("Register the decorator or check its spelling")
}

// Names returns every name known to the loader, sorted and deduplicated.
func (l *Loader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	seen := make(map[string]bool)
	var names []string
	for _, r := range l.registries {
		for _, n := range r.Names() {
			if !seen[strings.ToLower(n)] {
				seen[strings.ToLower(n)] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Spec is a parsed decorator specification.
type Spec struct {
	Name      string
	Options   Options
	Decorator Decorator
}

const acceptedShapes = `"Name", a Decorator, decorator.Spec{Name, Options}, ` +
	`{"name": Name, "options": {...}}, {Name: {...}} or [Name, {...}]`

// ParseSpec accepts
//
//	"Label"
//	decorator.NewLabel()
//	decorator.Spec{Name: "HtmlTag", Options: decorator.Options{"tag": "div"}}
//	map[string]any{"name": "HtmlTag", "options": map[string]any{"tag": "div"}}
//	map[string]any{"HtmlTag": map[string]any{"tag": "div"}}
//	[]any{"HtmlTag", map[string]any{"tag": "div"}}
func ParseSpec(raw any) (Spec, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return Spec{}, invalidSpec(raw, "empty name")
		}
		return Spec{Name: v}, nil
	case Spec:
		if v.Name == "" && v.Decorator != nil {
			v.Name = NameOf(v.Decorator)
		}
		if v.Name == "" {
			return Spec{}, invalidSpec(raw, "missing name")
		}
		return v, nil
	case *Spec:
		if v == nil {
			return Spec{}, invalidSpec(raw, "nil spec")
		}
		return ParseSpec(*v)
	case Decorator:
		return Spec{Name: NameOf(v), Decorator: v}, nil
	case map[string]any:
		return parseMapSpec(v)
	case Options:
		return parseMapSpec(map[string]any(v))
	case []any:
		return parseListSpec(v)
	case []string:
		list := make([]any, len(v))
		for i, s := range v {
			list[i] = s
		}
		return parseListSpec(list)
	}
	return Spec{}, invalidSpec(raw, fmt.Sprintf("unsupported type %T", raw))
}

func parseMapSpec(m map[string]any) (Spec, error) {
	if rawName, ok := m["name"]; ok {
		name, ok := rawName.(string)
		if !ok || name == "" {
			return Spec{}, invalidSpec(m, "name must be a non-empty string")
		}
		for k := range m {
			if k != "name" && k != "options" {
				return Spec{}, invalidSpec(m, fmt.Sprintf("unexpected key %q", k))
			}
		}
		opts, err := toOptions(m["options"])
		if err != nil {
			return Spec{}, invalidSpec(m, err.Error())
		}
		return Spec{Name: name, Options: opts}, nil
	}
	if len(m) != 1 {
		return Spec{}, invalidSpec(m, "expected exactly one decorator name")
	}
	for name, rawOpts := range m {
		opts, err := toOptions(rawOpts)
		if err != nil {
			return Spec{}, invalidSpec(m, err.Error())
		}
		return Spec{Name: name, Options: opts}, nil
	}
	panic("unreachable")
}

func parseListSpec(list []any) (Spec, error) {
	if len(list) == 0 || len(list) > 2 {
		return Spec{}, invalidSpec(list, "expected [Name] or [Name, options]")
	}
	name, ok := list[0].(string)
	if !ok || name == "" {
		return Spec{}, invalidSpec(list, "first item must be the decorator name")
	}
	spec := Spec{Name: name}
	if len(list) == 2 {
		opts, err := toOptions(list[1])
		if err != nil {
			return Spec{}, invalidSpec(list, err.Error())
		}
		spec.Options = opts
	}
	return spec, nil
}

func toOptions(raw any) (Options, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case Options:
		return v, nil
	case map[string]any:
		return Options(v), nil
	case map[string]string:
		opts := make(Options, len(v))
		for k, s := range v {
			opts[k] = s
		}
		return opts, nil
	}
	return nil, fmt.Errorf("options must be a map, got %T", raw)
}

func invalidSpec(raw any, reason string) error {
	return herrors.New("D003").
		WithDetailf("%s in %#v; accepted shapes: %s", reason, raw, acceptedShapes)
}
