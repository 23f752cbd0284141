package decorator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// RenderElementName is the decorator that places the element itself. A
// chain without it starts with the element already in the result.
const RenderElementName = "RenderElement"

// Event describes one decorator step of Apply.
type Event struct {
	Decorator string
	Element   string
	Skipped   bool
	Duration  time.Duration
	Err       error
}

// Observer receives an event for every decorator step.
type Observer interface {
	ObserveDecorator(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// ObserveDecorator implements Observer.
func (f ObserverFunc) ObserveDecorator(e Event) { f(e) }

// Chain is an ordered list of named decorators. It can be changed until it
// is applied for the first time.
type Chain struct {
	names      []string
	decorators map[string]Decorator
	frozen     bool

	loader   *Loader
	observer Observer
	logger   *slog.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithLoader sets the loader used to resolve decorators by name.
func WithLoader(l *Loader) ChainOption {
	return func(c *Chain) { c.loader = l }
}

// WithObserver sets the observer notified on every step.
func WithObserver(o Observer) ChainOption {
	return func(c *Chain) { c.observer = o }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ChainOption {
	return func(c *Chain) { c.logger = logger }
}

// NewChain creates an empty chain.
func NewChain(opts ...ChainOption) *Chain {
	c := &Chain{decorators: make(map[string]Decorator)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends d under name. A decorator already registered under name is
// replaced in place.
func (c *Chain) Add(name string, d Decorator) error {
	if c.frozen {
		return herrors.New("D005").WithDetailf("cannot add %q", name)
	}
	if name == "" || d == nil {
		return herrors.New("D003").WithDetail("decorator name and value are required")
	}
	if _, ok := c.decorators[name]; !ok {
		c.names = append(c.names, name)
	}
	c.decorators[name] = d
	return nil
}

// AddDecorators resolves and appends every spec. See ParseSpec for the
// accepted shapes.
func (c *Chain) AddDecorators(specs ...any) error {
	for _, raw := range specs {
		spec, err := ParseSpec(raw)
		if err != nil {
			return err
		}
		d := spec.Decorator
		if d == nil {
			d, err = c.Loader().Load(spec.Name, spec.Options)
			if err != nil {
				return err
			}
		} else if len(spec.Options) > 0 {
			if err := configure(spec.Name, d, spec.Options); err != nil {
				return err
			}
		}
		if err := c.Add(spec.Name, d); err != nil {
			return err
		}
	}
	return nil
}

// Remove drops the named decorator.
func (c *Chain) Remove(name string) error {
	if c.frozen {
		return herrors.New("D005").WithDetailf("cannot remove %q", name)
	}
	if _, ok := c.decorators[name]; !ok {
		return nil
	}
	delete(c.decorators, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return nil
}

// Loader returns the loader used by AddDecorators.
func (c *Chain) Loader() *Loader {
	if c.loader == nil {
		return DefaultLoader()
	}
	return c.loader
}

// SetObserver sets the observer notified on every step.
func (c *Chain) SetObserver(o Observer) { c.observer = o }

// Names returns the decorator names in order.
func (c *Chain) Names() []string { return append([]string(nil), c.names...) }

// Has reports whether name is part of the chain.
func (c *Chain) Has(name string) bool {
	_, ok := c.decorators[name]
	return ok
}

// Get returns the named decorator.
func (c *Chain) Get(name string) (Decorator, bool) {
	d, ok := c.decorators[name]
	return d, ok
}

// Len returns the number of decorators.
func (c *Chain) Len() int { return len(c.names) }

// Frozen reports whether the chain has been applied.
func (c *Chain) Frozen() bool { return c.frozen }

// Clone returns an unfrozen copy sharing the decorators.
func (c *Chain) Clone() *Chain {
	clone := &Chain{
		names:      c.Names(),
		decorators: make(map[string]Decorator, len(c.decorators)),
		loader:     c.loader,
		observer:   c.observer,
		logger:     c.logger,
	}
	for name, d := range c.decorators {
		clone.decorators[name] = d
	}
	return clone
}

// Apply runs the chain for el and returns the resolved markup.
//
// Decorators run in order. A decorator may ask for later decorators to be
// skipped; asking to skip one that already ran is a logic error.
func (c *Chain) Apply(el Element) (*html.Document, error) {
	c.frozen = true
	logger := logging.OrDefault(c.logger)
	elName := el.Name()

	res := NewResult()
	if !c.hasRenderElement() {
		res.Append(el)
	}
	if s, ok := el.(Skipper); ok {
		res.Skip(s.SkipDecorators()...)
	}

	applied := make(map[string]bool, len(c.names))
	for _, name := range c.names {
		if contains(res.skip, name) {
			logger.Debug("decorator skipped", logging.FieldDecorator, name, logging.FieldElement, elName)
			c.observe(Event{Decorator: name, Element: elName, Skipped: true})
			continue
		}

		d := c.decorators[name]
		if cl, ok := d.(Cloner); ok {
			d = cl.CloneDecorator()
		}

		start := time.Now()
		err := d.Decorate(res, el)
		c.observe(Event{Decorator: name, Element: elName, Duration: time.Since(start), Err: err})
		if err != nil {
			return nil, fmt.Errorf("decorator %s: %w", name, err)
		}
		applied[name] = true
		logger.Debug("decorator applied", logging.FieldDecorator, name, logging.FieldElement, elName)

		for _, skip := range res.skip {
			if applied[skip] {
				return nil, herrors.New("D004").
					WithDetailf("%s asked to skip %s on %q", name, skip, elName).
					WithSuggestion("Move " + skip + " after " + name + " in the chain")
			}
		}
	}

	return res.Resolve(), nil
}

func (c *Chain) hasRenderElement() bool {
	for _, d := range c.decorators {
		if _, ok := d.(*RenderElement); ok {
			return true
		}
	}
	return c.Has(RenderElementName)
}

func (c *Chain) observe(e Event) {
	if c.observer != nil {
		c.observer.ObserveDecorator(e)
	}
}

// String lists the decorator names.
func (c *Chain) String() string {
	return "[" + strings.Join(c.names, " ") + "]"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
