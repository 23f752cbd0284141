package form

import (
	"errors"
	"log/slog"
	"sort"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// container is the element registry shared by Form and Fieldset. Elements
// are kept in registration order and mirrored into the host document.
type container struct {
	doc    *html.Document
	parent Namer

	names    []string
	elements map[string]Element
	staged   map[string]any

	factories   *Registry
	defaults    *decorator.Chain
	ownDefaults bool
	loader      *decorator.Loader
	observer    decorator.Observer
	logger      *slog.Logger
}

func (c *container) initContainer(doc *html.Document, parent Namer) {
	c.doc = doc
	c.parent = parent
	c.elements = make(map[string]Element)
	c.staged = make(map[string]any)
}

func (c *container) log() *slog.Logger { return logging.OrDefault(c.logger) }

func (c *container) registry() *Registry {
	if c.factories == nil {
		return DefaultRegistry()
	}
	return c.factories
}

// AddElement creates an element of type typ and registers it.
func (c *container) AddElement(typ, name string, opts ...Option) (Element, error) {
	el, err := c.registry().New(typ, name, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.RegisterElement(el); err != nil {
		return nil, err
	}
	return el, nil
}

// RegisterElement adds el. An element registered under the same name is
// replaced in place. Staged values for the name are applied to el.
func (c *container) RegisterElement(el Element) error {
	name := el.Name()
	if name == "" {
		return herrors.New("F006").WithDetailf("%T", el)
	}
	el.SetParent(c.parent)

	old, ok := c.elements[name]
	switch {
	case ok && old == el:
		// Same instance: keep its position.
	case ok:
		if err := c.doc.InsertBefore(el, old); err != nil {
			return err
		}
		c.doc.Remove(old)
		old.SetParent(nil)
	default:
		c.names = append(c.names, name)
		c.doc.Add(el)
	}
	c.elements[name] = el
	c.decorate(el)

	if v, ok := c.staged[name]; ok {
		delete(c.staged, name)
		if err := el.SetValue(v); err != nil {
			return err
		}
		c.log().Debug("applied staged value", logging.FieldElement, name)
	}
	c.log().Debug("registered element", logging.FieldElement, name, logging.FieldTag, el.Base().Tag())
	return nil
}

func (c *container) decorate(el Element) {
	if fs, ok := el.(*Fieldset); ok {
		fs.inherit(c)
	}
	if own := el.Decorators(); own != nil {
		if c.observer != nil {
			own.SetObserver(c.observer)
		}
		return
	}
	if c.defaults != nil {
		decorator.Decorate(el, c.defaults)
	} else if _, ok := el.Doc().Wrapper().(*decorator.Decoration); ok {
		el.Doc().SetWrapper(nil)
	}
}

// Lookup returns the element registered under name.
func (c *container) Lookup(name string) (Element, error) {
	el, ok := c.elements[name]
	if !ok {
		return nil, herrors.New("F001").WithDetailf("%q", name)
	}
	return el, nil
}

// HasElement reports whether an element is registered under name.
func (c *container) HasElement(name string) bool {
	_, ok := c.elements[name]
	return ok
}

// Elements returns the elements in registration order.
func (c *container) Elements() []Element {
	out := make([]Element, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.elements[name])
	}
	return out
}

// Remove removes the element registered under name.
func (c *container) Remove(name string) {
	el, ok := c.elements[name]
	if !ok {
		return
	}
	delete(c.elements, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	c.doc.Remove(el)
	el.SetParent(nil)
}

// Populate sets the values of the elements by name. Values for unknown
// names are staged and applied when such an element is registered.
func (c *container) Populate(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, name := range keys {
		el, ok := c.elements[name]
		if !ok {
			c.staged[name] = values[name]
			c.log().Debug("staged value", logging.FieldElement, name, logging.FieldStaged, true)
			continue
		}
		if err := el.SetValue(values[name]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Staged returns the names of values waiting for an element.
func (c *container) Staged() []string {
	names := make([]string, 0, len(c.staged))
	for name := range c.staged {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns the values of all elements that are not ignored.
func (c *container) Values() map[string]any {
	out := make(map[string]any, len(c.names))
	for _, name := range c.names {
		el := c.elements[name]
		if el.IsIgnored() {
			continue
		}
		out[name] = el.Value()
	}
	return out
}

func (c *container) validate() bool {
	valid := true
	for _, el := range c.Elements() {
		if !el.Validate() {
			valid = false
		}
	}
	return valid
}

func (c *container) isValid() bool {
	for _, el := range c.elements {
		if !el.IsValid() {
			return false
		}
	}
	return true
}

// SetDefaultDecorators decorates every element without its own chain,
// including those registered later and those of nested fieldsets.
func (c *container) SetDefaultDecorators(specs ...any) error {
	chain := decorator.NewChain(c.chainOptions()...)
	if err := chain.AddDecorators(specs...); err != nil {
		return err
	}
	c.setDefaults(chain, true)
	return nil
}

// DefaultDecorators returns the default chain, or nil.
func (c *container) DefaultDecorators() *decorator.Chain { return c.defaults }

func (c *container) chainOptions() []decorator.ChainOption {
	var opts []decorator.ChainOption
	if c.loader != nil {
		opts = append(opts, decorator.WithLoader(c.loader))
	}
	if c.observer != nil {
		opts = append(opts, decorator.WithObserver(c.observer))
	}
	if c.logger != nil {
		opts = append(opts, decorator.WithLogger(c.logger))
	}
	return opts
}

func (c *container) setDefaults(chain *decorator.Chain, own bool) {
	c.defaults = chain
	c.ownDefaults = own
	for _, el := range c.Elements() {
		c.decorate(el)
	}
}
