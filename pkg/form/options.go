package form

import (
	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// Option configures an element on creation.
type Option func(Element) error

func apply(el Element, opts []Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(el); err != nil {
			return err
		}
	}
	return nil
}

func unsupported(el Element, option string) error {
	return herrors.New("F007").WithDetailf("%s on %T %q", option, el, el.Name())
}

func invalidValue(el Element, value any) error {
	return herrors.New("F003").WithDetailf("%T for %T %q", value, el, el.Name())
}

// WithLabel sets the label.
func WithLabel(label string) Option {
	return func(el Element) error {
		el.Base().SetLabel(label)
		return nil
	}
}

// WithDescription sets the plain text description.
func WithDescription(desc string) Option {
	return func(el Element) error {
		el.Base().SetDescription(desc)
		return nil
	}
}

// WithDescriptionNode sets a markup description, such as rendered markdown.
func WithDescriptionNode(n html.Node) Option {
	return func(el Element) error {
		el.Base().descriptionNode = n
		return nil
	}
}

// WithValue sets the initial value.
func WithValue(value any) Option {
	return func(el Element) error { return el.SetValue(value) }
}

// WithRequired marks the element as required.
func WithRequired(required bool) Option {
	return func(el Element) error {
		el.Base().SetRequired(required)
		return nil
	}
}

// WithValidators appends validators.
func WithValidators(validators ...Validator) Option {
	return func(el Element) error {
		el.Base().AddValidators(validators...)
		return nil
	}
}

// WithAttributes merges attributes into the element.
func WithAttributes(attrs html.Attrs) Option {
	return func(el Element) error { return el.Base().AddAttributes(attrs) }
}

// WithPlaceholder sets the placeholder attribute.
func WithPlaceholder(text string) Option {
	return func(el Element) error { return el.Base().SetAttribute("placeholder", text) }
}

// WithID sets the id attribute, which labels point to.
func WithID(id string) Option {
	return func(el Element) error { return el.Base().SetAttribute("id", id) }
}

// WithIgnored leaves the value out of Form.Values.
func WithIgnored(ignored bool) Option {
	return func(el Element) error {
		el.Base().SetIgnored(ignored)
		return nil
	}
}

// WithDecorators gives the element its own chain instead of the form's
// default decorators. Specs are in the format accepted by
// decorator.ParseSpec.
func WithDecorators(specs ...any) Option {
	return func(el Element) error {
		chain := decorator.NewChain()
		if err := chain.AddDecorators(specs...); err != nil {
			return err
		}
		el.SetDecorators(chain)
		return nil
	}
}

type chooser interface {
	AddChoices(choices ...Choice)
}

// WithOptions adds choices to a select or radio group.
func WithOptions(choices ...Choice) Option {
	return func(el Element) error {
		c, ok := el.(chooser)
		if !ok {
			return unsupported(el, "WithOptions")
		}
		c.AddChoices(choices...)
		return nil
	}
}

type multiValued interface {
	SetMultiple(multiple bool)
}

// WithMultiple allows several values.
func WithMultiple(multiple bool) Option {
	return func(el Element) error {
		m, ok := el.(multiValued)
		if !ok {
			return unsupported(el, "WithMultiple")
		}
		m.SetMultiple(multiple)
		return nil
	}
}

// WithCheckedValues sets the values a checkbox submits when checked and
// reports when unchecked.
func WithCheckedValues(checked, unchecked string) Option {
	return func(el Element) error {
		cb, ok := el.(*Checkbox)
		if !ok {
			return unsupported(el, "WithCheckedValues")
		}
		cb.checkedValue, cb.uncheckedValue = checked, unchecked
		return nil
	}
}
