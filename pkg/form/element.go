package form

import (
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// Namer is anything with a computed name, such as a fieldset.
type Namer interface {
	FullName() string
}

// Element is a form element.
type Element interface {
	html.Container
	decorator.Element

	// FullName returns the rendered name, nested under the parent
	// fieldsets: outer[inner][name].
	FullName() string
	SetName(name string)
	Value() any
	SetValue(value any) error
	Validate() bool
	AddMessage(msg string)
	IsIgnored() bool
	Decorators() *decorator.Chain
	SetDecorators(chain *decorator.Chain)
	SetParent(parent Namer)
	Base() *BaseElement
	CloneElement() Element
}

// BaseElement holds the state shared by all form elements. Types embedding
// it must call Init with themselves.
type BaseElement struct {
	html.Element

	self            Element
	name            string
	parent          Namer
	multiple        bool
	value           any
	label           string
	description     string
	descriptionNode html.Node
	required        bool
	ignored         bool
	validators      []Validator
	messages        []string
	validated       bool
	decorators      *decorator.Chain
}

// Init binds the element to self and renders it as tag. The name attribute
// is backed by FullName.
func (b *BaseElement) Init(self Element, tag, name string) {
	b.initElement(self, tag, name)
	b.registerName()
}

func (b *BaseElement) initElement(self Element, tag, name string) {
	b.self = self
	b.name = name
	b.Element.Init(self, tag)
}

func (b *BaseElement) registerName() {
	mustRegister(b.Attributes(), "name",
		func(o any) any {
			if n := o.(Element).FullName(); n != "" {
				return n
			}
			return nil
		},
		func(o any, v any) error {
			o.(Element).SetName(toString(v))
			return nil
		},
	)
}

func (b *BaseElement) registerRequired() {
	mustRegister(b.Attributes(), "required",
		func(o any) any { return o.(Element).IsRequired() },
		func(o any, v any) error {
			o.(Element).Base().required = truthy(v)
			return nil
		},
	)
}

func mustRegister(attrs *html.Attributes, name string, get html.Getter, set html.Setter) {
	if err := attrs.RegisterCallback(name, get, set); err != nil {
		panic(err)
	}
}

// Base returns b.
func (b *BaseElement) Base() *BaseElement { return b }

// Name returns the element's own name.
func (b *BaseElement) Name() string { return b.name }

// SetName sets the element's own name.
func (b *BaseElement) SetName(name string) { b.name = name }

// FullName returns the name including the parents: parent[name], with []
// appended for multi-valued elements.
func (b *BaseElement) FullName() string {
	name := b.name
	if name == "" {
		return ""
	}
	if b.parent != nil {
		if p := b.parent.FullName(); p != "" {
			name = p + "[" + name + "]"
		}
	}
	if b.multiple {
		name += "[]"
	}
	return name
}

// SetParent nests the element under parent.
func (b *BaseElement) SetParent(parent Namer) { b.parent = parent }

// Parent returns the parent, if any.
func (b *BaseElement) Parent() Namer { return b.parent }

// ID returns the id attribute.
func (b *BaseElement) ID() string { return b.Attr("id") }

// Label returns the label.
func (b *BaseElement) Label() string { return b.label }

// SetLabel sets the label.
func (b *BaseElement) SetLabel(label string) { b.label = label }

// Description returns the description.
func (b *BaseElement) Description() string { return b.description }

// SetDescription sets the description.
func (b *BaseElement) SetDescription(desc string) { b.description = desc }

// DescriptionNode returns the markup description, if set.
func (b *BaseElement) DescriptionNode() html.Node { return b.descriptionNode }

// IsRequired reports whether a value is required.
func (b *BaseElement) IsRequired() bool { return b.required }

// SetRequired marks the element as required.
func (b *BaseElement) SetRequired(required bool) { b.required = required }

// IsIgnored reports whether the value is left out of Form.Values.
func (b *BaseElement) IsIgnored() bool { return b.ignored }

// SetIgnored excludes the value from Form.Values.
func (b *BaseElement) SetIgnored(ignored bool) { b.ignored = ignored }

// Value returns the current value.
func (b *BaseElement) Value() any { return b.value }

// SetValue sets the value.
func (b *BaseElement) SetValue(value any) error {
	b.value = value
	return nil
}

// AddValidators appends validators.
func (b *BaseElement) AddValidators(validators ...Validator) {
	b.validators = append(b.validators, validators...)
}

// Validators returns the validators.
func (b *BaseElement) Validators() []Validator {
	return append([]Validator(nil), b.validators...)
}

// Validate checks the current value. Failures are recorded as messages.
func (b *BaseElement) Validate() bool {
	b.validated = true
	b.messages = nil

	value := b.self.Value()
	if b.required && isEmpty(value) {
		b.messages = append(b.messages, requiredMessage)
		return false
	}
	for _, v := range b.validators {
		if err := v.Validate(value); err != nil {
			b.messages = append(b.messages, err.Error())
		}
	}
	return len(b.messages) == 0
}

// HasBeenValidated reports whether Validate ran or a message was added.
func (b *BaseElement) HasBeenValidated() bool { return b.validated }

// IsValid reports whether there are no messages.
func (b *BaseElement) IsValid() bool { return len(b.messages) == 0 }

// Messages returns the validation messages.
func (b *BaseElement) Messages() []string { return append([]string(nil), b.messages...) }

// AddMessage records a validation failure.
func (b *BaseElement) AddMessage(msg string) {
	b.validated = true
	b.messages = append(b.messages, msg)
}

// Decorators returns the element's own chain, or nil.
func (b *BaseElement) Decorators() *decorator.Chain { return b.decorators }

// SetDecorators decorates the element with chain. A nil chain removes the
// decoration.
func (b *BaseElement) SetDecorators(chain *decorator.Chain) {
	b.decorators = chain
	if chain == nil {
		b.SetWrapper(nil)
		return
	}
	decorator.Decorate(b.self, chain)
}

// copyBase copies b for self. The copy is undecorated unless b has its own
// chain, and has no parent.
func (b *BaseElement) copyBase(self Element) BaseElement {
	c := *b
	c.Element = b.Element.Copy(self)
	c.self = self
	c.parent = nil
	c.value = copyValue(b.value)
	c.validators = b.Validators()
	c.messages = b.Messages()
	c.SetWrapper(nil)
	return c
}

// decorateCopy installs the copied chain once the copy is complete.
func decorateCopy(el Element) Element {
	if chain := el.Decorators(); chain != nil {
		decorator.Decorate(el, chain)
	}
	return el
}

func copyValue(v any) any {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = copyValue(item)
		}
		return m
	}
	return v
}
