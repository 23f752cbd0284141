package form

import (
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// Input types.
const (
	TypeText     = "text"
	TypePassword = "password"
	TypeEmail    = "email"
	TypeNumber   = "number"
	TypeHidden   = "hidden"
	TypeSubmit   = "submit"
)

// valuer supplies the value attribute of an input.
type valuer interface {
	inputValue() any
}

// Input is an <input> element.
type Input struct {
	BaseElement
	inputType string
}

// NewInput creates an input of the given type.
func NewInput(inputType, name string, opts ...Option) (*Input, error) {
	in := &Input{}
	in.initInput(in, inputType, name)
	if inputType == TypeEmail {
		in.AddValidators(Email(""))
	}
	if err := apply(in, opts); err != nil {
		return nil, err
	}
	return in, nil
}

// NewText creates a text input.
func NewText(name string, opts ...Option) (*Input, error) {
	return NewInput(TypeText, name, opts...)
}

// NewPassword creates a password input. Its value is never rendered.
func NewPassword(name string, opts ...Option) (*Input, error) {
	return NewInput(TypePassword, name, opts...)
}

// NewEmail creates an email input validating its value.
func NewEmail(name string, opts ...Option) (*Input, error) {
	return NewInput(TypeEmail, name, opts...)
}

// NewNumber creates a number input.
func NewNumber(name string, opts ...Option) (*Input, error) {
	return NewInput(TypeNumber, name, opts...)
}

func (in *Input) initInput(self Element, inputType, name string) {
	in.inputType = inputType
	in.Init(self, "input", name)
	if err := in.SetAttribute("type", inputType); err != nil {
		panic(err)
	}
	in.registerRequired()
	mustRegister(in.Attributes(), "value",
		func(o any) any { return o.(valuer).inputValue() },
		func(o any, v any) error { return o.(Element).SetValue(v) },
	)
}

// InputType returns the type attribute.
func (in *Input) InputType() string { return in.inputType }

func (in *Input) inputValue() any {
	if in.inputType == TypePassword {
		return nil
	}
	if s := toString(in.value); s != "" {
		return s
	}
	return nil
}

// SetValue stores the value as a string.
func (in *Input) SetValue(value any) error {
	if value == nil {
		in.value = nil
		return nil
	}
	if _, ok := value.(map[string]any); ok {
		return invalidValue(in, value)
	}
	in.value = toString(value)
	return nil
}

func (in *Input) copyInput(self Element) Input {
	return Input{BaseElement: in.copyBase(self), inputType: in.inputType}
}

// CloneElement implements Element.
func (in *Input) CloneElement() Element {
	c := &Input{}
	*c = in.copyInput(c)
	return decorateCopy(c)
}

// Hidden is an input of type hidden. It is never labelled or wrapped.
type Hidden struct {
	Input
}

// NewHidden creates a hidden input.
func NewHidden(name string, opts ...Option) (*Hidden, error) {
	h := &Hidden{}
	h.initInput(h, TypeHidden, name)
	if err := apply(h, opts); err != nil {
		return nil, err
	}
	return h, nil
}

// SkipDecorators implements decorator.Skipper.
func (*Hidden) SkipDecorators() []string {
	return []string{decorator.LabelName, decorator.DescriptionName, decorator.ErrorsName, decorator.HtmlTagName}
}

// CloneElement implements Element.
func (h *Hidden) CloneElement() Element {
	c := &Hidden{}
	c.Input = h.copyInput(c)
	return decorateCopy(c)
}

// Submit is a submit input whose caption is the label. It is ignored by
// Form.Values and remembers whether it was the button used to submit.
type Submit struct {
	Input
}

// NewSubmit creates a submit input.
func NewSubmit(name string, opts ...Option) (*Submit, error) {
	s := &Submit{}
	s.initInput(s, TypeSubmit, name)
	s.ignored = true
	if err := apply(s, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Submit) inputValue() any {
	if s.label != "" {
		return s.label
	}
	return s.Input.inputValue()
}

// Clicked reports whether the submitted values included this button.
func (s *Submit) Clicked() bool { return toString(s.value) != "" }

// SkipDecorators implements decorator.Skipper.
func (*Submit) SkipDecorators() []string { return []string{decorator.LabelName} }

// CloneElement implements Element.
func (s *Submit) CloneElement() Element {
	c := &Submit{}
	c.Input = s.copyInput(c)
	return decorateCopy(c)
}

// Button is a <button> element showing its label.
type Button struct {
	BaseElement
}

// NewButton creates a button of type submit.
func NewButton(name string, opts ...Option) (*Button, error) {
	b := &Button{}
	b.Init(b, "button", name)
	b.SetContent(html.Deferred(b.Label))
	b.ignored = true
	if err := b.SetAttribute("type", "submit"); err != nil {
		return nil, err
	}
	if err := apply(b, opts); err != nil {
		return nil, err
	}
	return b, nil
}

// Clicked reports whether the submitted values included this button.
func (b *Button) Clicked() bool { return toString(b.value) != "" }

// SkipDecorators implements decorator.Skipper.
func (*Button) SkipDecorators() []string { return []string{decorator.LabelName} }

// CloneElement implements Element.
func (b *Button) CloneElement() Element {
	c := &Button{}
	c.BaseElement = b.copyBase(c)
	c.SetContent(html.Deferred(c.Label))
	return decorateCopy(c)
}
