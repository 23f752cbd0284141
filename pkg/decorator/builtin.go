package decorator

import (
	"github.com/vango-dev/htmlkit/pkg/html"
)

// Builtin decorator names.
const (
	LabelName       = "Label"
	DescriptionName = "Description"
	ErrorsName      = "Errors"
	HtmlTagName     = "HtmlTag"
	FieldsetName    = "Fieldset"
)

var (
	defaultRegistry = newBuiltinRegistry()
	defaultLoader   = NewLoader(defaultRegistry)
)

func newBuiltinRegistry() *Registry {
	r := NewRegistry("htmlkit")
	r.Register(RenderElementName, func() Decorator { return &RenderElement{} })
	r.Register(LabelName, func() Decorator { return NewLabel() })
	r.Register(DescriptionName, func() Decorator { return NewDescription() })
	r.Register(ErrorsName, func() Decorator { return NewErrors() })
	r.Register(HtmlTagName, func() Decorator { return NewHtmlTag() })
	r.Register(FieldsetName, func() Decorator { return NewFieldset() })
	return r
}

// DefaultRegistry returns the registry holding the builtin decorators.
func DefaultRegistry() *Registry { return defaultRegistry }

// DefaultLoader returns the loader used by chains without their own.
func DefaultLoader() *Loader { return defaultLoader }

// RenderElement places the element itself.
type RenderElement struct{}

// DecoratorName implements Named.
func (*RenderElement) DecoratorName() string { return RenderElementName }

// Decorate implements Decorator.
func (*RenderElement) Decorate(res *Result, el Element) error {
	res.Append(el)
	return nil
}

// Label renders the element label, before the element by default.
type Label struct {
	tag            string
	class          string
	requiredSuffix string
	placement      Placement
}

// NewLabel creates a label decorator.
func NewLabel() *Label {
	return &Label{tag: "label", placement: Prepend}
}

// DecoratorName implements Named.
func (*Label) DecoratorName() string { return LabelName }

// SetOptions accepts tag, class, requiredSuffix and placement.
func (l *Label) SetOptions(o Options) error {
	if err := o.checkKeys("tag", "class", "requiredSuffix", "placement"); err != nil {
		return err
	}
	var err error
	if l.tag, err = o.String("tag", l.tag); err != nil {
		return err
	}
	if l.class, err = o.String("class", l.class); err != nil {
		return err
	}
	if l.requiredSuffix, err = o.String("requiredSuffix", l.requiredSuffix); err != nil {
		return err
	}
	l.placement, err = parsePlacement(o, l.placement)
	return err
}

// CloneDecorator implements Cloner.
func (l *Label) CloneDecorator() Decorator {
	c := *l
	return &c
}

// Decorate implements Decorator.
func (l *Label) Decorate(res *Result, el Element) error {
	text := el.Label()
	if text == "" {
		return nil
	}
	label := html.Tag(l.tag, text)
	if l.tag == "label" && el.ID() != "" {
		if err := label.SetAttribute("for", el.ID()); err != nil {
			return err
		}
	}
	if l.class != "" {
		if err := label.AddAttribute("class", l.class); err != nil {
			return err
		}
	}
	if el.IsRequired() {
		if err := label.AddAttribute("class", "required"); err != nil {
			return err
		}
		if l.requiredSuffix != "" {
			label.Add(html.Text(l.requiredSuffix))
		}
	}
	place(res, l.placement, label)
	return nil
}

// Description renders the element description after the element.
type Description struct {
	tag       string
	class     string
	placement Placement
}

// NewDescription creates a description decorator.
func NewDescription() *Description {
	return &Description{tag: "p", class: "description", placement: Append}
}

// DecoratorName implements Named.
func (*Description) DecoratorName() string { return DescriptionName }

// SetOptions accepts tag, class and placement.
func (d *Description) SetOptions(o Options) error {
	if err := o.checkKeys("tag", "class", "placement"); err != nil {
		return err
	}
	var err error
	if d.tag, err = o.String("tag", d.tag); err != nil {
		return err
	}
	if d.class, err = o.String("class", d.class); err != nil {
		return err
	}
	d.placement, err = parsePlacement(o, d.placement)
	return err
}

// CloneDecorator implements Cloner.
func (d *Description) CloneDecorator() Decorator {
	c := *d
	return &c
}

// Decorate implements Decorator.
func (d *Description) Decorate(res *Result, el Element) error {
	var body html.Node
	if n, ok := el.(DescriptionNoder); ok {
		body = n.DescriptionNode()
	}
	if body == nil {
		if el.Description() == "" {
			return nil
		}
		body = html.Text(el.Description())
	}
	p := html.Tag(d.tag, body)
	if d.class != "" {
		if err := p.SetAttribute("class", d.class); err != nil {
			return err
		}
	}
	place(res, d.placement, p)
	return nil
}

// Errors lists validation messages of an invalid element.
type Errors struct {
	class     string
	placement Placement
}

// NewErrors creates an errors decorator.
func NewErrors() *Errors {
	return &Errors{class: "errors", placement: Append}
}

// DecoratorName implements Named.
func (*Errors) DecoratorName() string { return ErrorsName }

// SetOptions accepts class and placement.
func (e *Errors) SetOptions(o Options) error {
	if err := o.checkKeys("class", "placement"); err != nil {
		return err
	}
	var err error
	if e.class, err = o.String("class", e.class); err != nil {
		return err
	}
	e.placement, err = parsePlacement(o, e.placement)
	return err
}

// CloneDecorator implements Cloner.
func (e *Errors) CloneDecorator() Decorator {
	c := *e
	return &c
}

// Decorate implements Decorator.
func (e *Errors) Decorate(res *Result, el Element) error {
	if !el.HasBeenValidated() || el.IsValid() {
		return nil
	}
	messages := el.Messages()
	if len(messages) == 0 {
		return nil
	}
	list := html.Tag("ul")
	if e.class != "" {
		if err := list.SetAttribute("class", e.class); err != nil {
			return err
		}
	}
	for _, m := range messages {
		list.Add(html.Tag("li", m))
	}
	place(res, e.placement, list)
	return nil
}

// Conditions for HtmlTag.
const (
	ConditionAlways   = ""
	ConditionInvalid  = "invalid"
	ConditionValid    = "valid"
	ConditionRequired = "required"
)

// HtmlTag wraps everything accumulated so far in a tag.
type HtmlTag struct {
	tag       string
	class     string
	id        string
	attrs     html.Attrs
	condition string
}

// NewHtmlTag creates a decorator wrapping in a div.
func NewHtmlTag() *HtmlTag {
	return &HtmlTag{tag: "div"}
}

// DecoratorName implements Named.
func (*HtmlTag) DecoratorName() string { return HtmlTagName }

// SetOptions accepts tag, class, id, attributes and condition.
func (h *HtmlTag) SetOptions(o Options) error {
	if err := o.checkKeys("tag", "class", "id", "attributes", "condition"); err != nil {
		return err
	}
	var err error
	if h.tag, err = o.String("tag", h.tag); err != nil {
		return err
	}
	if h.class, err = o.String("class", h.class); err != nil {
		return err
	}
	if h.id, err = o.String("id", h.id); err != nil {
		return err
	}
	if h.attrs, err = o.Attrs("attributes"); err != nil {
		return err
	}
	if h.condition, err = o.String("condition", h.condition); err != nil {
		return err
	}
	switch h.condition {
	case ConditionAlways, ConditionInvalid, ConditionValid, ConditionRequired:
		return nil
	}
	return invalidOption("condition", `"invalid", "valid" or "required"`, h.condition)
}

// CloneDecorator implements Cloner.
func (h *HtmlTag) CloneDecorator() Decorator {
	c := *h
	return &c
}

func (h *HtmlTag) applies(el Element) bool {
	switch h.condition {
	case ConditionInvalid:
		return el.HasBeenValidated() && !el.IsValid()
	case ConditionValid:
		return el.HasBeenValidated() && el.IsValid()
	case ConditionRequired:
		return el.IsRequired()
	}
	return true
}

// Decorate implements Decorator.
func (h *HtmlTag) Decorate(res *Result, el Element) error {
	if !h.applies(el) {
		return nil
	}
	wrapper, err := html.TagE(h.tag, h.attrs)
	if err != nil {
		return err
	}
	if h.id != "" {
		if err := wrapper.SetAttribute("id", h.id); err != nil {
			return err
		}
	}
	if h.class != "" {
		if err := wrapper.AddAttribute("class", h.class); err != nil {
			return err
		}
	}
	res.Wrap(wrapper)
	return nil
}

// Fieldset wraps everything in a fieldset with the label as legend. The
// Label decorator is skipped.
type Fieldset struct {
	class  string
	legend string
}

// NewFieldset creates a fieldset decorator.
func NewFieldset() *Fieldset { return &Fieldset{} }

// DecoratorName implements Named.
func (*Fieldset) DecoratorName() string { return FieldsetName }

// SetOptions accepts class and legend.
func (f *Fieldset) SetOptions(o Options) error {
	if err := o.checkKeys("class", "legend"); err != nil {
		return err
	}
	var err error
	if f.class, err = o.String("class", f.class); err != nil {
		return err
	}
	f.legend, err = o.String("legend", f.legend)
	return err
}

// CloneDecorator implements Cloner.
func (f *Fieldset) CloneDecorator() Decorator {
	c := *f
	return &c
}

// Decorate implements Decorator.
func (f *Fieldset) Decorate(res *Result, el Element) error {
	fs := html.Tag("fieldset")
	if f.class != "" {
		if err := fs.SetAttribute("class", f.class); err != nil {
			return err
		}
	}
	legend := f.legend
	if legend == "" {
		legend = el.Label()
	}
	if legend != "" {
		fs.Add(html.Tag("legend", legend))
	}
	res.Wrap(fs)
	res.Skip(LabelName)
	return nil
}
