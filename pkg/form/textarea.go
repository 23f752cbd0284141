package form

import "github.com/vango-dev/htmlkit/pkg/html"

// Textarea is a multi-line text element. Its value is the content.
type Textarea struct {
	BaseElement
}

// NewTextarea creates a textarea.
func NewTextarea(name string, opts ...Option) (*Textarea, error) {
	t := &Textarea{}
	t.Init(t, "textarea", name)
	t.registerRequired()
	t.SetContent(html.Deferred(t.text))
	if err := apply(t, opts); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Textarea) text() string { return toString(t.value) }

// SetValue stores the value as a string.
func (t *Textarea) SetValue(value any) error {
	if _, ok := value.(map[string]any); ok {
		return invalidValue(t, value)
	}
	if value == nil {
		t.value = nil
		return nil
	}
	t.value = toString(value)
	return nil
}

// CloneElement implements Element.
func (t *Textarea) CloneElement() Element {
	c := &Textarea{}
	c.BaseElement = t.copyBase(c)
	c.SetContent(html.Deferred(c.text))
	return decorateCopy(c)
}
