package form

import (
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/html"
)

// Fieldset groups elements under its name. Children render as
// fieldset[child] and the value is a map of the child values.
type Fieldset struct {
	BaseElement
	container
}

// NewFieldset creates an empty fieldset. The label renders as legend.
func NewFieldset(name string, opts ...Option) (*Fieldset, error) {
	fs := &Fieldset{}
	fs.initFieldset(name)
	if err := apply(fs, opts); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *Fieldset) initFieldset(name string) {
	fs.initElement(fs, "fieldset", name)
	fs.initContainer(fs.Doc(), fs)
	fs.SetContent(&legend{fs: fs})
}

// legend renders the current label, or nothing.
type legend struct {
	fs *Fieldset
}

func (l *legend) RenderHTML(rc *html.RenderContext) (string, error) {
	if l.fs.label == "" {
		return "", nil
	}
	return html.Tag("legend", l.fs.label).RenderHTML(rc)
}

// inherit takes the settings of the container fs was registered in.
func (fs *Fieldset) inherit(parent *container) {
	if fs.factories == nil {
		fs.factories = parent.factories
	}
	if fs.loader == nil {
		fs.loader = parent.loader
	}
	if fs.observer == nil {
		fs.observer = parent.observer
	}
	if fs.logger == nil {
		fs.logger = parent.logger
	}
	if !fs.ownDefaults {
		fs.setDefaults(parent.defaults, false)
	}
}

// Value returns the child values by name.
func (fs *Fieldset) Value() any { return fs.Values() }

// SetValue populates the children from a map.
func (fs *Fieldset) SetValue(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return fs.Populate(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return fs.Populate(m)
	}
	return invalidValue(fs, value)
}

// Validate validates every child and the fieldset's own validators.
func (fs *Fieldset) Validate() bool {
	children := fs.validate()
	own := fs.BaseElement.Validate()
	return children && own
}

// IsValid reports whether the fieldset and all children are valid.
func (fs *Fieldset) IsValid() bool {
	return fs.BaseElement.IsValid() && fs.isValid()
}

// SkipDecorators implements decorator.Skipper. The legend replaces the
// label.
func (*Fieldset) SkipDecorators() []string { return []string{decorator.LabelName} }

// CloneElement returns a deep copy with cloned children.
func (fs *Fieldset) CloneElement() Element {
	c := &Fieldset{}
	c.BaseElement = fs.copyBase(c)
	c.initContainer(c.Doc(), c)
	c.factories, c.loader, c.observer, c.logger = fs.factories, fs.loader, fs.observer, fs.logger
	if fs.ownDefaults {
		c.defaults, c.ownDefaults = fs.defaults, true
	}
	c.SetContent(&legend{fs: c})
	for _, child := range fs.Elements() {
		if err := c.RegisterElement(child.CloneElement()); err != nil {
			panic(err)
		}
	}
	for k, v := range fs.staged {
		c.staged[k] = copyValue(v)
	}
	return decorateCopy(c)
}
