package html

import (
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

// Element is a document rendered inside an HTML tag.
type Element struct {
	Document

	tag   string
	attrs *Attributes
	void  *bool
}

// NewElement creates an element with the given tag and content.
func NewElement(tag string, content ...Node) *Element {
	e := &Element{}
	e.Init(e, tag)
	e.Add(content...)
	return e
}

// Init binds the element to the node embedding it and sets the tag.
// Attribute callbacks receive self as owner.
func (e *Element) Init(self Container, tag string) {
	e.Document.Init(self)
	e.tag = tag
	if e.attrs == nil {
		e.attrs = NewAttributes()
	}
	e.attrs.Rebind(self)
}

// Tag returns the tag name.
func (e *Element) Tag() string { return e.tag }

// SetTag sets the tag name.
func (e *Element) SetTag(tag string) { e.tag = tag }

// Attributes returns the attribute store.
func (e *Element) Attributes() *Attributes {
	if e.attrs == nil {
		e.attrs = NewAttributes()
		e.attrs.Rebind(e.node())
	}
	return e.attrs
}

// SetAttributes replaces the attribute store. Its callbacks are rebound to
// the element.
func (e *Element) SetAttributes(attrs *Attributes) {
	if attrs == nil {
		attrs = NewAttributes()
	}
	attrs.Rebind(e.node())
	e.attrs = attrs
}

// SetAttribute overwrites a single attribute.
func (e *Element) SetAttribute(name string, value any) error {
	return e.Attributes().Set(name, value)
}

// AddAttribute merges value into an attribute.
func (e *Element) AddAttribute(name string, value any) error {
	return e.Attributes().Add(name, value)
}

// AddAttributes merges all entries of m.
func (e *Element) AddAttributes(m Attrs) error {
	return e.Attributes().AddMap(m)
}

// Attr returns the value of name as a string.
func (e *Element) Attr(name string) string {
	return e.Attributes().String(name)
}

// SetVoid overrides void detection.
func (e *Element) SetVoid(void bool) {
	e.void = &void
}

// IsVoid reports whether the element renders without content and closing tag.
func (e *Element) IsVoid() bool {
	if e.void != nil {
		return *e.void
	}
	return IsVoidTag(e.tag)
}

// defaultSeparator joins phrasing content directly and block-level content
// with newlines when pretty printing.
func (e *Element) defaultSeparator(rc *RenderContext) string {
	if rc.Pretty() && !IsPhrasingTag(e.tag) {
		return "\n"
	}
	return ""
}

func (e *Element) renderUnwrapped(rc *RenderContext) (string, error) {
	e.EnsureAssembled()
	if e.tag == "" {
		return "", herrors.New("H004").WithDetailf("%T", e.node())
	}

	content, err := e.RenderContent(rc)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(content) + 2*len(e.tag) + 5)
	b.WriteByte('<')
	b.WriteString(e.tag)
	b.WriteString(e.Attributes().Render())

	if e.IsVoid() {
		if content != "" {
			return "", herrors.New("H005").WithDetailf("<%s>", e.tag)
		}
		b.WriteString("/>")
		return b.String(), nil
	}

	b.WriteByte('>')
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
	return b.String(), nil
}

// Copy returns a deep copy of the element bound to self. Content is copied
// shallowly; attributes are cloned and their callbacks rebound to self.
func (e *Element) Copy(self Container) Element {
	c := Element{
		Document: e.Document.copyFor(self),
		tag:      e.tag,
		attrs:    e.Attributes().Clone(),
	}
	if e.void != nil {
		v := *e.void
		c.void = &v
	}
	c.attrs.Rebind(self)
	return c
}

// Clone returns a copy of a plain element.
func (e *Element) Clone() *Element {
	c := &Element{}
	*c = e.Copy(c)
	return c
}
