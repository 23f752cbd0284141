package html

import (
	"fmt"
)

// TextNode is escaped text.
type TextNode struct {
	content string
}

// Text creates an escaped text node.
func Text(s string) *TextNode { return &TextNode{content: s} }

// Textf creates an escaped text node from a format string.
func Textf(format string, args ...any) *TextNode {
	return &TextNode{content: fmt.Sprintf(format, args...)}
}

// Content returns the unescaped text.
func (t *TextNode) Content() string { return t.content }

// SetContent replaces the text.
func (t *TextNode) SetContent(s string) { t.content = s }

// RenderHTML implements Node.
func (t *TextNode) RenderHTML(*RenderContext) (string, error) {
	return EscapeText(t.content), nil
}

// RawHTML is trusted markup rendered verbatim.
type RawHTML struct {
	html string
}

// Raw creates a node rendering s without escaping. Only use it for trusted
// markup.
func Raw(s string) *RawHTML { return &RawHTML{html: s} }

// RenderHTML implements Node.
func (r *RawHTML) RenderHTML(*RenderContext) (string, error) {
	return r.html, nil
}

// Formatted is a format string whose arguments are escaped, or rendered
// when they are nodes. The literal parts of the format are escaped as text.
type Formatted struct {
	format string
	args   []any
}

// Sprintf creates a formatted node.
func Sprintf(format string, args ...any) *Formatted {
	return &Formatted{format: format, args: args}
}

// RenderHTML implements Node.
func (f *Formatted) RenderHTML(rc *RenderContext) (string, error) {
	args := make([]any, len(f.args))
	for i, arg := range f.args {
		switch v := arg.(type) {
		case Node:
			html, err := v.RenderHTML(rc)
			if err != nil {
				return "", err
			}
			args[i] = html
		case string:
			args[i] = EscapeText(v)
		case error:
			args[i] = EscapeText(v.Error())
		case fmt.Stringer:
			args[i] = EscapeText(v.String())
		default:
			args[i] = v
		}
	}
	return fmt.Sprintf(EscapeText(f.format), args...), nil
}

// DeferredText is escaped text produced by a callback at render time.
type DeferredText struct {
	fn func() (string, error)
}

// Deferred creates text computed when rendered.
func Deferred(fn func() string) *DeferredText {
	return &DeferredText{fn: func() (string, error) { return fn(), nil }}
}

// DeferredE creates text computed when rendered by a callback that may fail.
func DeferredE(fn func() (string, error)) *DeferredText {
	return &DeferredText{fn: fn}
}

// RenderHTML implements Node.
func (d *DeferredText) RenderHTML(*RenderContext) (string, error) {
	s, err := d.fn()
	if err != nil {
		return "", err
	}
	return EscapeText(s), nil
}

// Join returns a document rendering nodes separated by sep.
func Join(sep string, nodes ...Node) *Document {
	d := NewDocument(nodes...)
	d.SetSeparator(sep)
	return d
}
