package decorator

import "github.com/vango-dev/htmlkit/pkg/html"

// Decoration is the wrapper document that renders an element through its
// chain. The chain is applied on every render so the markup follows the
// element's current validation state.
type Decoration struct {
	html.Document

	chain *Chain
	el    Element
	err   error
}

// NewDecoration creates the decoration of el.
func NewDecoration(chain *Chain, el Element) *Decoration {
	d := &Decoration{chain: chain, el: el}
	d.Init(d)
	return d
}

// Decorate installs the decoration of el as its wrapper and returns it.
func Decorate(el interface {
	Element
	html.Container
}, chain *Chain) *Decoration {
	d := NewDecoration(chain, el)
	el.Doc().SetWrapper(d)
	return d
}

// Chain returns the chain.
func (d *Decoration) Chain() *Chain { return d.chain }

// Element returns the decorated element.
func (d *Decoration) Element() Element { return d.el }

// Assemble implements html.Assembler.
func (d *Decoration) Assemble() { d.apply() }

func (d *Decoration) apply() {
	doc, err := d.chain.Apply(d.el)
	d.err = err
	if err != nil {
		d.SetContent()
		return
	}
	d.SetContent(doc.Content()...)
}

// Err returns the error of the last chain application.
func (d *Decoration) Err() error { return d.err }

// RenderHTML applies the chain and renders the result.
func (d *Decoration) RenderHTML(rc *html.RenderContext) (string, error) {
	if d.IsAssembled() {
		d.apply()
	} else {
		d.EnsureAssembled()
	}
	if d.err != nil {
		return "", d.err
	}
	return d.Document.RenderHTML(rc)
}
