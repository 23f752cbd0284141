// Package html is a server-side HTML document model.
//
// A Document is an ordered list of nodes indexed by identity. An Element is
// a Document rendered inside a tag with an attribute store. Both assemble
// lazily: the Assembler hook of the embedding type runs once, right before
// the first render or emptiness check.
//
// # Building trees
//
//	form := html.Tag("form", html.Attrs{"method": "post"},
//	    html.Tag("input", html.Attrs{"type": "text", "name": "q"}),
//	)
//	out, err := html.Render(form)
//
// # Wrappers
//
// A document may name another document as its wrapper. Rendering the
// document then renders the wrapper instead, with the document appended to
// the wrapper's content unless the wrapper already contains it:
//
//	field := html.Tag("input", html.Attrs{"name": "q"})
//	field.SetWrapper(html.Tag("div", html.Attrs{"class": "field"}))
//	html.String(field) // <div class="field"><input name="q"/></div>
//
// Wrappers compose: AddWrapper attaches outside the outermost wrapper,
// PrependWrapper inside the innermost one. Wrapper loops are detected and
// reported as render errors.
//
// # Embedding
//
// Types that embed Element must call Init with themselves so content,
// wrapper and attribute callbacks see the outer value:
//
//	type Badge struct {
//	    html.Element
//	    count int
//	}
//
//	func NewBadge() *Badge {
//	    b := &Badge{}
//	    b.Init(b, "span")
//	    return b
//	}
//
//	func (b *Badge) Assemble() { b.Add(html.Textf("%d", b.count)) }
//
// # Errors
//
// Programmer errors are returned, never swallowed: invalid attribute names
// (ErrInvalidArgument), inserting relative to a missing node (ErrNotFound),
// missing tags, content in void elements and wrapper loops (ErrRender).
// String is the one boundary that converts render errors into an error
// fragment instead.
package html
