package decorator

import "github.com/vango-dev/htmlkit/pkg/html"

// entry is a plain node or a wrapper around a list of entries.
type entry struct {
	node    html.Node
	wrapper html.Container
	inner   []entry
}

// Result accumulates the output of a decorator chain. Wrap encloses
// everything accumulated so far, so later Append and Prepend calls act
// outside the wrapper.
type Result struct {
	entries []entry
	skip    []string
}

// NewResult creates an empty result.
func NewResult() *Result { return &Result{} }

// Append adds nodes at the tail.
func (r *Result) Append(nodes ...html.Node) {
	for _, n := range nodes {
		if !html.IsNil(n) {
			r.entries = append(r.entries, entry{node: n})
		}
	}
}

// Prepend adds nodes at the head, keeping their order.
func (r *Result) Prepend(nodes ...html.Node) {
	head := make([]entry, 0, len(nodes)+len(r.entries))
	for _, n := range nodes {
		if !html.IsNil(n) {
			head = append(head, entry{node: n})
		}
	}
	r.entries = append(head, r.entries...)
}

// Wrap replaces the accumulated entries with w containing them.
func (r *Result) Wrap(w html.Container) {
	if html.IsNil(w) {
		return
	}
	r.entries = []entry{{wrapper: w, inner: r.entries}}
}

// Skip asks the chain not to run the named decorators.
func (r *Result) Skip(names ...string) {
	r.skip = append(r.skip, names...)
}

// Skipped returns the names requested to be skipped so far.
func (r *Result) Skipped() []string {
	return append([]string(nil), r.skip...)
}

// Len returns the number of top-level entries.
func (r *Result) Len() int { return len(r.entries) }

// Resolve flattens the result into a document. Wrappers receive their
// resolved inner entries as content, innermost first.
func (r *Result) Resolve() *html.Document {
	return html.NewDocument(resolve(r.entries)...)
}

// ContainerCloner is implemented by wrapper types other than *html.Element
// and *html.Document that can hand out a fresh copy of themselves.
type ContainerCloner interface {
	CloneContainer() html.Container
}

func resolve(entries []entry) []html.Node {
	nodes := make([]html.Node, 0, len(entries))
	for _, e := range entries {
		if e.wrapper == nil {
			nodes = append(nodes, e.node)
			continue
		}
		nodes = append(nodes, wrapInstance(e.wrapper, resolve(e.inner)))
	}
	return nodes
}

// wrapInstance returns a node rendering inner inside w. The wrapper passed
// to Wrap is a template and is never modified: copies receive the content,
// and containers that cannot be copied render around a fresh document
// through the wrapper protocol.
func wrapInstance(w html.Container, inner []html.Node) html.Node {
	var c html.Container
	switch t := w.(type) {
	case ContainerCloner:
		c = t.CloneContainer()
	case *html.Element:
		c = t.Clone()
	case *html.Document:
		c = t.Clone()
	default:
		doc := html.NewDocument(inner...)
		doc.SetWrapper(w)
		return doc
	}
	c.Doc().Add(inner...)
	return c
}
