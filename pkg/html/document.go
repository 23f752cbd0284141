package html

import (
	"reflect"
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
)

// Assembler is implemented by containers that populate their content lazily.
// Assemble runs once, before the first render or emptiness check.
type Assembler interface {
	Assemble()
}

// unwrappedRenderer lets the embedding element render its own markup around
// the document content.
type unwrappedRenderer interface {
	renderUnwrapped(rc *RenderContext) (string, error)
}

// separatorDeriver supplies a default content separator.
type separatorDeriver interface {
	defaultSeparator(rc *RenderContext) string
}

// Document is an ordered, mutable list of nodes that can be rendered
// through a wrapper document.
type Document struct {
	self         Container
	content      []Node
	contentIndex map[Node][]int

	separator    string
	hasSeparator bool

	wrapper Container

	assembled   bool
	assembling  bool
	assembler   func()
	onAssembled []func(Container)
}

// NewDocument creates an empty document.
func NewDocument(content ...Node) *Document {
	d := &Document{}
	d.Add(content...)
	return d
}

// Init binds the document to the node embedding it. Content, wrapper and
// containment checks use that node's identity.
func (d *Document) Init(self Container) {
	d.self = self
}

// Doc returns d. It makes every type embedding Document a Container.
func (d *Document) Doc() *Document { return d }

// node returns the identity of the document as seen by other documents.
func (d *Document) node() Container {
	if d.self != nil {
		return d.self
	}
	return d
}

// SetAssembler installs fn as assembly hook; it runs before Assemble of the
// embedding type.
func (d *Document) SetAssembler(fn func()) {
	d.assembler = fn
}

// OnAssembled registers fn to be called once assembly has finished. If the
// document is already assembled fn is not called.
func (d *Document) OnAssembled(fn func(Container)) {
	d.onAssembled = append(d.onAssembled, fn)
}

// IsAssembled reports whether assembly has run.
func (d *Document) IsAssembled() bool { return d.assembled }

// EnsureAssembled runs the assembly hooks exactly once.
func (d *Document) EnsureAssembled() {
	if d.assembled || d.assembling {
		return
	}
	d.assembling = true
	if d.assembler != nil {
		d.assembler()
	}
	if a, ok := d.node().(Assembler); ok {
		a.Assemble()
	}
	d.assembling = false
	d.assembled = true
	for _, fn := range d.onAssembled {
		fn(d.node())
	}
}

// Content returns a copy of the content.
func (d *Document) Content() []Node {
	return append([]Node(nil), d.content...)
}

// Len returns the number of direct children.
func (d *Document) Len() int { return len(d.content) }

// IsEmpty assembles the document and reports whether it has no content.
func (d *Document) IsEmpty() bool {
	d.EnsureAssembled()
	return len(d.content) == 0
}

// Add appends nodes. Nil nodes are ignored.
func (d *Document) Add(nodes ...Node) {
	for _, n := range nodes {
		if isNil(n) {
			continue
		}
		d.content = append(d.content, n)
	}
	d.reindex()
}

// Prepend inserts nodes at the head, keeping their order.
func (d *Document) Prepend(nodes ...Node) {
	head := make([]Node, 0, len(nodes)+len(d.content))
	for _, n := range nodes {
		if !isNil(n) {
			head = append(head, n)
		}
	}
	d.content = append(head, d.content...)
	d.reindex()
}

// SetContent replaces the content.
func (d *Document) SetContent(nodes ...Node) {
	d.content = nil
	d.Add(nodes...)
}

// InsertAfter inserts n directly after the first occurrence of existing.
func (d *Document) InsertAfter(n, existing Node) error {
	pos, err := d.position(existing)
	if err != nil {
		return err
	}
	d.splice(pos+1, n)
	return nil
}

// InsertBefore inserts n directly before the first occurrence of existing.
func (d *Document) InsertBefore(n, existing Node) error {
	pos, err := d.position(existing)
	if err != nil {
		return err
	}
	d.splice(pos, n)
	return nil
}

func (d *Document) position(existing Node) (int, error) {
	if !isNil(existing) {
		if positions, ok := d.contentIndex[existing]; ok {
			return positions[0], nil
		}
	}
	return 0, herrors.New("H002").WithDetailf("%T is not a child of this document", existing)
}

func (d *Document) splice(at int, n Node) {
	if isNil(n) {
		return
	}
	content := make([]Node, 0, len(d.content)+1)
	content = append(content, d.content[:at]...)
	content = append(content, n)
	content = append(content, d.content[at:]...)
	d.content = content
	d.reindex()
}

// Remove removes every occurrence of n.
func (d *Document) Remove(n Node) {
	if _, ok := d.contentIndex[n]; !ok || isNil(n) {
		return
	}
	kept := d.content[:0]
	for _, c := range d.content {
		if c != n {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(d.content); i++ {
		d.content[i] = nil
	}
	d.content = kept
	d.reindex()
}

func (d *Document) reindex() {
	d.contentIndex = make(map[Node][]int, len(d.content))
	for i, n := range d.content {
		d.contentIndex[n] = append(d.contentIndex[n], i)
	}
}

// Contains reports whether n is a child of d or of any child container.
func (d *Document) Contains(n Node) bool {
	if isNil(n) {
		return false
	}
	return d.contains(n, make(map[*Document]bool))
}

func (d *Document) contains(n Node, seen map[*Document]bool) bool {
	if seen[d] {
		return false
	}
	seen[d] = true
	if _, ok := d.contentIndex[n]; ok {
		return true
	}
	for _, c := range d.content {
		if child, ok := c.(Container); ok && child.Doc().contains(n, seen) {
			return true
		}
	}
	return false
}

// Separator returns the explicit separator, if any.
func (d *Document) Separator() (string, bool) {
	return d.separator, d.hasSeparator
}

// SetSeparator sets the string joining rendered children.
func (d *Document) SetSeparator(sep string) {
	d.separator = sep
	d.hasSeparator = true
}

// ContentSeparator returns the separator used for rc.
func (d *Document) ContentSeparator(rc *RenderContext) string {
	if d.hasSeparator {
		return d.separator
	}
	if s, ok := d.node().(separatorDeriver); ok {
		return s.defaultSeparator(ensureContext(rc))
	}
	return ""
}

// Wrapper returns the document's wrapper.
func (d *Document) Wrapper() Container { return d.wrapper }

// SetWrapper sets the wrapper. A nil wrapper removes it.
func (d *Document) SetWrapper(w Container) {
	if isNil(w) {
		d.wrapper = nil
		return
	}
	d.wrapper = w.Doc().node()
}

// AddWrapper attaches w outside the outermost current wrapper.
func (d *Document) AddWrapper(w Container) {
	outer := d
	seen := map[*Document]bool{d: true}
	for outer.wrapper != nil {
		next := outer.wrapper.Doc()
		if seen[next] {
			break
		}
		seen[next] = true
		outer = next
	}
	outer.SetWrapper(w)
}

// PrependWrapper makes w the innermost wrapper; the current wrapper chain
// moves outside of w.
func (d *Document) PrependWrapper(w Container) {
	if d.wrapper != nil {
		w.Doc().AddWrapper(d.wrapper)
	}
	d.SetWrapper(w)
}

// RenderHTML implements Node.
func (d *Document) RenderHTML(rc *RenderContext) (string, error) {
	rc = ensureContext(rc)
	d.EnsureAssembled()
	if d.wrapper == nil {
		return d.RenderUnwrapped(rc)
	}
	return d.renderWrapped(rc)
}

// RenderUnwrapped renders the document ignoring its wrapper.
func (d *Document) RenderUnwrapped(rc *RenderContext) (string, error) {
	rc = ensureContext(rc)
	if r, ok := d.node().(unwrappedRenderer); ok {
		return r.renderUnwrapped(rc)
	}
	return d.RenderContent(rc)
}

// RenderContent renders the children joined by the content separator. A
// document waiting to be rendered through d is consumed here and appended
// unless it is already part of the content.
func (d *Document) RenderContent(rc *RenderContext) (string, error) {
	rc = ensureContext(rc)
	d.EnsureAssembled()

	content := d.content
	if wrapped := rc.takeWrapped(d); wrapped != nil {
		if !d.Contains(wrapped) && !d.isIntermediateWrapper(wrapped) {
			content = append(content[:len(content):len(content)], Node(wrapped))
		}
	}

	parts := make([]string, 0, len(content))
	for _, child := range content {
		html, err := d.renderChild(rc, child)
		if err != nil {
			return "", err
		}
		parts = append(parts, html)
	}
	return strings.Join(parts, d.ContentSeparator(rc)), nil
}

func (d *Document) renderChild(rc *RenderContext, child Node) (string, error) {
	c, ok := child.(Container)
	if !ok {
		return child.RenderHTML(rc)
	}
	release := rc.claim(c.Doc(), d.node())
	defer release()
	return child.RenderHTML(rc)
}

// isIntermediateWrapper reports whether wrapped already wraps one of d's
// children, in which case rendering that child renders wrapped as well.
func (d *Document) isIntermediateWrapper(wrapped Container) bool {
	for _, c := range d.content {
		child, ok := c.(Container)
		if !ok {
			continue
		}
		seen := map[*Document]bool{child.Doc(): true}
		for w := child.Doc().wrapper; w != nil; w = w.Doc().wrapper {
			if w == wrapped {
				return true
			}
			if w == d.node() || seen[w.Doc()] {
				break
			}
			seen[w.Doc()] = true
		}
	}
	return false
}

// renderWrapped renders d through its wrapper.
func (d *Document) renderWrapped(rc *RenderContext) (string, error) {
	w := d.wrapper
	wd := w.Doc()
	self := d.node()
	if wd == d {
		return "", herrors.New("H003").WithDetailf("%T wraps itself", self)
	}

	if by, ok := rc.renderedBy[d]; ok {
		if w == by || wd.Contains(by) {
			// d is an intermediate wrapper already in the render path.
			return d.RenderUnwrapped(rc)
		}
		release := rc.claim(wd, by)
		defer release()
	} else if _, ok := rc.renderedBy[wd]; ok {
		return "", herrors.New("H003").WithDetailf("%T is already being rendered", w)
	} else {
		release := rc.claim(d, w)
		defer release()
	}

	prev, had := rc.wrapped[wd]
	rc.wrapped[wd] = self
	defer func() {
		if rc.wrapped[wd] == self {
			delete(rc.wrapped, wd)
		}
		if had {
			rc.wrapped[wd] = prev
		}
	}()

	return w.RenderHTML(rc)
}

// copyFor returns a copy of d bound to self.
func (d *Document) copyFor(self Container) Document {
	c := Document{
		self:         self,
		content:      append([]Node(nil), d.content...),
		separator:    d.separator,
		hasSeparator: d.hasSeparator,
		wrapper:      d.wrapper,
		assembled:    d.assembled,
		assembler:    d.assembler,
		onAssembled:  append(([]func(Container))(nil), d.onAssembled...),
	}
	c.reindex()
	return c
}

// Clone returns a copy of a plain document with its own content list.
func (d *Document) Clone() *Document {
	c := d.copyFor(nil)
	return &c
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool { return isNil(n) }

func isNil(n any) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
