package html

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/internal/logging"
)

// Node is anything that renders to HTML. Implementations must be comparable
// (pointer types) because content is indexed by node identity.
type Node interface {
	// RenderHTML renders the node. A nil context means default options.
	RenderHTML(rc *RenderContext) (string, error)
}

// Container is a node backed by a Document. Element and every type
// embedding Document or Element implement it.
type Container interface {
	Node
	Doc() *Document
}

// Options configures a render pass.
type Options struct {
	// Pretty joins children of block-level elements with newlines.
	Pretty bool

	// ShowStackTrace adds the stack to error fragments produced by String.
	ShowStackTrace bool

	// Logger receives render failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Option configures a RenderContext.
type Option func(*Options)

// WithPretty enables newline separators for block-level elements.
func WithPretty(pretty bool) Option {
	return func(o *Options) { o.Pretty = pretty }
}

// WithStackTrace enables stack traces in error fragments.
func WithStackTrace(show bool) Option {
	return func(o *Options) { o.ShowStackTrace = show }
}

// WithLogger sets the logger for render failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithOptions copies all of opts.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// RenderContext holds the state of one render pass: the options, the
// document currently rendering each document (for wrapper loop detection)
// and the wrapped documents waiting to be rendered through their wrapper.
// Every entry is owned by the frame that created it and removed when that
// frame returns.
type RenderContext struct {
	opts       Options
	renderedBy map[*Document]Container
	wrapped    map[*Document]Container
}

// NewRenderContext creates a context for a render pass.
func NewRenderContext(opts ...Option) *RenderContext {
	rc := &RenderContext{
		renderedBy: make(map[*Document]Container),
		wrapped:    make(map[*Document]Container),
	}
	for _, opt := range opts {
		opt(&rc.opts)
	}
	return rc
}

func ensureContext(rc *RenderContext) *RenderContext {
	if rc == nil {
		return NewRenderContext()
	}
	return rc
}

// Options returns the options of the pass.
func (rc *RenderContext) Options() Options { return rc.opts }

// Pretty reports whether block-level separators are enabled.
func (rc *RenderContext) Pretty() bool { return rc.opts.Pretty }

// Logger returns the logger of the pass.
func (rc *RenderContext) Logger() *slog.Logger { return logging.OrDefault(rc.opts.Logger) }

// claim records by as the renderer of d and returns a function restoring
// the previous state.
func (rc *RenderContext) claim(d *Document, by Container) func() {
	prev, had := rc.renderedBy[d]
	rc.renderedBy[d] = by
	return func() {
		if rc.renderedBy[d] != by {
			return
		}
		if had {
			rc.renderedBy[d] = prev
		} else {
			delete(rc.renderedBy, d)
		}
	}
}

// takeWrapped consumes the document waiting to be rendered through d.
func (rc *RenderContext) takeWrapped(d *Document) Container {
	w, ok := rc.wrapped[d]
	if !ok {
		return nil
	}
	delete(rc.wrapped, d)
	return w
}

// Render renders n with a fresh context.
func Render(n Node, opts ...Option) (string, error) {
	if n == nil {
		return "", nil
	}
	return n.RenderHTML(NewRenderContext(opts...))
}

// String renders n and never fails: errors and panics are logged and
// replaced by an error fragment.
func String(n Node, opts ...Option) string {
	rc := NewRenderContext(opts...)
	out, stack, err := renderRecovering(rc, n)
	if err == nil {
		return out
	}

	rc.Logger().Error("render failed", logging.FieldError, err, logging.FieldNode, fmt.Sprintf("%T", n))
	return ErrorFragment(err, stack, rc.opts.ShowStackTrace)
}

func renderRecovering(rc *RenderContext, n Node) (out string, stack []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack = debug.Stack()
			if e, ok := r.(error); ok {
				err = herrors.New("H008").WithDetail(e.Error()).Wrap(e)
			} else {
				err = herrors.New("H008").WithDetailf("%v", r)
			}
		}
	}()
	if n == nil {
		return "", nil, nil
	}
	out, err = n.RenderHTML(rc)
	return out, nil, err
}

// ErrorFragment renders err as markup. With showTrace the stack (or, for
// plain errors, the chain of wrapped errors) follows in a <pre> block.
func ErrorFragment(err error, stack []byte, showTrace bool) string {
	var b strings.Builder
	b.WriteString(`<div class="exception">`)
	b.WriteString(EscapeText(err.Error()))
	if showTrace {
		trace := string(stack)
		if trace == "" {
			trace = errorChain(err)
		}
		if trace != "" {
			b.WriteString("<pre>")
			b.WriteString(EscapeText(trace))
			b.WriteString("</pre>")
		}
	}
	b.WriteString("</div>")
	return b.String()
}

func errorChain(err error) string {
	var lines []string
	for e := err; e != nil; {
		lines = append(lines, fmt.Sprintf("%T: %s", e, e.Error()))
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return strings.Join(lines, "\n")
}
