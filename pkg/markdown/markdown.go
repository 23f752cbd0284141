// Package markdown renders Markdown source as an html.Node using goldmark.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/vango-dev/htmlkit/pkg/html"
)

// Flavor identifies the Markdown dialect.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Option configures a Node.
type Option func(*config)

type config struct {
	flavor    string
	hardWraps bool
	inline    bool
}

// WithFlavor selects the dialect. Unknown flavors fall back to GFM.
func WithFlavor(flavor string) Option {
	return func(c *config) { c.flavor = flavor }
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps() Option {
	return func(c *config) { c.hardWraps = true }
}

// Inline strips the paragraph around single-paragraph output, for use
// inside phrasing elements such as labels.
func Inline() Option {
	return func(c *config) { c.inline = true }
}

// Node is Markdown source rendered on demand. Raw HTML in the source is
// omitted from the output.
type Node struct {
	source string
	cfg    config
	md     goldmark.Markdown
}

// New creates a Markdown node.
func New(source string, opts ...Option) *Node {
	cfg := config{flavor: FlavorGFM}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Node{source: source, cfg: cfg, md: newGoldmark(cfg)}
}

func newGoldmark(cfg config) goldmark.Markdown {
	var opts []goldmark.Option
	if cfg.flavor != FlavorCommonMark {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	if cfg.hardWraps {
		opts = append(opts, goldmark.WithRendererOptions(gmhtml.WithHardWraps()))
	}
	return goldmark.New(opts...)
}

// Source returns the Markdown source.
func (n *Node) Source() string { return n.source }

// RenderHTML implements html.Node.
func (n *Node) RenderHTML(*html.RenderContext) (string, error) {
	var buf bytes.Buffer
	if err := n.md.Convert([]byte(n.source), &buf); err != nil {
		return "", err
	}
	out := strings.TrimRight(buf.String(), "\n")
	if n.cfg.inline {
		out = unwrapParagraph(out)
	}
	return out, nil
}

func unwrapParagraph(s string) string {
	if !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s
	}
	inner := s[len("<p>") : len(s)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}
