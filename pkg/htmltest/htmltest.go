package htmltest

import (
	"strings"
	"testing"

	xhtml "golang.org/x/net/html"

	"github.com/vango-dev/htmlkit/pkg/html"
)

// RenderToString renders node, failing the test on error.
//
// Example:
//
//	out := htmltest.RenderToString(t, f)
//	if !strings.Contains(out, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(t testing.TB, node html.Node, opts ...html.Option) string {
	t.Helper()
	out, err := html.Render(node, opts...)
	if err != nil {
		t.Fatalf("render %T: %v", node, err)
	}
	return out
}

// Parse parses rendered markup as the body of a document.
func Parse(t testing.TB, markup string) *xhtml.Node {
	t.Helper()
	doc, err := xhtml.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse rendered output: %v", err)
	}
	return doc
}

// Find returns the elements with the given tag, in document order.
func Find(root *xhtml.Node, tag string) []*xhtml.Node {
	var found []*xhtml.Node
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == tag {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// Attr returns the value of attribute key of n.
func Attr(n *xhtml.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// AttrValues renders node and returns the values of attr on every tag
// element that has it.
func AttrValues(t testing.TB, node html.Node, tag, attr string) []string {
	t.Helper()
	var values []string
	for _, n := range Find(Parse(t, RenderToString(t, node)), tag) {
		if v, ok := Attr(n, attr); ok {
			values = append(values, v)
		}
	}
	return values
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node html.Node, expected string) {
	t.Helper()
	out := RenderToString(t, node)
	if !strings.Contains(out, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(out, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node html.Node, unexpected string) {
	t.Helper()
	out := RenderToString(t, node)
	if strings.Contains(out, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(out, 500))
	}
}

// ExpectElement asserts that rendered output contains a tag element.
//
// Example:
//
//	htmltest.ExpectElement(t, f, "fieldset")
func ExpectElement(t testing.TB, node html.Node, tag string) {
	t.Helper()
	out := RenderToString(t, node)
	if len(Find(Parse(t, out), tag)) == 0 {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(out, 500))
	}
}

// ExpectAttribute asserts that some element carries attr with value.
//
// Example:
//
//	htmltest.ExpectAttribute(t, f, "name", "address[city]")
func ExpectAttribute(t testing.TB, node html.Node, attr, value string) {
	t.Helper()
	out := RenderToString(t, node)
	var walk func(n *xhtml.Node) bool
	walk = func(n *xhtml.Node) bool {
		if v, ok := Attr(n, attr); ok && n.Type == xhtml.ElementNode && v == value {
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	if !walk(Parse(t, out)) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(out, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
