package decorator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/html"
)

type field struct {
	html.Element

	name        string
	label       string
	description string
	messages    []string
	required    bool
	validated   bool
	skip        []string
}

func newField(name string) *field {
	f := &field{name: name}
	f.Init(f, "input")
	if err := f.SetAttribute("type", "text"); err != nil {
		panic(err)
	}
	if err := f.Attributes().RegisterCallback("name", func(o any) any { return o.(*field).name }, nil); err != nil {
		panic(err)
	}
	return f
}

func (f *field) Name() string           { return f.name }
func (f *field) ID() string             { return f.name }
func (f *field) Label() string          { return f.label }
func (f *field) Description() string    { return f.description }
func (f *field) Messages() []string     { return f.messages }
func (f *field) IsRequired() bool       { return f.required }
func (f *field) HasBeenValidated() bool { return f.validated }
func (f *field) IsValid() bool          { return len(f.messages) == 0 }

type skippingField struct {
	*field
}

func (s skippingField) SkipDecorators() []string { return s.skip }

func appendText(s string) Decorator {
	return Func(func(res *Result, _ Element) error {
		res.Append(html.Text(s))
		return nil
	})
}

func wrapIn(tag string) Decorator {
	return Func(func(res *Result, _ Element) error {
		res.Wrap(html.Tag(tag))
		return nil
	})
}

func renderApply(t *testing.T, c *Chain, el Element) string {
	t.Helper()
	doc, err := c.Apply(el)
	require.NoError(t, err)
	out, err := html.Render(doc)
	require.NoError(t, err)
	return out
}

func TestChainOrdering(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.Add("AppendFirst", appendText("FIRST")))
	require.NoError(t, chain.Add("WrapDiv", wrapIn("div")))
	require.NoError(t, chain.Add("AppendSecond", appendText("SECOND")))

	el := newField("q")
	assert.Equal(t, `<div><input type="text" name="q"/>FIRST</div>SECOND`, renderApply(t, chain, el))
	// Applying again yields the same markup.
	assert.Equal(t, `<div><input type="text" name="q"/>FIRST</div>SECOND`, renderApply(t, chain, el))
}

func TestDecorationAsWrapper(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.Add("AppendFirst", appendText("FIRST")))
	require.NoError(t, chain.Add("WrapDiv", wrapIn("div")))
	require.NoError(t, chain.Add("AppendSecond", appendText("SECOND")))

	el := newField("q")
	Decorate(el, chain)

	out, err := html.Render(el)
	require.NoError(t, err)
	assert.Equal(t, `<div><input type="text" name="q"/>FIRST</div>SECOND`, out)

	form := html.Tag("form", el)
	out, err = html.Render(form)
	require.NoError(t, err)
	assert.Equal(t, `<form><div><input type="text" name="q"/>FIRST</div>SECOND</form>`, out)
}

func TestDecorationFollowsValidationState(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.AddDecorators("Errors"))
	el := newField("q")
	Decorate(el, chain)

	assert.Equal(t, `<input type="text" name="q"/>`, html.String(el))

	el.validated = true
	el.messages = []string{"Too short"}
	assert.Equal(t, `<input type="text" name="q"/><ul class="errors"><li>Too short</li></ul>`, html.String(el))
}

func TestSkipAppliedDecoratorFails(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.Add("A", appendText("a")))
	require.NoError(t, chain.Add("B", Func(func(res *Result, _ Element) error {
		res.Skip("A")
		return nil
	})))

	_, err := chain.Apply(newField("q"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrLogic))
	assert.Contains(t, err.Error(), "D004")
}

func TestSkipPendingDecorator(t *testing.T) {
	called := false
	chain := NewChain()
	require.NoError(t, chain.Add("B", Func(func(res *Result, _ Element) error {
		res.Skip("C")
		return nil
	})))
	require.NoError(t, chain.Add("C", Func(func(*Result, Element) error {
		called = true
		return nil
	})))

	var events []Event
	chain.SetObserver(ObserverFunc(func(e Event) { events = append(events, e) }))

	out := renderApply(t, chain, newField("q"))
	assert.False(t, called)
	assert.Equal(t, `<input type="text" name="q"/>`, out)

	require.Len(t, events, 2)
	assert.Equal(t, "B", events[0].Decorator)
	assert.False(t, events[0].Skipped)
	assert.Equal(t, "C", events[1].Decorator)
	assert.True(t, events[1].Skipped)
	assert.Equal(t, "q", events[1].Element)
}

func TestElementSkipper(t *testing.T) {
	el := newField("token")
	el.label = "Token"
	el.skip = []string{LabelName}

	chain := NewChain()
	require.NoError(t, chain.AddDecorators("Label", "HtmlTag"))
	assert.Equal(t, `<div><input type="text" name="token"/></div>`, renderApply(t, chain, skippingField{el}))
}

func TestDecoratorErrorPropagates(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.Add("Broken", Func(func(*Result, Element) error {
		return errors.New("no template")
	})))
	_, err := chain.Apply(newField("q"))
	assert.EqualError(t, err, "decorator Broken: no template")
}

func TestChainFrozenAfterApply(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.AddDecorators("Label"))
	_, err := chain.Apply(newField("q"))
	require.NoError(t, err)
	assert.True(t, chain.Frozen())

	err = chain.Add("Extra", appendText("x"))
	assert.True(t, errors.Is(err, herrors.ErrLogic))
	assert.True(t, errors.Is(chain.Remove("Label"), herrors.ErrLogic))

	clone := chain.Clone()
	assert.False(t, clone.Frozen())
	require.NoError(t, clone.Add("Extra", appendText("x")))
	assert.Equal(t, []string{"Label", "Extra"}, clone.Names())
	assert.Equal(t, []string{"Label"}, chain.Names())
}

func TestChainAddReplacesInPlace(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.Add("A", appendText("1")))
	require.NoError(t, chain.Add("B", appendText("2")))
	require.NoError(t, chain.Add("A", appendText("3")))

	assert.Equal(t, []string{"A", "B"}, chain.Names())
	assert.Equal(t, `<input type="text" name="q"/>32`, renderApply(t, chain, newField("q")))
	assert.Equal(t, "[A B]", chain.String())
}

func TestResultWrapNesting(t *testing.T) {
	res := NewResult()
	res.Append(html.Text("x"))
	res.Wrap(html.Tag("b"))
	res.Prepend(html.Text("<"))
	res.Wrap(html.Tag("i"))
	res.Append(html.Text(">"))

	assert.Equal(t, 2, res.Len())
	out, err := html.Render(res.Resolve())
	require.NoError(t, err)
	assert.Equal(t, "<i>&lt;<b>x</b></i>&gt;", out)
}

type box struct {
	html.Element
}

func newBox() *box {
	b := &box{}
	b.Init(b, "section")
	return b
}

func TestDecorationRenderIsRepeatable(t *testing.T) {
	div := html.Tag("div", html.Attrs{"class": "field"})
	sec := newBox()
	tests := []struct {
		name    string
		wrapper html.Container
		want    string
	}{
		{"element template", div, `<div class="field"><input type="text" name="q"/></div>`},
		{"custom container", sec, `<section><input type="text" name="q"/></section>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain()
			require.NoError(t, chain.Add("Wrap", Func(func(res *Result, _ Element) error {
				res.Wrap(tt.wrapper)
				return nil
			})))
			el := newField("q")
			Decorate(el, chain)

			for i := 0; i < 3; i++ {
				out, err := html.Render(el)
				require.NoError(t, err)
				assert.Equal(t, tt.want, out, "render %d", i+1)
			}
			assert.Equal(t, 0, tt.wrapper.Doc().Len())
		})
	}
}

func TestResultIgnoresTypedNil(t *testing.T) {
	var missing *field
	var wrapper *html.Element
	res := NewResult()
	res.Append(missing, html.Text("a"))
	res.Prepend(missing)
	res.Wrap(wrapper)

	assert.Equal(t, 1, res.Len())
	out, err := html.Render(res.Resolve())
	require.NoError(t, err)
	assert.Equal(t, "a", out)
}
