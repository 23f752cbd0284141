package form

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xhtml "golang.org/x/net/html"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/decorator"
	"github.com/vango-dev/htmlkit/pkg/html"
)

func findAttr(t *testing.T, markup, tag, attr string) []string {
	t.Helper()
	doc, err := xhtml.Parse(strings.NewReader(markup))
	require.NoError(t, err)

	var found []string
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && n.Data == tag {
			for _, a := range n.Attr {
				if a.Key == attr {
					found = append(found, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func TestNestedFieldsetNames(t *testing.T) {
	f := New()
	outer, err := f.AddElement("fieldset", "outer")
	require.NoError(t, err)

	// inner joins outer before it has any elements.
	inner, err := NewFieldset("inner")
	require.NoError(t, err)
	require.NoError(t, outer.(*Fieldset).RegisterElement(inner))

	sel, err := inner.AddElement("select", "select", WithOptions(Choices("a", "b")...))
	require.NoError(t, err)

	assert.Equal(t, "outer[inner][select]", sel.FullName())
	assert.Equal(t, []string{"outer[inner][select]"}, findAttr(t, render(t, f), "select", "name"))

	// Renaming a parent is picked up on the next render.
	outer.SetName("root")
	assert.Equal(t, []string{"root[inner][select]"}, findAttr(t, render(t, f), "select", "name"))
}

func appendText(s string) decorator.Decorator {
	return decorator.Func(func(res *decorator.Result, _ decorator.Element) error {
		res.Append(html.Text(s))
		return nil
	})
}

func TestDefaultDecoratorOrdering(t *testing.T) {
	f := New()
	require.NoError(t, f.SetDefaultDecorators(
		decorator.Spec{Name: "AppendFirst", Decorator: appendText("FIRST")},
		decorator.Spec{Name: "WrapDiv", Decorator: decorator.Func(func(res *decorator.Result, _ decorator.Element) error {
			res.Wrap(html.Tag("div"))
			return nil
		})},
		decorator.Spec{Name: "AppendSecond", Decorator: appendText("SECOND")},
	))
	_, err := f.AddElement("text", "q")
	require.NoError(t, err)

	assert.Equal(t, `<form method="post"><div><input type="text" name="q"/>FIRST</div>SECOND</form>`, render(t, f))
}

func TestStandardDecorators(t *testing.T) {
	f := New(WithAction("/signup"))
	require.NoError(t, f.SetDefaultDecorators("Label", "Errors", map[string]any{"HtmlTag": map[string]any{"class": "field"}}))
	_, err := f.AddElement("text", "email", WithLabel("E-Mail"), WithID("email"), WithRequired(true))
	require.NoError(t, err)
	_, err = f.AddElement("hidden", "token", WithValue("t1"))
	require.NoError(t, err)

	field := `<label for="email" class="required">E-Mail</label><input type="text" id="email" name="email" required/>`
	hidden := `<input type="hidden" name="token" value="t1"/>`
	assert.Equal(t, `<form action="/signup" method="post"><div class="field">`+field+`</div>`+hidden+`</form>`, render(t, f))

	assert.False(t, f.Validate())
	assert.Equal(t,
		`<form action="/signup" method="post"><div class="field">`+field+
			`<ul class="errors"><li>This field is required</li></ul></div>`+hidden+`</form>`,
		render(t, f))
}

func TestFieldsetInheritsDefaults(t *testing.T) {
	f := New()
	fs, err := NewFieldset("address", WithLabel("Address"))
	require.NoError(t, err)
	_, err = fs.AddElement("text", "city", WithLabel("City"))
	require.NoError(t, err)
	require.NoError(t, f.RegisterElement(fs))

	require.NoError(t, f.SetDefaultDecorators("Label", map[string]any{"HtmlTag": map[string]any{"class": "field"}}))
	assert.Equal(t,
		`<form method="post"><div class="field"><fieldset><legend>Address</legend>`+
			`<div class="field"><label>City</label><input type="text" name="address[city]"/></div>`+
			`</fieldset></div></form>`,
		render(t, f))
}

func TestOwnDecoratorsWin(t *testing.T) {
	f := New()
	require.NoError(t, f.SetDefaultDecorators(map[string]any{"HtmlTag": map[string]any{"class": "field"}}))
	_, err := f.AddElement("text", "q", WithDecorators([]any{"HtmlTag", map[string]any{"tag": "p"}}))
	require.NoError(t, err)

	assert.Equal(t, `<form method="post"><p><input type="text" name="q"/></p></form>`, render(t, f))
}

func TestDecoratorObserver(t *testing.T) {
	var events []decorator.Event
	f := New(WithObserver(decorator.ObserverFunc(func(e decorator.Event) { events = append(events, e) })))
	require.NoError(t, f.SetDefaultDecorators("Label"))
	_, err := f.AddElement("hidden", "token")
	require.NoError(t, err)

	render(t, f)
	require.NotEmpty(t, events)
	for _, e := range events {
		assert.Equal(t, "Label", e.Decorator)
		assert.Equal(t, "token", e.Element)
		assert.True(t, e.Skipped)
	}
}

func TestRegisterElement(t *testing.T) {
	f := New()
	_, err := f.AddElement("text", "a")
	require.NoError(t, err)
	_, err = f.AddElement("text", "b")
	require.NoError(t, err)

	// Same name replaces in place.
	replacement, err := NewTextarea("a")
	require.NoError(t, err)
	require.NoError(t, f.RegisterElement(replacement))

	names := func() []string {
		var out []string
		for _, el := range f.Elements() {
			out = append(out, el.Name())
		}
		return out
	}
	assert.Equal(t, []string{"a", "b"}, names())
	assert.Equal(t, `<form method="post"><textarea name="a"></textarea><input type="text" name="b"/></form>`, render(t, f))

	el, err := f.Lookup("a")
	require.NoError(t, err)
	assert.Same(t, replacement, el)

	f.Remove("a")
	assert.False(t, f.HasElement("a"))
	assert.Equal(t, []string{"b"}, names())
	assert.Equal(t, `<form method="post"><input type="text" name="b"/></form>`, render(t, f))

	_, err = f.Lookup("a")
	assert.True(t, errors.Is(err, herrors.ErrNotFound))
	assert.Contains(t, err.Error(), "F001")

	unnamed, err := NewText("")
	require.NoError(t, err)
	assert.Contains(t, f.RegisterElement(unnamed).Error(), "F006")

	_, err = f.AddElement("color-wheel", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "F002")
}

func TestRegisterSameInstance(t *testing.T) {
	f := New()
	a, err := f.AddElement("text", "a")
	require.NoError(t, err)
	_, err = f.AddElement("text", "b")
	require.NoError(t, err)

	require.NoError(t, f.RegisterElement(a))
	assert.Len(t, f.Elements(), 2)
	assert.Equal(t, `<form method="post"><input type="text" name="a"/><input type="text" name="b"/></form>`, render(t, f))

	require.NoError(t, f.SetDefaultDecorators(decorator.Spec{Name: "Mark", Decorator: decorator.Func(func(res *decorator.Result, _ decorator.Element) error {
		res.Append(html.Text("*"))
		return nil
	})}))
	require.NoError(t, f.RegisterElement(a))
	assert.Equal(t, `<form method="post"><input type="text" name="a"/>*<input type="text" name="b"/></form>`, render(t, f))
}

func TestPopulateStagesUnknownNames(t *testing.T) {
	f := New()
	_, err := f.AddElement("text", "name")
	require.NoError(t, err)

	require.NoError(t, f.Populate(map[string]any{"name": "Ada", "late": "value"}))
	assert.Equal(t, "Ada", f.Value("name"))
	assert.Equal(t, []string{"late"}, f.Staged())
	assert.Nil(t, f.Value("late"))

	_, err = f.AddElement("text", "late")
	require.NoError(t, err)
	assert.Equal(t, "value", f.Value("late"))
	assert.Empty(t, f.Staged())

	err = f.Populate(map[string]any{"name": map[string]any{"nested": "x"}})
	assert.True(t, errors.Is(err, herrors.ErrInvalidArgument))
}

func TestValuesSkipsIgnored(t *testing.T) {
	f := New()
	_, err := f.AddElement("text", "q", WithValue("x"))
	require.NoError(t, err)
	_, err = f.AddElement("submit", "go", WithLabel("Go"))
	require.NoError(t, err)
	_, err = f.AddElement("text", "internal", WithIgnored(true))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"q": "x"}, f.Values())
}

func TestPopulateURLValues(t *testing.T) {
	f := New()
	outer, err := f.AddElement("fieldset", "outer")
	require.NoError(t, err)
	_, err = outer.(*Fieldset).AddElement("text", "city")
	require.NoError(t, err)
	_, err = f.AddElement("select", "tags", WithOptions(Choices("a", "b", "c")...), WithMultiple(true))
	require.NoError(t, err)
	_, err = f.AddElement("checkbox", "agree")
	require.NoError(t, err)

	err = f.PopulateURLValues(url.Values{
		"outer[city]": {"Paris"},
		"tags[]":      {"a", "c"},
		"agree":       {"1"},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"outer": map[string]any{"city": "Paris"},
		"tags":  []string{"a", "c"},
		"agree": "1",
	}, f.Values())
	assert.True(t, f.Validate())
}

func TestHandleRequest(t *testing.T) {
	newForm := func() *Form {
		f := New(WithName("contact"))
		_, err := f.AddElement("email", "email", WithRequired(true))
		require.NoError(t, err)
		_, err = f.AddElement("submit", "send", WithLabel("Send"))
		require.NoError(t, err)
		_, err = f.AddElement("submit", "preview", WithLabel("Preview"))
		require.NoError(t, err)
		return f
	}

	t.Run("valid post", func(t *testing.T) {
		f := newForm()
		var succeeded bool
		f.OnSuccess(func(got *Form) error {
			succeeded = got == f
			return nil
		})
		f.OnError(func(*Form) error { return errors.New("unexpected") })

		body := url.Values{"email": {"ada@example.com"}, "send": {"Send"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		require.NoError(t, f.HandleRequest(req))
		assert.True(t, f.HasBeenSubmitted())
		assert.True(t, succeeded)
		assert.Equal(t, "ada@example.com", f.Value("email"))
		require.NotNil(t, f.SubmitButton())
		assert.Equal(t, "send", f.SubmitButton().Name())
	})

	t.Run("invalid put", func(t *testing.T) {
		f := newForm()
		f.OnError(func(*Form) error { return errors.New("rejected") })

		body := url.Values{"email": {"not-an-email"}}.Encode()
		req := httptest.NewRequest(http.MethodPut, "/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		assert.EqualError(t, f.HandleRequest(req), "rejected")
		assert.False(t, f.IsValid())
		email, err := f.Lookup("email")
		require.NoError(t, err)
		assert.Equal(t, []string{"Invalid email address"}, email.Messages())
		assert.Nil(t, f.SubmitButton())
	})

	t.Run("multipart patch", func(t *testing.T) {
		f := newForm()
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		require.NoError(t, w.WriteField("email", "bob@example.com"))
		require.NoError(t, w.WriteField("preview", "Preview"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPatch, "/contact", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())

		require.NoError(t, f.HandleRequest(req))
		assert.True(t, f.IsValid())
		assert.Equal(t, "preview", f.SubmitButton().Name())
	})

	t.Run("get is ignored", func(t *testing.T) {
		f := newForm()
		req := httptest.NewRequest(http.MethodGet, "/contact?email=x", nil)
		require.NoError(t, f.HandleRequest(req))
		assert.False(t, f.HasBeenSubmitted())
		assert.Nil(t, f.Value("email"))
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newForm()
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("email=%zz"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		err := f.HandleRequest(req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "F008")
	})
}

func TestFormAttributes(t *testing.T) {
	f := New(WithMethod("GET"), WithFormAttributes(html.Attrs{"class": "inline"}))
	f.SetAction("/search")
	assert.Equal(t, "get", f.Method())
	assert.Equal(t, "/search", f.Action())
	assert.Equal(t, `<form method="get" class="inline" action="/search"></form>`, render(t, f))

	f.SetMethod("POST")
	assert.Equal(t, "post", f.Method())
	assert.Panics(t, func() { New(WithFormAttributes(html.Attrs{"bad name": "x"})) })
}

func TestCustomFactories(t *testing.T) {
	reg := DefaultRegistry().Clone()
	reg.Register("search", func(name string, opts ...Option) (Element, error) {
		in, err := NewInput("search", name, opts...)
		if err != nil {
			return nil, err
		}
		return in, nil
	})
	f := New(WithFactories(reg))
	_, err := f.AddElement("Search", "q")
	require.NoError(t, err)
	assert.Equal(t, `<form method="post"><input type="search" name="q"/></form>`, render(t, f))

	_, ok := DefaultRegistry().Lookup("search")
	assert.False(t, ok)
	assert.Contains(t, reg.Types(), "search")
}
