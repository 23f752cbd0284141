package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/html"
)

func render(t *testing.T, n html.Node) string {
	t.Helper()
	out, err := html.Render(n)
	require.NoError(t, err)
	return out
}

func must[T any](t *testing.T) func(v T, err error) T {
	return func(v T, err error) T {
		t.Helper()
		require.NoError(t, err)
		return v
	}
}

func TestElementRender(t *testing.T) {
	text := must[*Input](t)
	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"text", text(NewText("q")), `<input type="text" name="q"/>`},
		{"text with value", text(NewText("q", WithValue("a&b"))), `<input type="text" name="q" value="a&amp;b"/>`},
		{"required", text(NewText("q", WithRequired(true))), `<input type="text" name="q" required/>`},
		{"id and placeholder", text(NewText("q", WithID("search"), WithPlaceholder("Find"))), `<input type="text" id="search" placeholder="Find" name="q"/>`},
		{"password hides value", text(NewPassword("pw", WithValue("secret"))), `<input type="password" name="pw"/>`},
		{"number", text(NewNumber("n", WithValue(3))), `<input type="number" name="n" value="3"/>`},
		{"hidden", must[*Hidden](t)(NewHidden("token", WithValue("abc"))), `<input type="hidden" name="token" value="abc"/>`},
		{"submit", must[*Submit](t)(NewSubmit("send", WithLabel("Send"))), `<input type="submit" name="send" value="Send"/>`},
		{"button", must[*Button](t)(NewButton("go", WithLabel("Go <now>"))), `<button type="submit" name="go">Go &lt;now&gt;</button>`},
		{"checkbox", must[*Checkbox](t)(NewCheckbox("agree")), `<input type="checkbox" name="agree" value="1"/>`},
		{"checkbox checked", must[*Checkbox](t)(NewCheckbox("agree", WithValue(true))), `<input type="checkbox" name="agree" value="1" checked/>`},
		{"textarea", must[*Textarea](t)(NewTextarea("msg", WithValue("a < b"))), `<textarea name="msg">a &lt; b</textarea>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.el))
		})
	}
}

func TestInputValueFollowsState(t *testing.T) {
	in, err := NewText("q")
	require.NoError(t, err)

	require.NoError(t, in.SetAttribute("value", "from attribute"))
	assert.Equal(t, "from attribute", in.Value())

	require.NoError(t, in.SetValue("changed"))
	assert.Equal(t, `<input type="text" name="q" value="changed"/>`, render(t, in))

	in.SetName("term")
	assert.Equal(t, "term", in.Attr("name"))

	err = in.SetValue(map[string]any{"a": "b"})
	assert.True(t, errors.Is(err, herrors.ErrInvalidArgument))
}

func TestCheckboxValues(t *testing.T) {
	cb, err := NewCheckbox("newsletter", WithCheckedValues("yes", "no"))
	require.NoError(t, err)
	assert.Equal(t, "no", cb.Value())

	require.NoError(t, cb.SetValue("yes"))
	assert.True(t, cb.IsChecked())
	assert.Equal(t, "yes", cb.Value())
	assert.Equal(t, `<input type="checkbox" name="newsletter" value="yes" checked/>`, render(t, cb))

	require.NoError(t, cb.SetValue("other"))
	assert.False(t, cb.IsChecked())

	cb.SetRequired(true)
	assert.False(t, cb.Validate())
	assert.Equal(t, []string{"This field is required"}, cb.Messages())
	cb.SetChecked(true)
	assert.True(t, cb.Validate())

	_, err = NewText("q", WithCheckedValues("a", "b"))
	assert.Contains(t, err.Error(), "F007")
}

func TestSelectRender(t *testing.T) {
	s, err := NewSelect("color",
		WithOptions(Choice{Value: "r", Label: "Red"}, Choice{Value: "g", Label: "Green"}),
		WithOptions(Choice{Value: "x", Label: "Gone", Disabled: true}),
		WithValue("g"),
	)
	require.NoError(t, err)
	assert.Equal(t,
		`<select name="color"><option value="r">Red</option><option value="g" selected>Green</option><option value="x" disabled>Gone</option></select>`,
		render(t, s))
}

func TestSelectGroupsAndMultiple(t *testing.T) {
	choices := append(InGroup("Warm", Choices("red", "orange")...), InGroup("Cold", Choices("blue")...)...)
	s, err := NewSelect("colors", WithOptions(choices...), WithMultiple(true), WithValue([]string{"red", "blue"}))
	require.NoError(t, err)

	assert.Equal(t, "colors[]", s.FullName())
	assert.Equal(t, []string{"red", "blue"}, s.Value())
	assert.Equal(t,
		`<select name="colors[]" multiple>`+
			`<optgroup label="Warm"><option value="red" selected>red</option><option value="orange">orange</option></optgroup>`+
			`<optgroup label="Cold"><option value="blue" selected>blue</option></optgroup>`+
			`</select>`,
		render(t, s))
}

func TestSelectValidatesChoices(t *testing.T) {
	s, err := NewSelect("size", WithOptions(ChoiceMap(map[string]string{"s": "Small", "m": "Medium"})...),
		WithOptions(Choice{Value: "xl", Disabled: true}))
	require.NoError(t, err)
	assert.Equal(t, []Choice{{Value: "m", Label: "Medium"}, {Value: "s", Label: "Small"}, {Value: "xl", Label: "xl", Disabled: true}}, s.Choices())

	require.NoError(t, s.SetValue("m"))
	assert.True(t, s.Validate())

	require.NoError(t, s.SetValue("xl"))
	assert.False(t, s.Validate())
	assert.Equal(t, []string{`"xl" is not a valid choice`}, s.Messages())

	require.NoError(t, s.SetValue(""))
	assert.True(t, s.Validate())
}

func TestRadioRender(t *testing.T) {
	r, err := NewRadio("size", WithOptions(Choice{Value: "s", Label: "Small"}, Choice{Value: "m", Label: "Medium"}), WithValue("m"))
	require.NoError(t, err)
	assert.Equal(t,
		`<div><label><input type="radio" name="size" value="s"/>Small</label><label><input type="radio" name="size" value="m" checked/>Medium</label></div>`,
		render(t, r))

	require.NoError(t, r.SetValue("l"))
	assert.False(t, r.Validate())
}

func TestFieldsetRender(t *testing.T) {
	fs, err := NewFieldset("address", WithLabel("Address"))
	require.NoError(t, err)
	_, err = fs.AddElement("text", "city")
	require.NoError(t, err)

	assert.Equal(t, `<fieldset><legend>Address</legend><input type="text" name="address[city]"/></fieldset>`, render(t, fs))
}

func TestFieldsetValue(t *testing.T) {
	fs, err := NewFieldset("address", WithValue(map[string]any{"zip": "12345"}))
	require.NoError(t, err)
	_, err = fs.AddElement("text", "city", WithRequired(true))
	require.NoError(t, err)
	// The zip value was staged until the element existed.
	_, err = fs.AddElement("text", "zip")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"city": nil, "zip": "12345"}, fs.Value())
	assert.False(t, fs.Validate())
	assert.False(t, fs.IsValid())
	assert.Empty(t, fs.Messages())

	require.NoError(t, fs.SetValue(map[string]string{"city": "Berlin"}))
	assert.True(t, fs.Validate())
	assert.Equal(t, "Berlin", fs.Value().(map[string]any)["city"])

	err = fs.SetValue("flat")
	assert.Contains(t, err.Error(), "F003")
}

func TestCloneRebindsCallbacks(t *testing.T) {
	orig, err := NewText("q", WithValue("first"), WithValidators(MinLength(3, "")))
	require.NoError(t, err)
	clone := orig.CloneElement().(*Input)

	require.NoError(t, clone.SetAttribute("name", "other"))
	require.NoError(t, clone.SetAttribute("value", "second"))

	assert.Equal(t, "q", orig.Name())
	assert.Equal(t, "first", orig.Value())
	assert.Equal(t, "other", clone.Name())
	assert.Equal(t, `<input type="text" name="q" value="first"/>`, render(t, orig))
	assert.Equal(t, `<input type="text" name="other" value="second"/>`, render(t, clone))

	require.NoError(t, orig.SetAttribute("name", "orig"))
	assert.Equal(t, "other", clone.Attr("name"))
	assert.Len(t, clone.Validators(), 1)
}

func TestCloneSelectAndFieldset(t *testing.T) {
	s, err := NewSelect("c", WithOptions(Choices("a", "b")...), WithValue("a"))
	require.NoError(t, err)
	sc := s.CloneElement().(*Select)
	require.NoError(t, sc.SetValue("b"))
	assert.Contains(t, render(t, s), `<option value="a" selected>a</option>`)
	assert.Contains(t, render(t, sc), `<option value="b" selected>b</option>`)

	fs, err := NewFieldset("outer")
	require.NoError(t, err)
	_, err = fs.AddElement("text", "x", WithValue("1"))
	require.NoError(t, err)

	fc := fs.CloneElement().(*Fieldset)
	x, err := fc.Lookup("x")
	require.NoError(t, err)
	require.NoError(t, x.SetValue("2"))
	fc.SetName("copy")

	assert.Equal(t, `<fieldset><input type="text" name="outer[x]" value="1"/></fieldset>`, render(t, fs))
	assert.Equal(t, `<fieldset><input type="text" name="copy[x]" value="2"/></fieldset>`, render(t, fc))
}

func TestUnsupportedOption(t *testing.T) {
	_, err := NewTextarea("t", WithOptions(Choices("a")...))
	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrInvalidArgument))

	_, err = NewCheckbox("c", WithMultiple(true))
	assert.Contains(t, err.Error(), "WithMultiple")
}
