package html

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttributeValidatesName(t *testing.T) {
	for _, name := range []string{"class", "data-id", "xml:lang", "_x", "a.b"} {
		_, err := NewAttribute(name, "v")
		assert.NoError(t, err, name)
	}
	for _, name := range []string{"", "1a", "a b", `a"`, "-x", "a>"} {
		_, err := NewAttribute(name, "v")
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidArgument), name)
	}
}

func TestAttributeValueList(t *testing.T) {
	a := MustAttribute("class", "a").AddValue("b").RemoveValue("a")
	assert.Equal(t, []string{"b"}, a.Value())
	assert.Equal(t, `class="b"`, a.Render())

	a.AddValue([]string{"c", "d"})
	assert.Equal(t, "b c d", a.String())

	a.SetSeparator(",")
	assert.Equal(t, `class="b,c,d"`, a.Render())

	a.RemoveValue([]string{"b", "d"})
	assert.Equal(t, []string{"c"}, a.Value())
}

func TestAttributeScalarRemove(t *testing.T) {
	a := MustAttribute("id", "main")
	a.RemoveValue("other")
	assert.Equal(t, "main", a.Value())
	a.RemoveValue("main")
	assert.Nil(t, a.Value())
	assert.True(t, a.IsEmpty())
	assert.Equal(t, "", a.Render())
}

func TestAttributeRender(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"disabled", true, "disabled"},
		{"disabled", false, ""},
		{"title", `"sweet" & <süß>`, `title="&quot;sweet&quot; &amp; <süß>"`},
		{"maxlength", 10, `maxlength="10"`},
		{"step", 0.5, `step="0.5"`},
		{"class", []any{"x", 1}, `class="x 1"`},
		{"class", []string{}, ""},
		{"name", nil, ""},
		{"value", "", `value=""`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustAttribute(tt.name, tt.value).Render(), "%s=%v", tt.name, tt.value)
	}
}

func TestAttributeImmutable(t *testing.T) {
	a := MustAttribute("type", "text").SetImmutable(true)
	a.SetValue("password").AddValue("x").RemoveValue("text")
	assert.Equal(t, "text", a.Value())
}

func TestAttributesOrderAndMerge(t *testing.T) {
	attrs, err := AttributesFrom(Attrs{"name": "q", "class": "a"})
	require.NoError(t, err)
	require.NoError(t, attrs.Add("class", "b"))
	require.NoError(t, attrs.Set("id", "search"))

	assert.Equal(t, []string{"class", "name", "id"}, attrs.Names())
	assert.Equal(t, ` class="a b" name="q" id="search"`, attrs.Render())

	other := NewAttributes()
	require.NoError(t, other.Set("class", "c"))
	require.NoError(t, attrs.Merge(other))
	assert.Equal(t, "a b c", attrs.String("class"))

	attrs.Remove("class", "b")
	assert.Equal(t, "a c", attrs.String("class"))
	attrs.Remove("name")
	assert.False(t, attrs.Has("name"))
	assert.Equal(t, 2, attrs.Len())
}

func TestAttributesInvalidName(t *testing.T) {
	attrs := NewAttributes()
	err := attrs.Set("bad name", "x")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, 0, attrs.Len())
}

type owner struct {
	name string
}

func registerName(t *testing.T, attrs *Attributes) {
	t.Helper()
	err := attrs.RegisterCallback("name",
		func(o any) any { return o.(*owner).name },
		func(o any, v any) error {
			o.(*owner).name = valueString(v)
			return nil
		},
	)
	require.NoError(t, err)
}

func TestAttributesCallbacks(t *testing.T) {
	o := &owner{name: "q"}
	attrs := NewAttributes()
	attrs.Rebind(o)
	registerName(t, attrs)
	require.NoError(t, attrs.Set("type", "text"))

	assert.Equal(t, ` type="text" name="q"`, attrs.Render())
	assert.Equal(t, "q", attrs.Value("name"))

	require.NoError(t, attrs.Set("name", "search"))
	assert.Equal(t, "search", o.name)
	assert.True(t, attrs.HasCallback("name"))
	assert.Equal(t, []string{"type", "name"}, attrs.Names())
}

func TestAttributesReadOnlyCallback(t *testing.T) {
	attrs := NewAttributes()
	require.NoError(t, attrs.RegisterCallback("id", func(any) any { return "fixed" }, nil))

	err := attrs.Set("id", "other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Contains(t, err.Error(), "read-only")
	assert.Equal(t, "fixed", attrs.String("id"))
}

func TestAttributesCloneRebind(t *testing.T) {
	original := &owner{name: "first"}
	attrs := NewAttributes()
	attrs.Rebind(original)
	registerName(t, attrs)
	require.NoError(t, attrs.Set("class", "x"))

	copied := &owner{name: "second"}
	clone := attrs.Clone()
	clone.Rebind(copied)
	require.NoError(t, clone.Add("class", "y"))

	assert.Equal(t, ` class="x" name="first"`, attrs.Render())
	assert.Equal(t, ` class="x y" name="second"`, clone.Render())

	require.NoError(t, clone.Set("name", "changed"))
	assert.Equal(t, "first", original.name)
	assert.Equal(t, "changed", copied.name)
}
