package decorator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/vango-dev/htmlkit/internal/errors"
	"github.com/vango-dev/htmlkit/pkg/html"
)

func searchField() *field {
	el := newField("q")
	el.label = "Search"
	el.description = "Find anything"
	return el
}

func TestStandardChain(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.AddDecorators(
		"Label",
		Spec{Name: "HtmlTag", Options: Options{"class": "field"}},
		"Description",
	))

	want := `<div class="field"><label for="q">Search</label><input type="text" name="q"/></div>` +
		`<p class="description">Find anything</p>`
	assert.Equal(t, want, renderApply(t, chain, searchField()))
}

func TestBuiltinDecorators(t *testing.T) {
	tests := []struct {
		name  string
		specs []any
		setup func(*field)
		want  string
	}{
		{
			name:  "label on required element",
			specs: []any{[]any{"Label", map[string]any{"class": "control", "requiredSuffix": " *"}}},
			setup: func(f *field) { f.required = true },
			want:  `<label for="q" class="control required">Search *</label><input type="text" name="q"/>`,
		},
		{
			name:  "label appended",
			specs: []any{map[string]any{"Label": map[string]any{"placement": "append"}}},
			want:  `<input type="text" name="q"/><label for="q">Search</label>`,
		},
		{
			name:  "label without text",
			specs: []any{"Label"},
			setup: func(f *field) { f.label = "" },
			want:  `<input type="text" name="q"/>`,
		},
		{
			name:  "description prepended in span",
			specs: []any{map[string]any{"name": "Description", "options": map[string]any{"tag": "span", "placement": "prepend", "class": "hint"}}},
			want:  `<span class="hint">Find anything</span><input type="text" name="q"/>`,
		},
		{
			name:  "errors on invalid element",
			specs: []any{"Errors"},
			setup: func(f *field) {
				f.validated = true
				f.messages = []string{"Required", "Too <short>"}
			},
			want: `<input type="text" name="q"/><ul class="errors"><li>Required</li><li>Too &lt;short&gt;</li></ul>`,
		},
		{
			name:  "errors before validation",
			specs: []any{"Errors"},
			setup: func(f *field) { f.messages = []string{"Required"} },
			want:  `<input type="text" name="q"/>`,
		},
		{
			name:  "html tag with attributes",
			specs: []any{Spec{Name: "HtmlTag", Options: Options{"tag": "section", "id": "wrap", "attributes": map[string]any{"data-role": "field"}}}},
			want:  `<section data-role="field" id="wrap"><input type="text" name="q"/></section>`,
		},
		{
			name:  "html tag condition not met",
			specs: []any{Spec{Name: "HtmlTag", Options: Options{"condition": "invalid"}}},
			want:  `<input type="text" name="q"/>`,
		},
		{
			name:  "html tag on invalid element",
			specs: []any{Spec{Name: "HtmlTag", Options: Options{"condition": "invalid", "class": "has-error"}}},
			setup: func(f *field) {
				f.validated = true
				f.messages = []string{"bad"}
			},
			want: `<div class="has-error"><input type="text" name="q"/></div>`,
		},
		{
			name:  "fieldset skips label",
			specs: []any{"Fieldset", "Label"},
			want:  `<fieldset><legend>Search</legend><input type="text" name="q"/></fieldset>`,
		},
		{
			name:  "render element placement",
			specs: []any{"Description", "RenderElement"},
			want:  `<p class="description">Find anything</p><input type="text" name="q"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := searchField()
			if tt.setup != nil {
				tt.setup(el)
			}
			chain := NewChain()
			require.NoError(t, chain.AddDecorators(tt.specs...))
			assert.Equal(t, tt.want, renderApply(t, chain, el))
		})
	}
}

func TestFieldsetAfterLabelFails(t *testing.T) {
	chain := NewChain()
	require.NoError(t, chain.AddDecorators("Label", "Fieldset"))
	_, err := chain.Apply(searchField())
	assert.True(t, errors.Is(err, herrors.ErrLogic))
}

func TestDescriptionNode(t *testing.T) {
	el := searchField()
	chain := NewChain()
	require.NoError(t, chain.AddDecorators("Description"))
	out := renderApply(t, chain, richField{el})
	assert.Equal(t, `<input type="text" name="q"/><p class="description"><em>rich</em></p>`, out)
}

type richField struct {
	*field
}

func (richField) DescriptionNode() html.Node { return html.Tag("em", "rich") }

func TestInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		spec any
		code string
	}{
		{"wrong type", Spec{Name: "HtmlTag", Options: Options{"tag": 5}}, "D006"},
		{"unknown key", Spec{Name: "Label", Options: Options{"colour": "red"}}, "D006"},
		{"bad placement", Spec{Name: "Errors", Options: Options{"placement": "middle"}}, "D006"},
		{"bad condition", Spec{Name: "HtmlTag", Options: Options{"condition": "sometimes"}}, "D006"},
		{"not configurable", []any{"RenderElement", map[string]any{"x": 1}}, "D002"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewChain().AddDecorators(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, herrors.ErrInvalidArgument))
			assert.Contains(t, err.Error(), tt.code)
		})
	}
}

func TestCloneDecoratorIsolation(t *testing.T) {
	label := NewLabel()
	require.NoError(t, label.SetOptions(Options{"class": "a"}))
	clone := label.CloneDecorator().(*Label)
	require.NoError(t, clone.SetOptions(Options{"class": "b"}))
	assert.Equal(t, "a", label.class)
	assert.Equal(t, "b", clone.class)
}
