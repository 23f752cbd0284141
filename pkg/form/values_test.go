package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNestValues(t *testing.T) {
	values := url.Values{
		"q":                    {"search"},
		"tags[]":               {"a", "b"},
		"outer[inner][select]": {"x"},
		"outer[inner][list][]": {"1"},
		"outer[name]":          {"n"},
		"repeated":             {"1", "2"},
		"broken[":              {"b"},
		"odd[a]b":              {"c"},
	}

	got := NestValues(values)
	want := map[string]any{
		"q":        "search",
		"tags":     []string{"a", "b"},
		"repeated": []string{"1", "2"},
		"broken[":  "b",
		"odd[a]b":  "c",
		"outer": map[string]any{
			"name": "n",
			"inner": map[string]any{
				"select": "x",
				"list":   []string{"1"},
			},
		},
	}
	assert.Equal(t, want, got)
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key  string
		path []string
		list bool
	}{
		{"a", []string{"a"}, false},
		{"a[b][c]", []string{"a", "b", "c"}, false},
		{"a[]", []string{"a"}, true},
		{"a[b][]", []string{"a", "b"}, true},
		{"a[][b]", []string{"a[][b]"}, false},
		{"[a]", []string{"[a]"}, false},
	}
	for _, tt := range tests {
		path, list := splitKey(tt.key)
		assert.Equal(t, tt.path, path, tt.key)
		assert.Equal(t, tt.list, list, tt.key)
	}
}

func TestTruthy(t *testing.T) {
	for _, v := range []any{true, "on", "required", "1", "true", []string{"x"}} {
		assert.True(t, truthy(v), "%#v", v)
	}
	for _, v := range []any{nil, false, "", "0", "off", "false"} {
		assert.False(t, truthy(v), "%#v", v)
	}
}
