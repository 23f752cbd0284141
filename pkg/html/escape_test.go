package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeAttributeValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"quotes and ampersand", `"sweet" & <süß>`, `&quot;sweet&quot; &amp; <süß>`},
		{"named entity kept", "a &amp; b", "a &amp; b"},
		{"numeric entity kept", "&#39;x&#x27;", "&#39;x&#x27;"},
		{"unknown entity escaped", "&bogus;", "&amp;bogus;"},
		{"bare ampersand at end", "a&", "a&amp;"},
		{"ampersand without semicolon", "a&b c", "a&amp;b c"},
		{"empty numeric", "&#;", "&amp;#;"},
		{"single quote kept", "it's", "it's"},
		{"invalid utf8", "a\xffb", "a�b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeAttributeValue(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, EscapeAttributeValue(got), "escaping must be idempotent")
		})
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"<b>", "&lt;b&gt;"},
		{"a & b", "a &amp; b"},
		{"&amp;", "&amp;amp;"},
		{`say "hi"`, "say &quot;hi&quot;"},
		{"it's", "it's"},
		{"bad\xc3", "bad�"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeText(tt.in), tt.in)
	}
}
