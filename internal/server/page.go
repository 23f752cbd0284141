package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/htmlkit/pkg/html"
	"github.com/vango-dev/htmlkit/pkg/table"
)

func page(title string, body ...html.Node) html.Node {
	return html.NewDocument(
		html.Raw("<!DOCTYPE html>\n"),
		html.Tag("html", html.Attrs{"lang": "en"},
			html.Tag("head",
				html.Tag("meta", html.Attrs{"charset": "utf-8"}),
				html.Tag("title", title),
			),
			html.Tag("body", html.Tag("h1", title), body),
		),
	)
}

// valuesTable lists submitted values with their full names.
func valuesTable(values map[string]any) *table.Table {
	t := table.New(html.Attrs{"class": "values"})
	t.Header("Field", "Value")
	rows := flatten("", values)
	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.AddRow(k, rows[k])
	}
	return t
}

func flatten(prefix string, values map[string]any) map[string]string {
	out := make(map[string]string)
	for name, v := range values {
		key := name
		if prefix != "" {
			key = prefix + "[" + name + "]"
		}
		switch v := v.(type) {
		case map[string]any:
			for k, s := range flatten(key, v) {
				out[k] = s
			}
		case []string:
			out[key] = strings.Join(v, ", ")
		case nil:
			out[key] = ""
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}
