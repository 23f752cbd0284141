package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/htmlkit/pkg/html"
)

func render(t *testing.T, n html.Node, opts ...html.Option) string {
	t.Helper()
	out, err := html.Render(n, opts...)
	require.NoError(t, err)
	return out
}

func TestTableSections(t *testing.T) {
	tbl := New(html.Attrs{"class": "grid"})
	tbl.Header("Name", "Qty")
	tbl.AddRow("Apples", 3)
	tbl.AddRow(Cell("Pears <ripe>"), Cell(html.Tag("b", "7")))
	tbl.Footer(Cell("Total").Span(1), 10)

	want := `<table class="grid">` +
		`<thead><tr><th>Name</th><th>Qty</th></tr></thead>` +
		`<tbody><tr><td>Apples</td><td>3</td></tr><tr><td>Pears &lt;ripe&gt;</td><td><b>7</b></td></tr></tbody>` +
		`<tfoot><tr><td colspan="1">Total</td><td>10</td></tr></tfoot>` +
		`</table>`
	assert.Equal(t, want, render(t, tbl))
	// Assembly runs once.
	assert.Equal(t, want, render(t, tbl))
}

func TestTableEmptySectionsOmitted(t *testing.T) {
	tbl := New()
	assert.Equal(t, "<table></table>", render(t, tbl))

	tbl = New().SetCaption("Stock")
	tbl.AddRows(Row("a"), Row(HeaderCell("h"), "b"))
	assert.Equal(t, `<table><caption>Stock</caption><tbody><tr><td>a</td></tr><tr><th>h</th><td>b</td></tr></tbody></table>`, render(t, tbl))
	assert.Len(t, tbl.Rows(), 2)
}

func TestRowsCanGrowBeforeRender(t *testing.T) {
	tbl := New()
	row := tbl.AddRow("a")
	row.AddCells(HeaderCell, "b", Cell("c"))
	assert.Equal(t, 3, row.Cells())
	assert.Equal(t, `<table><tbody><tr><td>a</td><th>b</th><td>c</td></tr></tbody></table>`, render(t, tbl))
}

func TestTablePretty(t *testing.T) {
	tbl := New()
	tbl.AddRow("a", "b")
	assert.Equal(t, "<table><tbody><tr><td>a</td>\n<td>b</td></tr></tbody></table>", render(t, tbl, html.WithPretty(true)))
}

func TestNewRejectsUnknownArguments(t *testing.T) {
	assert.Panics(t, func() { New(42) })
}
