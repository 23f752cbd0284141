// Package table builds HTML tables row by row. Rows are grouped into
// <thead>, <tbody> and <tfoot> when the table is first rendered.
package table

import (
	"fmt"

	"github.com/vango-dev/htmlkit/pkg/html"
)

// Table is a <table> element.
type Table struct {
	html.Element

	caption string
	header  []*RowElement
	body    []*RowElement
	footer  []*RowElement
}

// New creates an empty table. Arguments are passed to html.Tag.
func New(args ...any) *Table {
	t := &Table{}
	t.Init(t, "table")
	for _, arg := range args {
		switch v := arg.(type) {
		case html.Attrs:
			if err := t.AddAttributes(v); err != nil {
				panic(err)
			}
		default:
			panic(fmt.Sprintf("table: unsupported argument %T", arg))
		}
	}
	return t
}

// SetCaption sets the caption.
func (t *Table) SetCaption(caption string) *Table {
	t.caption = caption
	return t
}

// Header appends a header row. Plain values become <th> cells.
func (t *Table) Header(cells ...any) *RowElement {
	r := newRow(HeaderCell, cells)
	t.header = append(t.header, r)
	return r
}

// Footer appends a footer row.
func (t *Table) Footer(cells ...any) *RowElement {
	r := newRow(Cell, cells)
	t.footer = append(t.footer, r)
	return r
}

// AddRow appends a body row. Plain values become <td> cells; *CellElement
// values are used as they are.
func (t *Table) AddRow(cells ...any) *RowElement {
	r := newRow(Cell, cells)
	t.body = append(t.body, r)
	return r
}

// AddRows appends body rows.
func (t *Table) AddRows(rows ...*RowElement) {
	t.body = append(t.body, rows...)
}

// Rows returns the body rows.
func (t *Table) Rows() []*RowElement { return append([]*RowElement(nil), t.body...) }

// Assemble implements html.Assembler.
func (t *Table) Assemble() {
	if t.caption != "" {
		t.Add(html.Tag("caption", t.caption))
	}
	t.addSection("thead", t.header)
	t.addSection("tbody", t.body)
	t.addSection("tfoot", t.footer)
}

func (t *Table) addSection(tag string, rows []*RowElement) {
	if len(rows) == 0 {
		return
	}
	section := html.NewElement(tag)
	for _, r := range rows {
		section.Add(r)
	}
	t.Add(section)
}

// RowElement is a <tr> element.
type RowElement struct {
	html.Element
}

// Row creates a row of <td> cells.
func Row(cells ...any) *RowElement {
	return newRow(Cell, cells)
}

func newRow(cell func(...any) *CellElement, cells []any) *RowElement {
	r := &RowElement{}
	r.Init(r, "tr")
	r.AddCells(cell, cells...)
	return r
}

// AddCells appends cells. Values that are not *CellElement are passed to
// cell.
func (r *RowElement) AddCells(cell func(...any) *CellElement, cells ...any) {
	for _, c := range cells {
		if ce, ok := c.(*CellElement); ok {
			r.Add(ce)
			continue
		}
		r.Add(cell(c))
	}
}

// Cells returns the number of cells.
func (r *RowElement) Cells() int { return r.Len() }

// CellElement is a <td> or <th> element.
type CellElement struct {
	html.Element
}

// Cell creates a <td>. Content is converted like html.Tag arguments;
// other values are formatted with %v.
func Cell(content ...any) *CellElement {
	return newCell("td", content)
}

// HeaderCell creates a <th>.
func HeaderCell(content ...any) *CellElement {
	return newCell("th", content)
}

func newCell(tag string, content []any) *CellElement {
	c := &CellElement{}
	c.Init(c, tag)
	for _, v := range content {
		switch x := v.(type) {
		case nil:
		case html.Node:
			c.Add(x)
		case string:
			c.Add(html.Text(x))
		case html.Attrs:
			if err := c.AddAttributes(x); err != nil {
				panic(err)
			}
		default:
			c.Add(html.Textf("%v", x))
		}
	}
	return c
}

// Span sets colspan.
func (c *CellElement) Span(n int) *CellElement {
	if err := c.SetAttribute("colspan", n); err != nil {
		panic(err)
	}
	return c
}
