package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// Class substrings that mark a table as page scaffolding rather than data.
var layoutClassPatterns = []string{"layout", "wrapper", "container", "frame"}

// ExtractTables returns every data table in the document, in document
// order. Layout tables are classified out; tables with no usable content
// are dropped silently.
func (e *Engine) ExtractTables(rawHTML string) ([]*webextract.TableRecord, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	tables := []*webextract.TableRecord{}
	doc.Find("table").Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		if isLayoutTable(n) {
			return
		}
		if record := structureTable(n); record != nil {
			tables = append(tables, record)
		}
	})
	return tables, nil
}

// isLayoutTable decides layout-vs-data. The conditions are independent OR
// checks: explicit presentational role, layout-ish class names, or the
// table being doubly-or-more nested inside other tables.
func isLayoutTable(table *html.Node) bool {
	role := attrVal(table, "role")
	if strings.EqualFold(role, "presentation") || strings.EqualFold(role, "none") {
		return true
	}

	class := strings.ToLower(attrVal(table, "class"))
	for _, pattern := range layoutClassPatterns {
		if strings.Contains(class, pattern) {
			return true
		}
	}

	depth := 0
	for p := table.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && strings.EqualFold(p.Data, "table") {
			depth++
		}
	}
	return depth >= 2
}

// tableRow is one tr scoped to a single table.
type tableRow struct {
	cells  []string
	inHead bool
	anyTH  bool
}

// scanTableRows collects the rows belonging to this table, in document
// order, without descending into nested tables.
func scanTableRows(table *html.Node) []tableRow {
	var rows []tableRow
	var walk func(n *html.Node, inHead bool)
	walk = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch strings.ToLower(c.Data) {
			case "table":
				// rows of a nested table belong to that table
			case "thead":
				walk(c, true)
			case "tr":
				rows = append(rows, scanRow(c, inHead))
			default:
				walk(c, inHead)
			}
		}
	}
	walk(table, false)
	return rows
}

func scanRow(tr *html.Node, inHead bool) tableRow {
	row := tableRow{inHead: inHead}
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch strings.ToLower(c.Data) {
		case "th":
			row.anyTH = true
			row.cells = append(row.cells, collapseWhitespace(textContent(c)))
		case "td":
			row.cells = append(row.cells, collapseWhitespace(textContent(c)))
		}
	}
	return row
}

// structureTable builds a normalized record from a data table, or nil when
// the table carries no usable content.
//
// Header resolution, first applicable rule:
//
//	(a) a thead row exists            -> its cells become headers
//	(b) the first row contains a th   -> that row becomes headers
//	(c) otherwise                     -> empty headers sized to the first row
func structureTable(table *html.Node) *webextract.TableRecord {
	rows := scanTableRows(table)

	var headers []string
	headerResolved := false
	for _, r := range rows {
		if r.inHead {
			headers = r.cells
			headerResolved = true
			break
		}
	}

	var bodyRows []tableRow
	for _, r := range rows {
		if !r.inHead {
			bodyRows = append(bodyRows, r)
		}
	}

	if !headerResolved && len(bodyRows) > 0 && bodyRows[0].anyTH {
		headers = bodyRows[0].cells
		headerResolved = true
		bodyRows = bodyRows[1:]
	}

	data := [][]string{}
	for _, r := range bodyRows {
		if len(r.cells) == 0 {
			continue
		}
		data = append(data, r.cells)
	}

	if !headerResolved {
		if len(data) == 0 {
			return nil
		}
		headers = make([]string, len(data[0]))
	}

	// Right-pad headers and rows to the widest width observed. Short rows
	// get fabricated empty cells rather than being rejected.
	width := len(headers)
	for _, r := range data {
		if len(r) > width {
			width = len(r)
		}
	}
	headers = padCells(headers, width)
	for i := range data {
		data[i] = padCells(data[i], width)
	}

	hasHeader := false
	for _, h := range headers {
		if h != "" {
			hasHeader = true
			break
		}
	}
	if !hasHeader && len(data) == 0 {
		return nil
	}

	return &webextract.TableRecord{
		Headers: headers,
		Rows:    data,
		Caption: tableCaption(table),
	}
}

func padCells(cells []string, width int) []string {
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}

// tableCaption returns the trimmed text of the table's first caption
// element, ignoring captions of nested tables.
func tableCaption(table *html.Node) string {
	var caption string
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch strings.ToLower(c.Data) {
			case "table":
			case "caption":
				caption = collapseWhitespace(textContent(c))
				return false
			default:
				if !walk(c) {
					return false
				}
			}
		}
		return true
	}
	walk(table)
	return caption
}
