package inventory

import (
	"fmt"
	"strings"
)

// sheetTable is a raw sheet split into a unique header row and data rows
// padded to the header width.
type sheetTable struct {
	headers []string
	rows    [][]string
	index   map[string]int
}

// parseSheet treats the first row as the header. Blank and duplicate header
// cells are made unique the way spreadsheet readers usually do it
// ("Unnamed: 3", "Stock.1"), and fully blank data rows are dropped.
func parseSheet(raw [][]string) sheetTable {
	t := sheetTable{index: make(map[string]int)}
	if len(raw) == 0 {
		return t
	}

	width := 0
	for _, r := range raw {
		if len(r) > width {
			width = len(r)
		}
	}

	t.headers = uniqueHeaders(raw[0], width)
	for i, h := range t.headers {
		t.index[h] = i
	}

	t.rows = make([][]string, 0, len(raw)-1)
	for _, r := range raw[1:] {
		if isBlankRow(r) {
			continue
		}
		padded := make([]string, width)
		copy(padded, r)
		t.rows = append(t.rows, padded)
	}
	return t
}

func uniqueHeaders(raw []string, width int) []string {
	out := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(raw) {
			name = raw[i]
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for used[name] {
			suffix[base]++
			name = fmt.Sprintf("%s.%d", base, suffix[base])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// text returns the column as raw strings; absent columns are all blank.
func (t sheetTable) text(header string) []string {
	out := make([]string, len(t.rows))
	i, ok := t.index[header]
	if !ok {
		return out
	}
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// numeric coerces a whole column at once. Cells that do not parse become 0.
func (t sheetTable) numeric(header string) []float64 {
	cells := t.text(header)
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = toNumber(c)
	}
	return out
}

// missing returns the required headers the sheet lacks, in required order.
func (t sheetTable) missing(required []string) []string {
	var out []string
	for _, h := range required {
		if _, ok := t.index[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}

// extras collects, per row, every cell whose header is not known.
func (t sheetTable) extras(known func(string) bool) []map[string]string {
	out := make([]map[string]string, len(t.rows))
	var cols []int
	for i, h := range t.headers {
		if !known(h) {
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 {
		return out
	}
	for r, row := range t.rows {
		m := make(map[string]string, len(cols))
		for _, i := range cols {
			m[t.headers[i]] = row[i]
		}
		out[r] = m
	}
	return out
}

// columns renames known headers in place and appends the derived columns.
func (t sheetTable) columns(renames map[string]string, derived []string) []string {
	out := make([]string, 0, len(t.headers)+len(derived))
	for _, h := range t.headers {
		if c, ok := renames[h]; ok {
			out = append(out, c)
			continue
		}
		out = append(out, h)
	}
	return append(out, derived...)
}
