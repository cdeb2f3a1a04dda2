// Package table implements the delimited-file lessons: loading CSV/TSV
// files with a header row and the small set of selection, filtering and
// summary operations the workshop walks through.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrNoData is returned when a summary has no rows to work with.
var ErrNoData = errors.New("no data")

// Row is one record, indexed by column position.
type Row []string

// Table is an in-memory, header-first rectangular dataset.
type Table struct {
	Columns []string
	Rows    []Row

	colIdx map[string]int
}

func newTable(columns []string, rows []Row) *Table {
	t := &Table{Columns: columns, Rows: rows, colIdx: make(map[string]int, len(columns))}
	for i, c := range columns {
		t.colIdx[c] = i
	}
	return t
}

// Read parses delimited data with a header row. Ragged rows are an error
// naming the offending line.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read table: %w", ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("read table header: %w", err)
	}
	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader reports field-count mismatches with the line number
			return nil, fmt.Errorf("read table: %w", err)
		}
		rows = append(rows, Row(rec))
	}
	return newTable(header, rows), nil
}

// ReadCSV parses comma separated data.
func ReadCSV(r io.Reader) (*Table, error) { return Read(r, ',') }

// ReadTSV parses tab separated data.
func ReadTSV(r io.Reader) (*Table, error) { return Read(r, '\t') }

// FromFile loads path, picking the delimiter from the extension
// (.tsv/.tab means tab, everything else comma).
func FromFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("table file %q does not exist", path)
		}
		return nil, err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab":
		return ReadTSV(f)
	default:
		return ReadCSV(f)
	}
}

// WriteCSV writes the table with its header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) index(name string) (int, error) {
	i, ok := t.colIdx[name]
	if !ok {
		return 0, fmt.Errorf("unknown column %q (have %s)", name, strings.Join(t.Columns, ", "))
	}
	return i, nil
}

// Column returns the named column's values.
func (t *Table) Column(name string) ([]string, error) {
	i, err := t.index(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for j, row := range t.Rows {
		out[j] = row[i]
	}
	return out, nil
}

// Numeric parses the named column as float64s. Blank cells are skipped;
// non-numeric cells are an error.
func (t *Table) Numeric(name string) ([]float64, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(vals))
	for j, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %q is not numeric", name, j+1, v)
		}
		out = append(out, f)
	}
	return out, nil
}

// Select returns a new table containing only the named columns, in order.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for k, name := range names {
		i, err := t.index(name)
		if err != nil {
			return nil, err
		}
		idx[k] = i
	}
	rows := make([]Row, len(t.Rows))
	for j, row := range t.Rows {
		nr := make(Row, len(idx))
		for k, i := range idx {
			nr[k] = row[i]
		}
		rows[j] = nr
	}
	return newTable(append([]string(nil), names...), rows), nil
}

// Filter returns a new table holding only the rows keep accepts. The
// predicate receives cell values by column name via the getter.
func (t *Table) Filter(keep func(get func(col string) string) bool) *Table {
	var rows []Row
	for _, row := range t.Rows {
		r := row
		get := func(col string) string {
			if i, ok := t.colIdx[col]; ok && i < len(r) {
				return r[i]
			}
			return ""
		}
		if keep(get) {
			rows = append(rows, r)
		}
	}
	return newTable(append([]string(nil), t.Columns...), rows)
}

// Head returns the first n rows (all rows when n exceeds the table).
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	if n < 0 {
		n = 0
	}
	return newTable(append([]string(nil), t.Columns...), t.Rows[:n])
}

// SortBy orders rows by the named column. Numeric sorting parses cells as
// floats, pushing unparsable cells last.
func (t *Table) SortBy(name string, numeric, desc bool) error {
	i, err := t.index(name)
	if err != nil {
		return err
	}
	sort.SliceStable(t.Rows, func(x, y int) bool {
		a, b := t.Rows[x][i], t.Rows[y][i]
		if numeric {
			fa, ea := strconv.ParseFloat(strings.TrimSpace(a), 64)
			fb, eb := strconv.ParseFloat(strings.TrimSpace(b), 64)
			// Unparsable cells sink to the bottom in either direction.
			if ea != nil {
				return false
			}
			if eb != nil {
				return true
			}
			if desc {
				return fa > fb
			}
			return fa < fb
		}
		if desc {
			return a > b
		}
		return a < b
	})
	return nil
}

// GroupCount tallies how many rows carry each distinct value of the named
// column, most frequent first (ties by value).
func (t *Table) GroupCount(name string) ([]Group, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, v := range vals {
		counts[v]++
	}
	groups := make([]Group, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, Group{Value: v, Count: n})
	}
	sort.Slice(groups, func(x, y int) bool {
		if groups[x].Count != groups[y].Count {
			return groups[x].Count > groups[y].Count
		}
		return groups[x].Value < groups[y].Value
	})
	return groups, nil
}

// Group is one GroupCount bucket.
type Group struct {
	Value string
	Count int
}

// Summary holds descriptive statistics for one numeric column.
type Summary struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
	Std   float64
}

// Describe computes descriptive statistics for the named column. A column
// with no numeric values returns ErrNoData rather than dividing by zero.
func (t *Table) Describe(name string) (Summary, error) {
	vals, err := t.Numeric(name)
	if err != nil {
		return Summary{}, err
	}
	if len(vals) == 0 {
		return Summary{}, fmt.Errorf("column %q: %w", name, ErrNoData)
	}
	s := Summary{Count: len(vals), Min: vals[0], Max: vals[0]}
	sum := 0.0
	for _, v := range vals {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(vals))
	if len(vals) > 1 {
		ss := 0.0
		for _, v := range vals {
			d := v - s.Mean
			ss += d * d
		}
		s.Std = math.Sqrt(ss / float64(len(vals)-1))
	}
	return s, nil
}
