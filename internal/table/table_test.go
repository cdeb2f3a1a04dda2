package table

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `gene,length,gc,chromosome
DRD4,3400,62.1,11
BRCA1,81189,41.5,17
TP53,19149,48.2,17
INS,1431,63.9,11
`

func mustRead(t *testing.T, data string) *Table {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return tbl
}

func TestReadCSV(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	if len(tbl.Columns) != 4 || tbl.Columns[0] != "gene" {
		t.Fatalf("unexpected columns: %v", tbl.Columns)
	}
	if tbl.Len() != 4 {
		t.Fatalf("expected 4 rows, got %d", tbl.Len())
	}
}

func TestReadTSV(t *testing.T) {
	tbl, err := ReadTSV(strings.NewReader("a\tb\n1\t2\n"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if tbl.Len() != 1 || tbl.Rows[0][1] != "2" {
		t.Fatalf("unexpected table: %+v", tbl)
	}
}

func TestReadRaggedRow(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2\n3\n"))
	if err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestReadEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected friendly missing-file error, got %v", err)
	}
}

func TestColumnAndNumeric(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	genes, err := tbl.Column("gene")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(genes) != 4 || genes[0] != "DRD4" {
		t.Fatalf("unexpected column: %v", genes)
	}
	gc, err := tbl.Numeric("gc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gc) != 4 || gc[3] != 63.9 {
		t.Fatalf("unexpected numeric column: %v", gc)
	}
	if _, err := tbl.Numeric("gene"); err == nil {
		t.Fatal("expected error parsing text column as numeric")
	}
	if _, err := tbl.Column("nope"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestSelect(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	sel, err := tbl.Select("gc", "gene")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sel.Columns) != 2 || sel.Columns[0] != "gc" {
		t.Fatalf("unexpected columns: %v", sel.Columns)
	}
	if sel.Rows[0][1] != "DRD4" {
		t.Fatalf("unexpected reordered row: %v", sel.Rows[0])
	}
}

func TestFilter(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	chr17 := tbl.Filter(func(get func(string) string) bool {
		return get("chromosome") == "17"
	})
	if chr17.Len() != 2 {
		t.Fatalf("expected 2 rows on chr17, got %d", chr17.Len())
	}
}

func TestHead(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	if tbl.Head(2).Len() != 2 {
		t.Fatal("head(2) should keep 2 rows")
	}
	if tbl.Head(100).Len() != 4 {
		t.Fatal("head beyond table should keep all rows")
	}
}

func TestSortByNumeric(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	if err := tbl.SortBy("length", true, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "INS" || tbl.Rows[3][0] != "BRCA1" {
		t.Fatalf("unexpected numeric order: %v", tbl.Rows)
	}
	if err := tbl.SortBy("gene", false, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "TP53" {
		t.Fatalf("unexpected descending order: %v", tbl.Rows)
	}
}

func TestSortByNumericUnparsableLast(t *testing.T) {
	tbl := mustRead(t, "v\n3\nx\n1\n")
	if err := tbl.SortBy("v", true, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "3" || tbl.Rows[1][0] != "1" || tbl.Rows[2][0] != "x" {
		t.Fatalf("unparsable cell should sort last in descending order, got %v", tbl.Rows)
	}
	if err := tbl.SortBy("v", true, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows[0][0] != "1" || tbl.Rows[2][0] != "x" {
		t.Fatalf("unparsable cell should sort last in ascending order, got %v", tbl.Rows)
	}
}

func TestGroupCount(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	groups, err := tbl.GroupCount("chromosome")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 || groups[0].Count != 2 {
		t.Fatalf("unexpected groups: %+v", groups)
	}
}

func TestDescribe(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	s, err := tbl.Describe("gc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Count != 4 || s.Min != 41.5 || s.Max != 63.9 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	wantMean := (62.1 + 41.5 + 48.2 + 63.9) / 4
	if math.Abs(s.Mean-wantMean) > 1e-9 {
		t.Fatalf("mean = %v, want %v", s.Mean, wantMean)
	}
	if s.Std <= 0 {
		t.Fatalf("expected positive std, got %v", s.Std)
	}
}

func TestDescribeEmptyColumn(t *testing.T) {
	tbl := mustRead(t, "a,b\nx,\ny,\n")
	if _, err := tbl.Describe("b"); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tbl := mustRead(t, sampleCSV)
	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	again, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("reread failed: %v", err)
	}
	if again.Len() != tbl.Len() || again.Columns[2] != "gc" {
		t.Fatalf("round trip mismatch: %+v", again)
	}
}
