package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/history"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/index"
)

func testServer(t *testing.T, store history.Store) *Server {
	t.Helper()
	set, err := fasta.Parse(strings.NewReader(">alpha first\nGGCC\n>beta second\nATATATAT\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	s, err := NewServer(index.Build(set, "test.fasta"), store, nil)
	if err != nil {
		t.Fatalf("new server failed: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	h := testServer(t, nil).Handler()
	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "alpha") || !strings.Contains(body, "beta") {
		t.Fatalf("expected both records listed: %s", body)
	}
}

func TestIndexPageFilter(t *testing.T) {
	h := testServer(t, nil).Handler()
	body := get(t, h, "/?q=alpha").Body.String()
	if !strings.Contains(body, "alpha") || strings.Contains(body, ">beta<") {
		t.Fatalf("filter not applied: %s", body)
	}
}

func TestRecordPage(t *testing.T) {
	h := testServer(t, nil).Handler()
	rec := get(t, h, "/record/alpha")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GGCC") {
		t.Fatalf("expected sequence in page: %s", rec.Body.String())
	}
	if got := get(t, h, "/record/missing"); got.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown record, got %d", got.Code)
	}
}

func TestAPIRecords(t *testing.T) {
	h := testServer(t, nil).Handler()
	rec := get(t, h, "/api/records?sort=gc")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var records []index.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(records) != 2 || records[0].ID != "alpha" {
		t.Fatalf("expected GC-sorted records, got %+v", records)
	}
}

func TestAPIRecord(t *testing.T) {
	h := testServer(t, nil).Handler()
	rec := get(t, h, "/api/record/beta")
	var r index.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &r); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if r.ID != "beta" || r.Length != 8 {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestAPIHistory(t *testing.T) {
	store, err := history.Open("json", filepath.Join(t.TempDir(), "h.json"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer store.Close()
	if err := store.Append(history.Entry{Op: "search", DB: "nucleotide", Term: "DRD4"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	h := testServer(t, store).Handler()
	rec := get(t, h, "/api/history")
	var entries []history.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(entries) != 1 || entries[0].Term != "DRD4" {
		t.Fatalf("unexpected history: %+v", entries)
	}
}

func TestAPIHistoryNoStore(t *testing.T) {
	h := testServer(t, nil).Handler()
	rec := get(t, h, "/api/history")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty history list, got %d %q", rec.Code, rec.Body.String())
	}
}
