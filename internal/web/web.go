// Package web serves a small UI and JSON API over a workshop record
// index, plus the recorded Entrez query history.
package web

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/history"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/index"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the request handlers over one loaded index.
type Server struct {
	idx       *index.Index
	store     history.Store
	logger    *log.Logger
	templates *template.Template
}

// NewServer builds a Server. store may be nil; the history endpoint then
// reports an empty list.
func NewServer(idx *index.Index, store history.Store, logger *log.Logger) (*Server, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{idx: idx, store: store, logger: logger, templates: t}, nil
}

// Handler returns the routed handler wrapped with request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc("/record/", s.recordHandler)
	mux.HandleFunc("/api/records", s.apiRecordsHandler)
	mux.HandleFunc("/api/record/", s.apiRecordHandler)
	mux.HandleFunc("/api/history", s.apiHistoryHandler)
	return s.loggingMiddleware(mux)
}

// ListenAndServe serves the UI on addr until the server fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.logger.Info("serving workshop UI", "addr", addr, "records", len(s.idx.Records))
	return srv.ListenAndServe()
}

// statusResponseWriter captures status and bytes written for logging.
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		s.logger.Info("request",
			"remote", r.RemoteAddr, "method", r.Method, "path", r.URL.RequestURI(),
			"status", srw.status, "bytes", srw.written, "duration", time.Since(start))
	})
}

// recordsPage carries query state into the list template.
type recordsPage struct {
	Source  string
	Query   string
	Sort    string
	Records []index.Record
}

// filterSort applies the q and sort query parameters.
func (s *Server) filterSort(q, sortMode string) []index.Record {
	q = strings.ToLower(strings.TrimSpace(q))
	filtered := make([]index.Record, 0, len(s.idx.Records))
	for _, rec := range s.idx.Records {
		if q == "" ||
			strings.Contains(strings.ToLower(rec.ID), q) ||
			strings.Contains(strings.ToLower(rec.Description), q) {
			filtered = append(filtered, rec)
		}
	}
	switch sortMode {
	case "length":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Length > filtered[j].Length })
	case "gc":
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].GC > filtered[j].GC })
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].ID) < strings.ToLower(filtered[j].ID)
		})
	}
	return filtered
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page := recordsPage{
		Source:  s.idx.Source,
		Query:   r.URL.Query().Get("q"),
		Sort:    r.URL.Query().Get("sort"),
		Records: s.filterSort(r.URL.Query().Get("q"), r.URL.Query().Get("sort")),
	}
	if err := s.templates.ExecuteTemplate(w, "records.html", page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// pathID extracts the trailing path element after prefix.
func pathID(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}

func (s *Server) recordHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/record/")
	if id == "" {
		http.Error(w, "missing record id", http.StatusBadRequest)
		return
	}
	rec, ok := s.idx.Lookup(id)
	if !ok {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "record.html", rec); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) apiRecordsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.filterSort(r.URL.Query().Get("q"), r.URL.Query().Get("sort")))
}

func (s *Server) apiRecordHandler(w http.ResponseWriter, r *http.Request) {
	id := pathID(r.URL.Path, "/api/record/")
	if id == "" {
		http.Error(w, "missing record id", http.StatusBadRequest)
		return
	}
	rec, ok := s.idx.Lookup(id)
	if !ok {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, rec)
}

func (s *Server) apiHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, []history.Entry{})
		return
	}
	entries, err := s.store.List(50)
	if err != nil {
		http.Error(w, "failed to read history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, entries)
}
