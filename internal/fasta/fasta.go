package fasta

// Package fasta contains helpers to parse FASTA formatted data used by the
// workshop lessons. It intentionally keeps parsing simple and conservative.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record represents a single FASTA record. ID is the first whitespace
// delimited token after the '>' marker; Description is the remainder of
// the header line.
type Record struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Sequence    string `json:"sequence"`
}

// Header reconstructs the full header line (without the '>' marker).
func (r Record) Header() string {
	if r.Description == "" {
		return r.ID
	}
	return r.ID + " " + r.Description
}

// Len returns the sequence length in bases.
func (r Record) Len() int { return len(r.Sequence) }

// Set holds parsed records in input order plus an ID index for lookups.
// Malformed input (sequence data before any header, duplicate IDs, empty
// IDs) is skipped and reported through Skipped/Warnings rather than
// aborting the parse.
type Set struct {
	Records  []Record
	Skipped  int
	Warnings []string

	byID map[string]int
}

// Len returns the number of records in the set.
func (s *Set) Len() int { return len(s.Records) }

// IDs returns record identifiers in input order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.Records))
	for i, r := range s.Records {
		ids[i] = r.ID
	}
	return ids
}

// Lookup returns the record with the given identifier.
func (s *Set) Lookup(id string) (Record, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Record{}, false
	}
	return s.Records[i], true
}

func (s *Set) add(rec Record, line int) {
	if rec.ID == "" {
		s.Skipped++
		s.Warnings = append(s.Warnings, fmt.Sprintf("line %d: header with empty identifier, record skipped", line))
		return
	}
	if _, dup := s.byID[rec.ID]; dup {
		s.Skipped++
		s.Warnings = append(s.Warnings, fmt.Sprintf("line %d: duplicate identifier %q, first record kept", line, rec.ID))
		return
	}
	s.byID[rec.ID] = len(s.Records)
	s.Records = append(s.Records, rec)
}

// splitHeader splits a header line (marker already stripped) into ID and
// description.
func splitHeader(line string) (string, string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

// Parse reads FASTA records from r. Lines beginning with '>' start a new
// record and reset the sequence accumulator; any other non-blank line is
// uppercased and appended to the current record. Sequence data appearing
// before the first header is reported and skipped.
func Parse(r io.Reader) (*Set, error) {
	set := &Set{byID: make(map[string]int)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		cur       Record
		inRecord  bool
		startLine int
		orphans   int
		lineNo    int
	)
	flush := func() {
		if inRecord {
			set.add(cur, startLine)
		}
		cur = Record{}
		inRecord = false
	}
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			cur.ID, cur.Description = splitHeader(line[1:])
			inRecord = true
			startLine = lineNo
			continue
		}
		if !inRecord {
			orphans++
			continue
		}
		cur.Sequence += strings.ToUpper(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fasta scan: %w", err)
	}
	flush()
	if orphans > 0 {
		set.Skipped += orphans
		set.Warnings = append(set.Warnings, fmt.Sprintf("%d sequence line(s) before first header skipped", orphans))
	}
	return set, nil
}

// ParseFile parses the FASTA file at path. A missing file produces a
// friendly error instead of the raw open failure.
func ParseFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("fasta file %q does not exist", path)
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Write writes records to w in FASTA format, wrapping sequence lines at
// width characters. width <= 0 writes each sequence on a single line.
func Write(w io.Writer, records []Record, width int) error {
	for _, rec := range records {
		if _, err := fmt.Fprintf(w, ">%s\n", rec.Header()); err != nil {
			return err
		}
		seq := rec.Sequence
		if width <= 0 || seq == "" {
			if _, err := fmt.Fprintln(w, seq); err != nil {
				return err
			}
			continue
		}
		for len(seq) > 0 {
			n := width
			if n > len(seq) {
				n = len(seq)
			}
			if _, err := fmt.Fprintln(w, seq[:n]); err != nil {
				return err
			}
			seq = seq[n:]
		}
	}
	return nil
}
