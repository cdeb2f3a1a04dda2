// Package index builds and persists the record index the fasta, tui and
// serve commands share: every parsed record annotated with its length,
// GC content and base composition.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joshy-alphonse/BioPython-Workshop/internal/fasta"
	"github.com/joshy-alphonse/BioPython-Workshop/internal/seq"
)

// Record is one indexed sequence.
type Record struct {
	ID          string         `json:"id"`
	Description string         `json:"description,omitempty"`
	Length      int            `json:"length"`
	GC          float64        `json:"gc"`
	Composition map[string]int `json:"composition,omitempty"`
	Sequence    string         `json:"sequence"`
}

// Index is the persisted artifact of `workshop fasta index`.
type Index struct {
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
	Skipped   int       `json:"skipped,omitempty"`
	Records   []Record  `json:"records"`
}

// Build annotates every record in set. Empty sequences keep a zero GC.
func Build(set *fasta.Set, source string) *Index {
	idx := &Index{
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Skipped:   set.Skipped,
		Records:   make([]Record, 0, set.Len()),
	}
	for _, rec := range set.Records {
		r := Record{
			ID:          rec.ID,
			Description: rec.Description,
			Length:      rec.Len(),
			Sequence:    rec.Sequence,
		}
		if gc, err := seq.GC(rec.Sequence); err == nil {
			r.GC = gc
		}
		if rec.Len() > 0 {
			comp := make(map[string]int)
			for b, n := range seq.Counts(rec.Sequence) {
				comp[string(b)] = n
			}
			r.Composition = comp
		}
		idx.Records = append(idx.Records, r)
	}
	return idx
}

// Lookup finds a record by ID.
func (idx *Index) Lookup(id string) (Record, bool) {
	for _, r := range idx.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Save writes the index as indented JSON.
func (idx *Index) Save(path string) error {
	b, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Load reads an index written by Save.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("index file %q does not exist (run `workshop fasta index` first)", path)
		}
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("index file %q is corrupt: %w", path, err)
	}
	return &idx, nil
}
