// Package history records Entrez operations (search, fetch, link) so a
// workshop session can be replayed. Two backends are available: a JSON
// file and a sqlite database, chosen by config.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded operation.
type Entry struct {
	ID   int64     `json:"id"`
	Op   string    `json:"op"`
	DB   string    `json:"db"`
	Term string    `json:"term,omitempty"`
	IDs  []string  `json:"ids,omitempty"`
	When time.Time `json:"when"`
}

// Store is implemented by both backends.
type Store interface {
	Append(e Entry) error
	List(limit int) ([]Entry, error)
	Prune(keep int) error
	Close() error
}

// Open returns a store for the given backend name ("json" or "sqlite").
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "json":
		return &jsonStore{path: path}, nil
	case "sqlite":
		return openSQLite(path)
	default:
		return nil, fmt.Errorf("unknown history backend %q (want json or sqlite)", backend)
	}
}

// jsonStore keeps the whole history in one JSON file, read-modify-write.
type jsonStore struct {
	path string
}

func (s *jsonStore) readAll() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("history file %s is corrupt: %w", s.path, err)
	}
	return entries, nil
}

func (s *jsonStore) writeAll(entries []Entry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *jsonStore) Append(e Entry) error {
	entries, err := s.readAll()
	if err != nil {
		return err
	}
	var maxID int64
	for _, prev := range entries {
		if prev.ID > maxID {
			maxID = prev.ID
		}
	}
	e.ID = maxID + 1
	if e.When.IsZero() {
		e.When = time.Now().UTC()
	}
	return s.writeAll(append(entries, e))
}

func (s *jsonStore) List(limit int) ([]Entry, error) {
	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	// newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *jsonStore) Prune(keep int) error {
	entries, err := s.readAll()
	if err != nil {
		return err
	}
	if keep >= 0 && len(entries) > keep {
		entries = entries[len(entries)-keep:]
	}
	return s.writeAll(entries)
}

func (s *jsonStore) Close() error { return nil }

// sqliteStore keeps history rows in a single table.
type sqliteStore struct {
	db *sql.DB
}

func openSQLite(path string) (*sqliteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        op TEXT NOT NULL,
        db TEXT NOT NULL,
        term TEXT,
        ids TEXT,
        at TEXT NOT NULL
    )`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Append(e Entry) error {
	if e.When.IsZero() {
		e.When = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO history (op, db, term, ids, at) VALUES (?, ?, ?, ?, ?)`,
		e.Op, e.DB, e.Term, strings.Join(e.IDs, ","), e.When.Format(time.RFC3339),
	)
	return err
}

func (s *sqliteStore) List(limit int) ([]Entry, error) {
	q := `SELECT id, op, db, term, ids, at FROM history ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(q+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		var ids, at string
		if err := rows.Scan(&e.ID, &e.Op, &e.DB, &e.Term, &ids, &at); err != nil {
			return nil, err
		}
		if ids != "" {
			e.IDs = strings.Split(ids, ",")
		}
		e.When, _ = time.Parse(time.RFC3339, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *sqliteStore) Prune(keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY id DESC LIMIT ?)`, keep)
	return err
}

func (s *sqliteStore) Close() error { return s.db.Close() }
