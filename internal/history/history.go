// Package history persists generated selectors so they can be reused across
// sessions. The store keeps the 50 most recent entries, newest first.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// MaxEntries is the number of entries the store retains.
const MaxEntries = 50

// Schema for the history table. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	selector TEXT NOT NULL,
	page_url TEXT NOT NULL,
	icon_url TEXT,
	timestamp INTEGER NOT NULL,
	inner_text TEXT
);
CREATE INDEX IF NOT EXISTS idx_history_ts ON history(timestamp);
`

// An Entry is one remembered selector.
type Entry struct {
	Selector  string `json:"selector"`
	PageURL   string `json:"pageUrl"`
	IconURL   string `json:"iconUrl"`
	Timestamp int64  `json:"timestamp"`
	InnerText string `json:"innerText"`
}

// A Store persists history entries to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the history database at path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores an entry and trims the table down to the MaxEntries newest
// rows. A zero timestamp is filled with the current time.
func (s *Store) Add(e Entry) error {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().UnixMilli()
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO history (selector, page_url, icon_url, timestamp, inner_text) VALUES (?, ?, ?, ?, ?)`,
		e.Selector, e.PageURL, e.IconURL, e.Timestamp, e.InnerText,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`DELETE FROM history WHERE id NOT IN (SELECT id FROM history ORDER BY timestamp DESC, id DESC LIMIT ?)`,
		MaxEntries,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns the stored entries, newest first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT selector, page_url, icon_url, timestamp, inner_text FROM history ORDER BY timestamp DESC, id DESC LIMIT ?`,
		MaxEntries,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Selector, &e.PageURL, &e.IconURL, &e.Timestamp, &e.InnerText); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
