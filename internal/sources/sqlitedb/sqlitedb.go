// Package sqlitedb loads a corpus from a SQLite database.
//
// Expected schema:
//
//	CREATE TABLE books (
//	    id      TEXT PRIMARY KEY,
//	    name    TEXT,
//	    "group" TEXT
//	);
//	CREATE TABLE verses (
//	    book_id TEXT    NOT NULL,
//	    chapter INTEGER NOT NULL,
//	    verse   INTEGER NOT NULL,
//	    text    TEXT    NOT NULL
//	);
//
// The books table is optional metadata; verses referencing a book_id
// with no books row are still loaded.
package sqlitedb

import (
	"database/sql"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/corpus"
	"github.com/asjames18/scripture-engine/core/errors"
	"github.com/asjames18/scripture-engine/internal/logging"
	"github.com/asjames18/scripture-engine/internal/sqlite"
)

// Source reads a corpus from a SQLite database file.
type Source struct {
	path string
}

// New returns a source over the given database path.
func New(path string) *Source {
	return &Source{path: path}
}

// Format implements corpus.Source.
func (s *Source) Format() string { return "SQLite" }

// Load implements corpus.Source. The database is opened read-only and
// closed before returning.
func (s *Source) Load() ([]*corpus.Book, error) {
	logging.SourceEvent("open", s.Format(), s.path, "driver", sqlite.DriverType())

	db, err := sqlite.OpenReadOnly(s.path)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "open failed", Err: err}
	}
	defer db.Close()

	books, index, err := s.loadBooks(db)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT book_id, chapter, verse, text FROM verses ORDER BY book_id, chapter, verse`)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "verses query failed", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, text string
		var chapter, verse int
		if err := rows.Scan(&bookID, &chapter, &verse, &text); err != nil {
			return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "verses row scan failed", Err: err}
		}

		book, ok := index[bookID]
		if !ok {
			book = &corpus.Book{ID: bookID}
			index[bookID] = book
			books = append(books, book)
		}

		n := len(book.Chapters)
		if n == 0 || book.Chapters[n-1].Number != chapter {
			book.Chapters = append(book.Chapters, corpus.Chapter{Number: chapter})
			n++
		}
		ch := &book.Chapters[n-1]
		ch.Verses = append(ch.Verses, corpus.Verse{Number: verse, Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "verses iteration failed", Err: err}
	}

	return books, nil
}

// loadBooks reads the optional books metadata table.
func (s *Source) loadBooks(db *sql.DB) ([]*corpus.Book, map[string]*corpus.Book, error) {
	index := make(map[string]*corpus.Book)
	var books []*corpus.Book

	rows, err := db.Query(`SELECT id, COALESCE(name, ''), COALESCE("group", '') FROM books`)
	if err != nil {
		// A missing books table is tolerated; a broken one is not.
		// database/sql reports "no such table" only at query time, so
		// probe for the verses table to distinguish a corpus database
		// from an arbitrary file.
		var n int
		if probeErr := db.QueryRow(`SELECT COUNT(*) FROM verses`).Scan(&n); probeErr != nil {
			return nil, nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "not a corpus database", Err: probeErr}
		}
		return books, index, nil
	}
	defer rows.Close()

	for rows.Next() {
		var id, name, group string
		if err := rows.Scan(&id, &name, &group); err != nil {
			return nil, nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "books row scan failed", Err: err}
		}
		book := &corpus.Book{ID: id, Name: name, Group: canon.Group(group)}
		index[id] = book
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "books iteration failed", Err: err}
	}

	return books, index, nil
}
