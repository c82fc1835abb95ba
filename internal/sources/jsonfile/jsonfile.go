// Package jsonfile loads a corpus from a JSON document, read from a
// plain file, an xz-compressed file, or an in-memory byte slice.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/corpus"
	"github.com/asjames18/scripture-engine/core/errors"
	"github.com/asjames18/scripture-engine/internal/logging"
)

// Document is the on-disk JSON corpus shape.
type Document struct {
	Meta  Meta   `json:"meta"`
	Books []Book `json:"books"`
}

// Meta carries corpus-level metadata; only informational here.
type Meta struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// Book mirrors the corpus book, with group optional for books the
// built-in registry already knows.
type Book struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Group    string    `json:"group,omitempty"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter is one numbered chapter.
type Chapter struct {
	Number int     `json:"number"`
	Verses []Verse `json:"verses"`
}

// Verse is one numbered verse.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Source reads a JSON corpus file. Files ending in .xz are
// decompressed transparently.
type Source struct {
	path string
}

// New returns a source over the given file path.
func New(path string) *Source {
	return &Source{path: path}
}

// Format implements corpus.Source.
func (s *Source) Format() string { return "JSON" }

// Load implements corpus.Source.
func (s *Source) Load() ([]*corpus.Book, error) {
	logging.SourceEvent("open", s.Format(), s.path)

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "open failed", Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(s.path), ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "xz stream invalid", Err: err}
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "read failed", Err: err}
	}

	books, err := decode(data)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "decode failed", Err: err}
	}
	return books, nil
}

// FromBytes returns a source over an in-memory JSON document.
func FromBytes(name string, data []byte) corpus.Source {
	return &bytesSource{name: name, data: data}
}

type bytesSource struct {
	name string
	data []byte
}

func (s *bytesSource) Format() string { return "JSON" }

func (s *bytesSource) Load() ([]*corpus.Book, error) {
	books, err := decode(s.data)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.name, Message: "decode failed", Err: err}
	}
	return books, nil
}

// decode parses a Document and maps it onto corpus books.
func decode(data []byte) ([]*corpus.Book, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if len(doc.Books) == 0 {
		return nil, errors.NewValidation("books", "document has no books")
	}

	out := make([]*corpus.Book, 0, len(doc.Books))
	for _, b := range doc.Books {
		book := &corpus.Book{
			ID:    b.ID,
			Name:  b.Name,
			Group: canon.Group(b.Group),
		}
		for _, ch := range b.Chapters {
			chapter := corpus.Chapter{Number: ch.Number}
			for _, v := range ch.Verses {
				chapter.Verses = append(chapter.Verses, corpus.Verse{Number: v.Number, Text: v.Text})
			}
			book.Chapters = append(book.Chapters, chapter)
		}
		out = append(out, book)
	}
	return out, nil
}
