// Package osis loads a corpus from an OSIS XML document. Only the
// book/chapter/verse structure is read; markup inside verses is
// flattened to plain text.
package osis

import (
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/corpus"
	"github.com/asjames18/scripture-engine/core/errors"
	"github.com/asjames18/scripture-engine/internal/logging"
)

// Source reads an OSIS XML corpus file.
type Source struct {
	path string
}

// New returns a source over the given file path.
func New(path string) *Source {
	return &Source{path: path}
}

// Format implements corpus.Source.
func (s *Source) Format() string { return "OSIS" }

// Load implements corpus.Source.
func (s *Source) Load() ([]*corpus.Book, error) {
	logging.SourceEvent("open", s.Format(), s.path)

	f, err := os.Open(s.path)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "open failed", Err: err}
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, &errors.SourceError{Format: s.Format(), Path: s.path, Message: "XML parse failed", Err: err}
	}

	divs := xmlquery.Find(doc, "//div[@type='book']")
	if len(divs) == 0 {
		return nil, errors.NewSource(s.Format(), s.path, "no book divisions found")
	}

	resolver := canon.Default()
	var books []*corpus.Book
	for _, div := range divs {
		osisID := div.SelectAttr("osisID")
		if osisID == "" {
			return nil, errors.NewSource(s.Format(), s.path, "book division without osisID")
		}

		// OSIS book IDs ("Gen", "1John") resolve through the alias
		// table; unknown IDs keep their lowercased OSIS form.
		id, ok := resolver.Resolve(osisID)
		if !ok {
			id = strings.ToLower(osisID)
		}

		book := &corpus.Book{ID: id}
		if err := s.loadVerses(book, div); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// loadVerses walks the verse elements of one book division.
func (s *Source) loadVerses(book *corpus.Book, div *xmlquery.Node) error {
	for _, vn := range xmlquery.Find(div, ".//verse[@osisID]") {
		chapter, verse, ok := splitOsisRef(vn.SelectAttr("osisID"))
		if !ok {
			return errors.NewSource(s.Format(), s.path, "malformed verse osisID "+vn.SelectAttr("osisID"))
		}

		text := strings.TrimSpace(vn.InnerText())
		if text == "" {
			// Milestone-style <verse/> markers carry no inner text;
			// those documents are out of scope for this loader.
			continue
		}

		n := len(book.Chapters)
		if n == 0 || book.Chapters[n-1].Number != chapter {
			book.Chapters = append(book.Chapters, corpus.Chapter{Number: chapter})
			n++
		}
		ch := &book.Chapters[n-1]
		ch.Verses = append(ch.Verses, corpus.Verse{Number: verse, Text: text})
	}
	return nil
}

// splitOsisRef extracts chapter and verse from "Book.C.V".
func splitOsisRef(osisID string) (chapter, verse int, ok bool) {
	parts := strings.Split(osisID, ".")
	if len(parts) != 3 {
		return 0, 0, false
	}
	chapter, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	verse, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return chapter, verse, true
}
