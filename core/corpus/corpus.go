// Package corpus holds the in-memory book/chapter/verse data model and
// the build-once store that serves all read paths of the engine.
package corpus

import (
	"github.com/asjames18/scripture-engine/core/canon"
)

// Verse is a single numbered verse. Immutable once loaded.
type Verse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Chapter is an ordered sequence of verses, addressed externally by its
// 1-based number. Verse numbers need not be contiguous but are unique
// within the chapter.
type Chapter struct {
	Number int     `json:"number"`
	Verses []Verse `json:"verses"`
}

// Verse returns the verse with the given number.
func (c *Chapter) Verse(number int) (*Verse, bool) {
	for i := range c.Verses {
		if c.Verses[i].Number == number {
			return &c.Verses[i], true
		}
	}
	return nil, false
}

// Book is one book of the corpus: metadata plus its ordered chapters.
type Book struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Group    canon.Group `json:"group"`
	Order    int         `json:"order"`
	Aliases  []string    `json:"aliases,omitempty"`
	Chapters []Chapter   `json:"chapters"`
}

// Chapter returns the chapter with the given 1-based number.
// Out-of-range numbers are a miss, not an error.
func (b *Book) Chapter(number int) (*Chapter, bool) {
	for i := range b.Chapters {
		if b.Chapters[i].Number == number {
			return &b.Chapters[i], true
		}
	}
	return nil, false
}

// VerseCount returns the total number of verses in the book.
func (b *Book) VerseCount() int {
	n := 0
	for _, c := range b.Chapters {
		n += len(c.Verses)
	}
	return n
}

// Corpus is the complete ordered set of books. It is immutable after
// the store builds it.
type Corpus struct {
	Books []*Book `json:"books"`
}

// Book returns the book with the given canonical ID.
func (c *Corpus) Book(id string) (*Book, bool) {
	for _, b := range c.Books {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// Source supplies raw book data for a corpus build. Implementations
// live in internal/sources; the store treats a Source as an opaque
// provider invoked exactly once.
type Source interface {
	// Format identifies the source type (e.g. "JSON", "OSIS", "SQLite").
	Format() string

	// Load reads the complete set of books. It is called once per
	// build; a failure here is the only fatal error in the engine.
	Load() ([]*Book, error)
}
