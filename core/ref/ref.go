// Package ref implements natural-language scripture reference parsing.
// It turns strings like "1 John 2:3-5" into structured references,
// validates them, and formats them back to their canonical string form.
package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asjames18/scripture-engine/core/canon"
)

// Reference is a structured locator for a passage: a canonical book ID,
// a chapter, and an optional verse or verse range. Zero means absent
// for Verse and EndVerse.
type Reference struct {
	Book     string `json:"book"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse,omitempty"`
	EndVerse int    `json:"end_verse,omitempty"`
}

// IsValid reports whether the reference satisfies the structural
// invariants: a book, chapter >= 1, verse >= 1 when present, and
// EndVerse >= Verse when both are present. An EndVerse without a Verse
// is invalid.
func (r Reference) IsValid() bool {
	if r.Book == "" || r.Chapter < 1 {
		return false
	}
	if r.Verse == 0 {
		return r.EndVerse == 0
	}
	if r.Verse < 1 {
		return false
	}
	if r.EndVerse != 0 && r.EndVerse < r.Verse {
		return false
	}
	return true
}

// IsRange reports whether the reference spans more than one verse.
func (r Reference) IsRange() bool {
	return r.EndVerse > r.Verse && r.Verse > 0
}

// Format returns the canonical string form of a reference:
// "Book Chapter", "Book Chapter:Verse", or "Book Chapter:Verse-EndVerse".
// For a valid reference, Parse(Format(r)) == r.
func Format(r Reference) string {
	name := r.Book
	if b, ok := canon.ByID(r.Book); ok {
		name = b.Name
	}

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(r.Chapter))
	if r.Verse > 0 {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(r.Verse))
		if r.EndVerse > 0 {
			sb.WriteString("-")
			sb.WriteString(strconv.Itoa(r.EndVerse))
		}
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (r Reference) String() string {
	return Format(r)
}

var _ fmt.Stringer = Reference{}
