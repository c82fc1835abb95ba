package sqlitedb

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/asjames18/scripture-engine/core/corpus"
	coreerrors "github.com/asjames18/scripture-engine/core/errors"
	"github.com/asjames18/scripture-engine/internal/sources/jsonfile"
	"github.com/asjames18/scripture-engine/internal/sqlite"
)

func createDB(t *testing.T, withBooksTable bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.db")

	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	exec := func(query string, args ...any) {
		t.Helper()
		if _, err := db.Exec(query, args...); err != nil {
			t.Fatalf("exec %q: %v", query, err)
		}
	}

	exec(`CREATE TABLE verses (
		book_id TEXT    NOT NULL,
		chapter INTEGER NOT NULL,
		verse   INTEGER NOT NULL,
		text    TEXT    NOT NULL
	)`)
	if withBooksTable {
		exec(`CREATE TABLE books (id TEXT PRIMARY KEY, name TEXT, "group" TEXT)`)
		exec(`INSERT INTO books (id, name, "group") VALUES ('john', 'John', 'canon')`)
		exec(`INSERT INTO books (id, name, "group") VALUES ('sirach', 'Sirach', 'apocrypha')`)
	}

	verses := []struct {
		book          string
		chapter, num  int
		text          string
	}{
		{"john", 1, 1, "In the beginning was the Word"},
		{"john", 3, 16, "For God so loved the world"},
		{"john", 3, 17, "For God sent not his Son"},
		{"sirach", 1, 1, "All wisdom cometh from the Lord"},
	}
	for _, v := range verses {
		exec(`INSERT INTO verses (book_id, chapter, verse, text) VALUES (?, ?, ?, ?)`,
			v.book, v.chapter, v.num, v.text)
	}

	return path
}

func TestLoadWithBooksTable(t *testing.T) {
	path := createDB(t, true)

	books, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}

	var john *struct {
		chapters int
		verses   int
	}
	for _, b := range books {
		if b.ID != "john" {
			continue
		}
		if b.Name != "John" {
			t.Errorf("john name = %q", b.Name)
		}
		total := 0
		for _, ch := range b.Chapters {
			total += len(ch.Verses)
		}
		john = &struct {
			chapters int
			verses   int
		}{len(b.Chapters), total}
	}
	if john == nil {
		t.Fatal("john missing")
	}
	if john.chapters != 2 || john.verses != 3 {
		t.Errorf("john has %d chapters, %d verses", john.chapters, john.verses)
	}
}

func TestLoadWithoutBooksTable(t *testing.T) {
	path := createDB(t, false)

	books, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	for _, b := range books {
		if b.ID == "" {
			t.Error("book without an ID")
		}
	}
}

func TestLoadNotACorpusDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sqlite.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE notes (id INTEGER)`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	_, err = New(path).Load()
	if err == nil {
		t.Fatal("Load should fail on a database with no verses table")
	}
	var srcErr *coreerrors.SourceError
	if !errors.As(err, &srcErr) {
		t.Errorf("error %T is not a SourceError", err)
	}
}

// The same logical corpus loaded from SQLite and from JSON builds to
// equal books, chapters, and verses.
func TestEquivalenceWithJSON(t *testing.T) {
	jsonDoc := []byte(`{
		"meta": {"id": "equiv"},
		"books": [
			{"id": "john", "chapters": [
				{"number": 1, "verses": [{"number": 1, "text": "In the beginning was the Word"}]},
				{"number": 3, "verses": [
					{"number": 16, "text": "For God so loved the world"},
					{"number": 17, "text": "For God sent not his Son"}
				]}
			]},
			{"id": "sirach", "chapters": [
				{"number": 1, "verses": [{"number": 1, "text": "All wisdom cometh from the Lord"}]}
			]}
		]
	}`)

	fromJSON, err := corpus.NewStore(jsonfile.FromBytes("equiv", jsonDoc)).LoadAll()
	if err != nil {
		t.Fatalf("JSON store: %v", err)
	}
	fromDB, err := corpus.NewStore(New(createDB(t, true))).LoadAll()
	if err != nil {
		t.Fatalf("SQLite store: %v", err)
	}

	if len(fromJSON) != len(fromDB) {
		t.Fatalf("book counts differ: %d vs %d", len(fromJSON), len(fromDB))
	}
	for i := range fromJSON {
		j, d := fromJSON[i], fromDB[i]
		if j.ID != d.ID || j.Name != d.Name || j.Group != d.Group || j.Order != d.Order {
			t.Errorf("book %d metadata differs: %+v vs %+v", i, j, d)
		}
		if !reflect.DeepEqual(j.Chapters, d.Chapters) {
			t.Errorf("book %s chapters differ:\n%+v\n%+v", j.ID, j.Chapters, d.Chapters)
		}
	}
}

func TestOpenReadOnly(t *testing.T) {
	path := createDB(t, true)

	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO verses (book_id, chapter, verse, text) VALUES ('x', 1, 1, 'x')`)
	if err == nil {
		t.Error("write through a read-only handle should fail")
	}
}
