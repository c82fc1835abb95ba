package engine

import (
	"strings"
	"testing"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/ref"
	"github.com/asjames18/scripture-engine/core/sacred"
	"github.com/asjames18/scripture-engine/core/search"
)

// All tests run against the embedded sampler corpus.

func TestParseAndFormat(t *testing.T) {
	e := New()

	r := e.ParseReference("1 Jn 2:3-5")
	if r == nil {
		t.Fatal("reference did not parse")
	}
	if r.Book != "1john" || r.Chapter != 2 || r.Verse != 3 || r.EndVerse != 5 {
		t.Errorf("parsed %+v", r)
	}
	if got := e.FormatReference(*r); got != "1 John 2:3-5" {
		t.Errorf("FormatReference = %q", got)
	}

	if e.ParseReference("not a reference") != nil {
		t.Error("garbage input should return nil")
	}
}

func TestParseReferences(t *testing.T) {
	e := New()

	refs, failed := e.ParseReferences("John 3:16; bogus; Psalm 23")
	if len(refs) != 2 {
		t.Fatalf("parsed %d refs, want 2", len(refs))
	}
	if len(failed) != 1 || failed[0] != "bogus" {
		t.Errorf("failed = %v", failed)
	}
}

func TestCorpusLookups(t *testing.T) {
	e := New()

	books, err := e.LoadCorpus()
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(books) != 9 {
		t.Errorf("sampler has %d books, want 9", len(books))
	}

	b, ok := e.Book("Jn")
	if !ok || b.ID != "john" {
		t.Errorf("Book(Jn) = %v, %v", b, ok)
	}

	_, _, v, ok := e.Verse("john", 3, 16)
	if !ok {
		t.Fatal("john 3:16 missing from sampler")
	}
	if !strings.HasPrefix(v.Text, "For God so loved the world") {
		t.Errorf("verse text = %q", v.Text)
	}

	if _, _, _, ok := e.Verse("john", 3, 99); ok {
		t.Error("nonexistent verse should miss")
	}

	apoc := e.BooksByGroup(canon.GroupApocrypha)
	if len(apoc) != 1 || apoc[0].ID != "sirach" {
		t.Errorf("apocrypha = %v", apoc)
	}
}

func TestCorpusMetadata(t *testing.T) {
	e := New()

	meta, err := e.CorpusMetadata()
	if err != nil {
		t.Fatalf("CorpusMetadata: %v", err)
	}
	if meta.TotalBooks != 9 || meta.TotalVerses != 25 {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestVersesFor(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		r    ref.Reference
		want int
		ok   bool
	}{
		{"whole chapter", ref.Reference{Book: "psalm", Chapter: 23}, 6, true},
		{"single verse", ref.Reference{Book: "john", Chapter: 3, Verse: 16}, 1, true},
		{"range", ref.Reference{Book: "1john", Chapter: 2, Verse: 3, EndVerse: 5}, 3, true},
		{"range clipped to chapter", ref.Reference{Book: "john", Chapter: 3, Verse: 16, EndVerse: 99}, 2, true},
		{"range past the chapter", ref.Reference{Book: "john", Chapter: 3, Verse: 50, EndVerse: 60}, 0, false},
		{"missing chapter", ref.Reference{Book: "john", Chapter: 7}, 0, false},
		{"missing book", ref.Reference{Book: "malachi", Chapter: 1}, 0, false},
		{"invalid reference", ref.Reference{Book: "john"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, verses, ok := e.VersesFor(tt.r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if len(verses) != tt.want {
				t.Errorf("got %d verses, want %d", len(verses), tt.want)
			}
		})
	}
}

func TestPassageText(t *testing.T) {
	e := New()

	r := ref.Reference{Book: "proverbs", Chapter: 3, Verse: 5, EndVerse: 6}
	plain, ok := e.PassageText(r, false)
	if !ok {
		t.Fatal("passage missing")
	}
	if !strings.Contains(plain, "Trust in the LORD") || !strings.Contains(plain, "direct thy paths") {
		t.Errorf("plain passage = %q", plain)
	}

	transformed, ok := e.PassageText(r, true)
	if !ok {
		t.Fatal("passage missing")
	}
	if !strings.Contains(transformed, "YAHUAH") {
		t.Errorf("sacred passage should substitute LORD: %q", transformed)
	}
	if strings.Contains(transformed, "LORD") {
		t.Errorf("sacred passage kept LORD: %q", transformed)
	}
}

func TestSearch(t *testing.T) {
	e := New()

	resp, err := e.Search("light", search.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Total == 0 {
		t.Fatal("no hits for a word the sampler contains")
	}
	for _, h := range resp.Hits {
		if h.BookID != "genesis" {
			t.Errorf("unexpected hit in %q", h.BookID)
		}
	}

	scoped, err := e.Search("lord", search.Options{Scope: canon.GroupApocrypha})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if scoped.Total != 1 || scoped.Hits[0].BookID != "sirach" {
		t.Errorf("scoped hits = %+v", scoped.Hits)
	}
}

func TestSacredNames(t *testing.T) {
	e := New()

	got := e.ApplySacredNames("The grace of our Lord Jesus Christ")
	if got != "The grace of our Adonai Yeshua Messiah" {
		t.Errorf("ApplySacredNames = %q", got)
	}

	custom := New(WithSacredMappings([]sacred.Mapping{
		{Original: "grace", Sacred: "favor"},
	}))
	got = custom.ApplySacredNames("The grace of our Lord")
	if got != "The favor of our Lord" {
		t.Errorf("custom table output = %q", got)
	}
}

func TestSacredMappingTables(t *testing.T) {
	e := New()

	base := e.SacredNameMappings()
	extended := e.AddSacredNameMappings([]sacred.Mapping{
		{Original: "amen", Sacred: "so be it"},
	})
	if len(extended) != len(base)+1 {
		t.Errorf("extended table has %d rules, want %d", len(extended), len(base)+1)
	}
	if len(e.SacredNameMappings()) != len(base) {
		t.Error("AddSacredNameMappings mutated the default table")
	}
}
