package search

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/corpus"
)

type memSource struct {
	books []*corpus.Book
}

func (s *memSource) Format() string                { return "memory" }
func (s *memSource) Load() ([]*corpus.Book, error) { return s.books, nil }

func buildIndex(t *testing.T) *Index {
	t.Helper()
	store := corpus.NewStore(&memSource{books: []*corpus.Book{
		{
			ID: "genesis",
			Chapters: []corpus.Chapter{
				{Number: 1, Verses: []corpus.Verse{
					{Number: 1, Text: "In the beginning God created the heaven and the earth."},
					{Number: 3, Text: "And God said, Let there be light: and there was light."},
				}},
			},
		},
		{
			ID: "psalm",
			Chapters: []corpus.Chapter{
				{Number: 23, Verses: []corpus.Verse{
					{Number: 1, Text: "The LORD is my shepherd; I shall not want."},
				}},
				{Number: 119, Verses: []corpus.Verse{
					{Number: 105, Text: "Thy word is a lamp unto my feet, and a light unto my path."},
				}},
			},
		},
		{
			ID: "john",
			Chapters: []corpus.Chapter{
				{Number: 1, Verses: []corpus.Verse{
					{Number: 4, Text: "In him was life; and the life was the light of men."},
					{Number: 5, Text: "And the light shineth in darkness; and the darkness comprehended it not."},
				}},
				{Number: 3, Verses: []corpus.Verse{
					{Number: 16, Text: "For God so loved the world, that he gave his only begotten Son."},
				}},
			},
		},
		{
			ID: "sirach",
			Chapters: []corpus.Chapter{
				{Number: 1, Verses: []corpus.Verse{
					{Number: 1, Text: "All wisdom cometh from the Lord, and is with him for ever."},
				}},
			},
		},
	}})
	idx, err := Build(store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func hitRefs(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = fmt.Sprintf("%s %d:%d", h.BookID, h.Chapter, h.Verse)
	}
	return out
}

func TestSearchTokenMatching(t *testing.T) {
	idx := buildIndex(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"single token", "light", 4},
		{"case insensitive", "LIGHT", 4},
		{"all tokens required", "light darkness", 1},
		{"token with punctuation in query", "light,", 4},
		{"no match", "pomegranate", 0},
		{"empty query", "", 0},
		{"whitespace query", "   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := idx.Search(tt.query, Options{})
			if resp.Total != tt.want {
				t.Errorf("Search(%q) total = %d, want %d", tt.query, resp.Total, tt.want)
			}
			if len(resp.Hits) != tt.want {
				t.Errorf("Search(%q) returned %d hits, want %d", tt.query, len(resp.Hits), tt.want)
			}
		})
	}
}

func TestSearchSubstringFallback(t *testing.T) {
	idx := buildIndex(t)

	// "shep" is not a whole token anywhere; the substring pass finds it.
	resp := idx.Search("shep", Options{})
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	h := resp.Hits[0]
	if h.BookID != "psalm" || h.Chapter != 23 || h.Verse != 1 {
		t.Errorf("hit = %+v", h)
	}
	if h.MatchPos != strings.Index(strings.ToLower("The LORD is my shepherd; I shall not want."), "shep") {
		t.Errorf("MatchPos = %d", h.MatchPos)
	}
}

func TestSearchScopeAndBookFilter(t *testing.T) {
	idx := buildIndex(t)

	all := idx.Search("lord", Options{})
	if all.Total != 2 {
		t.Fatalf("unfiltered total = %d, want 2", all.Total)
	}

	apoc := idx.Search("lord", Options{Scope: canon.GroupApocrypha})
	if apoc.Total != 1 || apoc.Hits[0].BookID != "sirach" {
		t.Errorf("apocrypha scope: %+v", apoc.Hits)
	}

	can := idx.Search("lord", Options{Scope: canon.GroupCanon})
	if can.Total != 1 || can.Hits[0].BookID != "psalm" {
		t.Errorf("canon scope: %+v", can.Hits)
	}

	book := idx.Search("light", Options{BookFilter: "john"})
	if book.Total != 2 {
		t.Errorf("book filter total = %d, want 2", book.Total)
	}
	for _, h := range book.Hits {
		if h.BookID != "john" {
			t.Errorf("book filter leaked %q", h.BookID)
		}
	}
}

func TestSearchRankingDeterministic(t *testing.T) {
	idx := buildIndex(t)

	first := idx.Search("light", Options{})
	for i := 0; i < 5; i++ {
		again := idx.Search("light", Options{})
		if !reflect.DeepEqual(first.Hits, again.Hits) {
			t.Fatalf("run %d produced a different ordering", i)
		}
	}

	// Equal scores fall back to canonical order.
	for i := 1; i < len(first.Hits); i++ {
		prev, cur := first.Hits[i-1], first.Hits[i]
		if prev.Score == cur.Score && prev.ordKey > cur.ordKey {
			t.Errorf("tie at %d broken out of canonical order: %+v before %+v", i, prev, cur)
		}
		if prev.Score < cur.Score {
			t.Errorf("scores not descending at %d", i)
		}
	}
}

func TestSearchPaginationConsistency(t *testing.T) {
	idx := buildIndex(t)

	full := idx.Search("light", Options{Limit: 100})
	if full.Total != 4 {
		t.Fatalf("total = %d, want 4", full.Total)
	}

	// Walking pages of size 1 reproduces the full ordering exactly and
	// Total stays constant on every page.
	var walked []Hit
	for off := 0; off < full.Total; off++ {
		page := idx.Search("light", Options{Limit: 1, Offset: off})
		if page.Total != full.Total {
			t.Errorf("page at offset %d has total %d, want %d", off, page.Total, full.Total)
		}
		if len(page.Hits) != 1 {
			t.Fatalf("page at offset %d has %d hits", off, len(page.Hits))
		}
		walked = append(walked, page.Hits...)
	}
	if !reflect.DeepEqual(walked, full.Hits) {
		t.Errorf("paged walk diverged from full result:\n%v\n%v", hitRefs(walked), hitRefs(full.Hits))
	}

	// Past-the-end offset is an empty page, not an error.
	past := idx.Search("light", Options{Limit: 10, Offset: 100})
	if len(past.Hits) != 0 || past.Total != 4 {
		t.Errorf("past-the-end page: %+v", past)
	}
}

func TestSearchDefaults(t *testing.T) {
	idx := buildIndex(t)

	resp := idx.Search("light", Options{Limit: -3, Offset: -7})
	if resp.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", resp.Limit, DefaultLimit)
	}
	if resp.Offset != 0 {
		t.Errorf("Offset = %d, want 0", resp.Offset)
	}
}

func TestSearchCachedResultsMatch(t *testing.T) {
	idx := buildIndex(t)

	cold := idx.Search("god created", Options{})
	warm := idx.Search("god created", Options{})
	if !reflect.DeepEqual(cold.Hits, warm.Hits) || cold.Total != warm.Total {
		t.Error("cached query diverged from cold query")
	}

	// Different scopes must not share a cache slot.
	scoped := idx.Search("lord", Options{Scope: canon.GroupApocrypha})
	unscoped := idx.Search("lord", Options{})
	if scoped.Total == unscoped.Total {
		t.Error("scoped and unscoped queries returned the same set")
	}
}

func TestSnippetWindow(t *testing.T) {
	long := strings.Repeat("a", 50) + " shepherd " + strings.Repeat("b", 200)
	pos := strings.Index(long, "shepherd")

	s := snippet(long, pos)
	if !strings.Contains(s, "shepherd") {
		t.Fatalf("snippet lost the match: %q", s)
	}
	if !strings.HasSuffix(s, "…") {
		t.Errorf("snippet should be truncated on the right: %q", s)
	}
	if len(s) > 2*snippetRadius+len("……")+len("shepherd") {
		t.Errorf("snippet too long: %d bytes", len(s))
	}

	short := "short verse"
	if got := snippet(short, 0); got != short {
		t.Errorf("short text should pass through, got %q", got)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("For God so loved the world, that he gave...")
	want := []string{"for", "god", "so", "loved", "the", "world", "that", "he", "gave"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}
