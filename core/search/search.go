// Package search implements full-text search over a built corpus: an
// in-memory inverted index with relevance ranking and deterministic
// pagination.
package search

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/corpus"
	"github.com/asjames18/scripture-engine/internal/cache"
	"github.com/asjames18/scripture-engine/internal/logging"
)

// DefaultLimit is the page size used when Options.Limit is unset.
const DefaultLimit = 25

// snippetRadius is the number of bytes kept on each side of the first
// match when building a hit snippet.
const snippetRadius = 60

// queryCacheSize bounds the per-index LRU of query results.
const queryCacheSize = 256

// Options scopes and paginates a query.
type Options struct {
	// Scope restricts matching to one corpus group; empty means all.
	Scope canon.Group

	// BookFilter restricts matching to one canonical book ID.
	BookFilter string

	// Limit and Offset slice the ranked result set.
	Limit  int
	Offset int
}

// Hit is one ranked match. Ephemeral, produced per query.
type Hit struct {
	BookID   string  `json:"book_id"`
	Chapter  int     `json:"chapter"`
	Verse    int     `json:"verse"`
	Snippet  string  `json:"snippet"`
	MatchPos int     `json:"match_pos"` // byte offset of the first match within the verse text
	Score    float64 `json:"score"`

	// ordKey encodes canonical order (book, chapter, verse) for
	// deterministic tie-breaking.
	ordKey int
}

// Response is a ranked, paginated result page. Total counts the full
// filtered match set before slicing.
type Response struct {
	Hits   []Hit `json:"hits"`
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// indexedVerse is one corpus verse flattened into the index, carrying
// what ranking and filtering need.
type indexedVerse struct {
	bookID  string
	group   canon.Group
	order   int
	chapter int
	verse   int
	text    string
	lower   string
}

// posting records one verse's occurrences of a term.
type posting struct {
	entry     int
	positions []int // token positions within the verse
}

// Index is an immutable inverted index over a corpus. Reads are
// lock-free; the query cache is internally synchronized.
type Index struct {
	entries []indexedVerse
	terms   map[string][]posting
	results *cache.LRU[string, *Response]
}

// Build constructs an index from the store's corpus. Rebuilding after a
// corpus change means calling Build again; the old index stays valid
// for readers that hold it.
func Build(store *corpus.Store) (*Index, error) {
	books, err := store.LoadAll()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	idx := &Index{
		terms:   make(map[string][]posting),
		results: cache.NewLRU[string, *Response](queryCacheSize),
	}

	for _, b := range books {
		for _, ch := range b.Chapters {
			for _, v := range ch.Verses {
				entry := len(idx.entries)
				idx.entries = append(idx.entries, indexedVerse{
					bookID:  b.ID,
					group:   b.Group,
					order:   b.Order,
					chapter: ch.Number,
					verse:   v.Number,
					text:    v.Text,
					lower:   strings.ToLower(v.Text),
				})

				for pos, tok := range tokenize(v.Text) {
					plist := idx.terms[tok]
					if n := len(plist); n > 0 && plist[n-1].entry == entry {
						plist[n-1].positions = append(plist[n-1].positions, pos)
					} else {
						plist = append(plist, posting{entry: entry, positions: []int{pos}})
					}
					idx.terms[tok] = plist
				}
			}
		}
	}

	logging.IndexBuild(len(idx.terms), len(idx.entries), time.Since(start))
	return idx, nil
}

// Search runs a query. Matching is case-insensitive: whole tokens via
// the inverted index, with a substring fallback so punctuation-laden or
// partial-word queries still find text. Results are ordered by score
// descending, ties broken by canonical order, so pagination is
// reproducible.
func (idx *Index) Search(query string, opts Options) *Response {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	key := cacheKey(query, opts.Scope, opts.BookFilter)
	full, cached := idx.results.Get(key)
	if !cached {
		full = idx.rank(query, opts)
		idx.results.Put(key, full)
	}

	page := paginate(full.Hits, offset, limit)
	logging.SearchQuery(query, full.Total, len(page), cached)
	return &Response{
		Hits:   page,
		Total:  full.Total,
		Limit:  limit,
		Offset: offset,
	}
}

// rank computes the complete ranked hit list for a query and scope.
// Scope filtering happens before ranking so Total reflects the
// filtered set.
func (idx *Index) rank(query string, opts Options) *Response {
	tokens := tokenize(query)

	var hits []Hit
	if len(tokens) > 0 {
		hits = idx.rankTokens(tokens, opts)
	}
	if len(hits) == 0 {
		hits = idx.rankSubstring(query, opts)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ordKey < hits[j].ordKey
	})

	return &Response{Hits: hits, Total: len(hits)}
}

// rankTokens requires every query token to occur in a verse and scores
// by term frequency plus a bonus for matches near the verse start.
func (idx *Index) rankTokens(tokens []string, opts Options) []Hit {
	// Gather per-entry stats for the first token, then intersect.
	type stat struct {
		freq     int
		firstPos int
	}
	acc := make(map[int]*stat)

	for i, tok := range tokens {
		plist, ok := idx.terms[tok]
		if !ok {
			return nil
		}
		next := make(map[int]*stat, len(plist))
		for _, p := range plist {
			if i > 0 {
				prev, ok := acc[p.entry]
				if !ok {
					continue
				}
				next[p.entry] = &stat{
					freq:     prev.freq + len(p.positions),
					firstPos: min(prev.firstPos, p.positions[0]),
				}
			} else {
				next[p.entry] = &stat{freq: len(p.positions), firstPos: p.positions[0]}
			}
		}
		acc = next
		if len(acc) == 0 {
			return nil
		}
	}

	var hits []Hit
	for entry, st := range acc {
		ev := idx.entries[entry]
		if !idx.inScope(ev, opts) {
			continue
		}
		matchPos := strings.Index(ev.lower, tokens[0])
		if matchPos < 0 {
			matchPos = 0
		}
		score := float64(st.freq) + 1.0/float64(1+st.firstPos)
		hits = append(hits, Hit{
			BookID:   ev.bookID,
			Chapter:  ev.chapter,
			Verse:    ev.verse,
			Snippet:  snippet(ev.text, matchPos),
			MatchPos: matchPos,
			Score:    score,
			ordKey:   ordKey(ev),
		})
	}
	return hits
}

// rankSubstring scans verse text for a raw, case-insensitive substring.
func (idx *Index) rankSubstring(query string, opts Options) []Hit {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	var hits []Hit
	for _, ev := range idx.entries {
		if !idx.inScope(ev, opts) {
			continue
		}
		pos := strings.Index(ev.lower, needle)
		if pos < 0 {
			continue
		}
		score := float64(strings.Count(ev.lower, needle)) + 1.0/float64(1+pos)
		hits = append(hits, Hit{
			BookID:   ev.bookID,
			Chapter:  ev.chapter,
			Verse:    ev.verse,
			Snippet:  snippet(ev.text, pos),
			MatchPos: pos,
			Score:    score,
			ordKey:   ordKey(ev),
		})
	}
	return hits
}

func (idx *Index) inScope(ev indexedVerse, opts Options) bool {
	if opts.Scope != "" && ev.group != opts.Scope {
		return false
	}
	if opts.BookFilter != "" && ev.bookID != opts.BookFilter {
		return false
	}
	return true
}

// ordKey encodes canonical order (book order, chapter, verse) into a
// single comparable key.
func ordKey(ev indexedVerse) int {
	return ev.order*1_000_000 + ev.chapter*1_000 + ev.verse
}

func paginate(hits []Hit, offset, limit int) []Hit {
	if offset >= len(hits) {
		return nil
	}
	end := offset + limit
	if end > len(hits) {
		end = len(hits)
	}
	page := make([]Hit, end-offset)
	copy(page, hits[offset:end])
	return page
}

// snippet trims verse text to a window around the match position.
func snippet(text string, pos int) string {
	if len(text) <= 2*snippetRadius {
		return text
	}
	start := pos - snippetRadius
	if start < 0 {
		start = 0
	}
	end := pos + snippetRadius
	if end > len(text) {
		end = len(text)
	}
	// Snap to rune boundaries.
	for start > 0 && !isRuneStart(text[start]) {
		start--
	}
	for end < len(text) && !isRuneStart(text[end]) {
		end++
	}

	out := text[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out = out + "…"
	}
	return out
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// tokenize lowercases text and splits it into letter/digit runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func cacheKey(query string, scope canon.Group, book string) string {
	return fmt.Sprintf("%s|%s|%s", strings.ToLower(strings.TrimSpace(query)), scope, book)
}
