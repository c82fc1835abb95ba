package corpus

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/errors"
	"github.com/asjames18/scripture-engine/internal/logging"
)

// Metadata describes the cached state of a built corpus.
type Metadata struct {
	TotalBooks  int       `json:"total_books"`
	TotalVerses int       `json:"total_verses"`
	Version     string    `json:"version"`  // blake3 hash of the corpus content
	BuildID     string    `json:"build_id"` // unique per build
	BuiltAt     time.Time `json:"built_at"`
}

// Store owns a lazily-built, process-lifetime corpus. The first LoadAll
// (or any lookup) triggers exactly one build; concurrent first callers
// block until the build finishes and then observe the same immutable
// corpus. There is no rebuild path short of constructing a new Store.
type Store struct {
	source Source

	once     sync.Once
	corpus   *Corpus
	resolver *canon.Resolver
	meta     Metadata
	err      error
}

// NewStore returns a store over the given source. Nothing is read until
// the first access.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// LoadAll builds the corpus on first call and returns the cached,
// canonically ordered books thereafter. The only error it can return is
// a fatal source failure, reported identically on every call.
func (s *Store) LoadAll() ([]*Book, error) {
	s.once.Do(s.build)
	if s.err != nil {
		return nil, s.err
	}
	return s.corpus.Books, nil
}

// Corpus returns the built corpus, triggering the build if needed.
func (s *Store) Corpus() (*Corpus, error) {
	s.once.Do(s.build)
	if s.err != nil {
		return nil, s.err
	}
	return s.corpus, nil
}

// Book returns a book by canonical ID, falling back to alias
// resolution. A build failure or unresolved name is a miss.
func (s *Store) Book(idOrAlias string) (*Book, bool) {
	s.once.Do(s.build)
	if s.err != nil {
		return nil, false
	}
	if b, ok := s.corpus.Book(idOrAlias); ok {
		return b, true
	}
	id, ok := s.resolver.Resolve(idOrAlias)
	if !ok {
		return nil, false
	}
	return s.corpus.Book(id)
}

// BooksByGroup returns the books of one group in canonical order.
func (s *Store) BooksByGroup(g canon.Group) []*Book {
	s.once.Do(s.build)
	if s.err != nil {
		return nil
	}
	var out []*Book
	for _, b := range s.corpus.Books {
		if b.Group == g {
			out = append(out, b)
		}
	}
	return out
}

// Chapter returns a book and its chapter by 1-based chapter number.
func (s *Store) Chapter(bookRef string, number int) (*Book, *Chapter, bool) {
	b, ok := s.Book(bookRef)
	if !ok {
		return nil, nil, false
	}
	c, ok := b.Chapter(number)
	if !ok {
		return nil, nil, false
	}
	return b, c, true
}

// Verse returns a book, chapter, and verse by their numbers.
func (s *Store) Verse(bookRef string, chapter, verse int) (*Book, *Chapter, *Verse, bool) {
	b, c, ok := s.Chapter(bookRef, chapter)
	if !ok {
		return nil, nil, nil, false
	}
	v, ok := c.Verse(verse)
	if !ok {
		return nil, nil, nil, false
	}
	return b, c, v, true
}

// Metadata returns the metadata of the built corpus.
func (s *Store) Metadata() (Metadata, error) {
	s.once.Do(s.build)
	if s.err != nil {
		return Metadata{}, s.err
	}
	return s.meta, nil
}

// Resolver returns the resolver covering every book the store loaded,
// including source books absent from the built-in registry.
func (s *Store) Resolver() *canon.Resolver {
	s.once.Do(s.build)
	if s.err != nil {
		return canon.Default()
	}
	return s.resolver
}

// build runs exactly once under the Store's sync.Once.
func (s *Store) build() {
	start := time.Now()

	books, err := s.source.Load()
	if err != nil {
		s.err = errors.Wrap(err, "corpus build failed")
		logging.Error("corpus_build_failed", "format", s.source.Format(), "error", err)
		return
	}
	if len(books) == 0 {
		s.err = errors.NewSource(s.source.Format(), "", "source yielded no books")
		return
	}

	if err := normalize(books); err != nil {
		s.err = err
		return
	}

	resolver, err := buildResolver(books)
	if err != nil {
		s.err = errors.Wrap(err, "corpus alias table")
		return
	}

	s.corpus = &Corpus{Books: books}
	s.resolver = resolver
	s.meta = buildMetadata(s.corpus)

	logging.CorpusBuild(s.source.Format(), s.meta.TotalBooks, s.meta.TotalVerses, time.Since(start))
}

// normalize enriches source books with registry metadata, validates
// uniqueness invariants, and sorts everything into canonical order.
func normalize(books []*Book) error {
	seen := make(map[string]bool, len(books))
	nextOrder := maxRegistryOrder() + 1

	for _, b := range books {
		if b.ID == "" {
			return errors.NewValidation("book.id", "empty book ID")
		}
		if seen[b.ID] {
			return errors.NewValidation("book.id", "duplicate book "+b.ID)
		}
		seen[b.ID] = true

		if meta, ok := canon.ByID(b.ID); ok {
			if b.Name == "" {
				b.Name = meta.Name
			}
			b.Group = meta.Group
			b.Order = meta.Order
			b.Aliases = append([]string(nil), meta.Aliases...)
		} else {
			// Unregistered books are admitted rather than dropped.
			if b.Name == "" {
				b.Name = b.ID
			}
			if !b.Group.IsValid() {
				b.Group = canon.GroupPseudepigrapha
			}
			b.Order = nextOrder
			nextOrder++
		}

		sort.Slice(b.Chapters, func(i, j int) bool {
			return b.Chapters[i].Number < b.Chapters[j].Number
		})
		for ci := range b.Chapters {
			ch := &b.Chapters[ci]
			if ch.Number < 1 {
				return errors.NewValidation("chapter", fmt.Sprintf("%s: chapter number %d", b.ID, ch.Number))
			}
			sort.Slice(ch.Verses, func(i, j int) bool {
				return ch.Verses[i].Number < ch.Verses[j].Number
			})
			verseSeen := make(map[int]bool, len(ch.Verses))
			for _, v := range ch.Verses {
				if v.Number < 1 {
					return errors.NewValidation("verse", fmt.Sprintf("%s %d: verse number %d", b.ID, ch.Number, v.Number))
				}
				if verseSeen[v.Number] {
					return errors.NewValidation("verse", fmt.Sprintf("%s %d:%d duplicated", b.ID, ch.Number, v.Number))
				}
				verseSeen[v.Number] = true
			}
		}
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].Order < books[j].Order
	})
	return nil
}

// buildResolver covers the loaded books, so lookups resolve aliases of
// unregistered books too.
func buildResolver(books []*Book) (*canon.Resolver, error) {
	metas := make([]canon.Book, len(books))
	for i, b := range books {
		metas[i] = canon.Book{
			ID:      b.ID,
			Name:    b.Name,
			Group:   b.Group,
			Order:   b.Order,
			Aliases: b.Aliases,
		}
	}
	return canon.NewResolver(metas)
}

// buildMetadata derives the cached metadata, including a content hash
// that is stable for identical text and distinct for any change.
func buildMetadata(c *Corpus) Metadata {
	h := blake3.New()
	verses := 0
	for _, b := range c.Books {
		h.Write([]byte(b.ID))
		for _, ch := range b.Chapters {
			h.Write([]byte(strconv.Itoa(ch.Number)))
			for _, v := range ch.Verses {
				h.Write([]byte(strconv.Itoa(v.Number)))
				h.Write([]byte(v.Text))
				verses++
			}
		}
	}
	return Metadata{
		TotalBooks:  len(c.Books),
		TotalVerses: verses,
		Version:     hex.EncodeToString(h.Sum(nil)),
		BuildID:     uuid.NewString(),
		BuiltAt:     time.Now().UTC(),
	}
}

func maxRegistryOrder() int {
	max := 0
	for _, b := range canon.Books() {
		if b.Order > max {
			max = b.Order
		}
	}
	return max
}
