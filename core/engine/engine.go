// Package engine bundles the reference parser, corpus store, search
// index, and sacred-name transformer behind one narrow surface for the
// CLI and embedding callers.
package engine

import (
	"strings"
	"sync"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/corpus"
	"github.com/asjames18/scripture-engine/core/ref"
	"github.com/asjames18/scripture-engine/core/sacred"
	"github.com/asjames18/scripture-engine/core/search"
	"github.com/asjames18/scripture-engine/internal/sources/jsonfile"
)

// Engine owns one corpus and the read components built over it.
// All methods are safe for concurrent use.
type Engine struct {
	store       *corpus.Store
	parser      *ref.Parser
	transformer *sacred.Transformer

	indexOnce sync.Once
	index     *search.Index
	indexErr  error
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	source   corpus.Source
	mappings []sacred.Mapping
}

// WithSource sets the corpus source. The default is the embedded
// sampler corpus.
func WithSource(src corpus.Source) Option {
	return func(c *config) { c.source = src }
}

// WithSacredMappings sets the sacred-name rule table. The default is
// the built-in table.
func WithSacredMappings(mappings []sacred.Mapping) Option {
	return func(c *config) { c.mappings = mappings }
}

// New creates an engine. Nothing is loaded until first use.
func New(opts ...Option) *Engine {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.source == nil {
		cfg.source = jsonfile.Sample()
	}

	store := corpus.NewStore(cfg.source)
	return &Engine{
		store:       store,
		parser:      ref.NewParser(nil),
		transformer: sacred.NewTransformer(cfg.mappings),
	}
}

// ParseReference parses a free-form reference string. Returns nil when
// the input does not parse.
func (e *Engine) ParseReference(input string) *ref.Reference {
	return e.parser.Parse(input)
}

// ParseReferences parses a compound reference string, returning parsed
// references and the segments that failed.
func (e *Engine) ParseReferences(input string) ([]ref.Reference, []string) {
	return e.parser.ParseMultiple(input)
}

// FormatReference returns the canonical string form of a reference.
func (e *Engine) FormatReference(r ref.Reference) string {
	return ref.Format(r)
}

// LoadCorpus builds (first call) or returns the cached corpus.
func (e *Engine) LoadCorpus() ([]*corpus.Book, error) {
	return e.store.LoadAll()
}

// Book returns a book by ID, name, or alias.
func (e *Engine) Book(idOrAlias string) (*corpus.Book, bool) {
	return e.store.Book(idOrAlias)
}

// BooksByGroup returns the books of one group in canonical order.
func (e *Engine) BooksByGroup(g canon.Group) []*corpus.Book {
	return e.store.BooksByGroup(g)
}

// Chapter returns a book and chapter by 1-based chapter number.
func (e *Engine) Chapter(bookRef string, number int) (*corpus.Book, *corpus.Chapter, bool) {
	return e.store.Chapter(bookRef, number)
}

// Verse returns a book, chapter, and verse.
func (e *Engine) Verse(bookRef string, chapter, verse int) (*corpus.Book, *corpus.Chapter, *corpus.Verse, bool) {
	return e.store.Verse(bookRef, chapter, verse)
}

// CorpusMetadata returns metadata for the cached corpus.
func (e *Engine) CorpusMetadata() (corpus.Metadata, error) {
	return e.store.Metadata()
}

// VersesFor resolves a parsed reference to its verses: the whole
// chapter for chapter-only references, a single verse, or the verses
// of a range that exist in the chapter.
func (e *Engine) VersesFor(r ref.Reference) (*corpus.Book, []corpus.Verse, bool) {
	if !r.IsValid() {
		return nil, nil, false
	}
	book, chapter, ok := e.store.Chapter(r.Book, r.Chapter)
	if !ok {
		return nil, nil, false
	}

	if r.Verse == 0 {
		out := make([]corpus.Verse, len(chapter.Verses))
		copy(out, chapter.Verses)
		return book, out, true
	}

	end := r.EndVerse
	if end == 0 {
		end = r.Verse
	}
	var out []corpus.Verse
	for _, v := range chapter.Verses {
		if v.Number >= r.Verse && v.Number <= end {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, nil, false
	}
	return book, out, true
}

// PassageText resolves a reference and joins its verse text, with
// sacred-name substitution applied when requested.
func (e *Engine) PassageText(r ref.Reference, applySacred bool) (string, bool) {
	_, verses, ok := e.VersesFor(r)
	if !ok {
		return "", false
	}
	parts := make([]string, len(verses))
	for i, v := range verses {
		parts[i] = v.Text
	}
	text := strings.Join(parts, " ")
	if applySacred {
		text = e.transformer.Apply(text)
	}
	return text, true
}

// Search runs a query over the corpus, building the index on first use.
func (e *Engine) Search(query string, opts search.Options) (*search.Response, error) {
	e.indexOnce.Do(func() {
		e.index, e.indexErr = search.Build(e.store)
	})
	if e.indexErr != nil {
		return nil, e.indexErr
	}
	return e.index.Search(query, opts), nil
}

// ApplySacredNames rewrites text with the engine's rule table.
func (e *Engine) ApplySacredNames(text string) string {
	return e.transformer.Apply(text)
}

// SacredNameMappings returns a copy of the default rule table.
func (e *Engine) SacredNameMappings() []sacred.Mapping {
	return sacred.DefaultMappings()
}

// AddSacredNameMappings returns a new table of the default rules plus
// extra, leaving the default untouched.
func (e *Engine) AddSacredNameMappings(extra []sacred.Mapping) []sacred.Mapping {
	return sacred.AddMappings(extra)
}
