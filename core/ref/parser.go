package ref

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/asjames18/scripture-engine/core/canon"
)

// Tail grammars for the numeric portion of a reference, one per
// supported form. Each is tried in order, most specific first, so a
// verse range always beats the looser forms.
//
//nolint:govet // participle grammar tags are not standard struct tags
type rangeTail struct {
	Chapter int `parser:"@Int"`
	Verse   int `parser:"':' @Int"`
	End     int `parser:"'-' @Int"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type verseTail struct {
	Chapter int `parser:"@Int"`
	Verse   int `parser:"':' @Int"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterTail struct {
	Chapter int `parser:"@Int"`
}

// tailLexer tokenizes the numeric tail of a reference.
var tailLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	rangeParser   = participle.MustBuild[rangeTail](participle.Lexer(tailLexer), participle.Elide("Whitespace"))
	verseParser   = participle.MustBuild[verseTail](participle.Lexer(tailLexer), participle.Elide("Whitespace"))
	chapterParser = participle.MustBuild[chapterTail](participle.Lexer(tailLexer), participle.Elide("Whitespace"))
)

// tailRule is one grammar variant: a pure function from a normalized
// numeric tail to the chapter/verse parts of a Reference.
type tailRule struct {
	name  string
	parse func(tail string) (chapter, verse, end int, ok bool)
}

// tailRules is the ordered rule list. Order encodes precedence.
var tailRules = []tailRule{
	{
		name: "ChapterVerseRange",
		parse: func(tail string) (int, int, int, bool) {
			p, err := rangeParser.ParseString("", tail)
			if err != nil {
				return 0, 0, 0, false
			}
			return p.Chapter, p.Verse, p.End, true
		},
	},
	{
		name: "ChapterVerse",
		parse: func(tail string) (int, int, int, bool) {
			p, err := verseParser.ParseString("", tail)
			if err != nil {
				return 0, 0, 0, false
			}
			return p.Chapter, p.Verse, 0, true
		},
	},
	{
		name: "ChapterOnly",
		parse: func(tail string) (int, int, int, bool) {
			p, err := chapterParser.ParseString("", tail)
			if err != nil {
				return 0, 0, 0, false
			}
			return p.Chapter, 0, 0, true
		},
	},
}

// Parser parses free-form reference strings against a book resolver.
type Parser struct {
	resolver *canon.Resolver
}

// NewParser returns a parser bound to the given resolver.
func NewParser(r *canon.Resolver) *Parser {
	return &Parser{resolver: r}
}

// defaultParser parses against the built-in registry.
var defaultParser = &Parser{resolver: nil}

// Parse parses a reference string against the built-in book registry.
func Parse(input string) *Reference {
	return defaultParser.Parse(input)
}

// ParseMultiple parses a compound reference string against the built-in
// book registry.
func ParseMultiple(input string) ([]Reference, []string) {
	return defaultParser.ParseMultiple(input)
}

func (p *Parser) books() *canon.Resolver {
	if p.resolver != nil {
		return p.resolver
	}
	return canon.Default()
}

// Parse turns a free-form string into a Reference. The book portion is
// the longest left-hand prefix the resolver recognizes; the remaining
// tail is matched against the ordered grammar rules. Parse is total: it
// returns nil on any failure and never panics on malformed input.
func (p *Parser) Parse(input string) *Reference {
	fields := strings.Fields(normalizeInput(input))
	if len(fields) < 2 {
		return nil
	}

	resolver := p.books()

	// Longest resolvable prefix wins; the tail must keep at least one token.
	for n := len(fields) - 1; n >= 1; n-- {
		book, ok := resolver.Resolve(strings.Join(fields[:n], " "))
		if !ok {
			continue
		}
		tail := strings.Join(fields[n:], " ")
		for _, rule := range tailRules {
			chapter, verse, end, ok := rule.parse(tail)
			if !ok {
				continue
			}
			r := Reference{Book: book, Chapter: chapter, Verse: verse, EndVerse: end}
			if r.IsValid() {
				return &r
			}
		}
	}
	return nil
}

// ParseMultiple splits a compound string on commas and semicolons and
// parses each segment. It returns the parsed references in input order
// together with the segments that failed to parse, so callers can
// surface partial failures instead of silently dropping them.
func (p *Parser) ParseMultiple(input string) ([]Reference, []string) {
	var refs []Reference
	var failed []string

	for _, segment := range splitSegments(input) {
		if r := p.Parse(segment); r != nil {
			refs = append(refs, *r)
		} else {
			failed = append(failed, segment)
		}
	}
	return refs, failed
}

// normalizeInput collapses runs of whitespace and converts commas and
// semicolons to spaces.
func normalizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == ',' || r == ';' {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// splitSegments splits a compound reference string on commas and
// semicolons, dropping empty segments.
func splitSegments(s string) []string {
	raw := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, seg := range raw {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
