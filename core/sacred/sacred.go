// Package sacred implements the sacred-name text substitution applied
// to verse text at read time. Substitution is deterministic, longest
// match first, and preserves the casing pattern of the matched span.
package sacred

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mapping is one substitution rule. Case-insensitive rules adapt the
// replacement to the matched span's casing; case-sensitive rules match
// and replace verbatim.
type Mapping struct {
	Original      string `json:"original"`
	Sacred        string `json:"sacred"`
	CaseSensitive bool   `json:"case_sensitive"`
}

// defaultMappings is the built-in rule table: divine names, titles, and
// idiomatic phrases. Never mutated at runtime; multi-word phrases are
// listed alongside their constituent words and win by length at apply
// time.
var defaultMappings = []Mapping{
	// Tetragrammaton renderings. All-caps LORD is the English
	// convention for the divine name and is replaced verbatim.
	{Original: "LORD", Sacred: "YAHUAH", CaseSensitive: true},
	{Original: "Jehovah", Sacred: "Yahuah", CaseSensitive: false},

	// Phrases before words.
	{Original: "Jesus Christ", Sacred: "Yeshua Messiah", CaseSensitive: false},
	{Original: "Christ Jesus", Sacred: "Messiah Yeshua", CaseSensitive: false},
	{Original: "Holy Spirit", Sacred: "Ruach HaKodesh", CaseSensitive: false},
	{Original: "Holy Ghost", Sacred: "Ruach HaKodesh", CaseSensitive: false},
	{Original: "praise the Lord", Sacred: "praise Yah", CaseSensitive: false},

	// Names and titles.
	{Original: "Jesus", Sacred: "Yeshua", CaseSensitive: false},
	{Original: "Christ", Sacred: "Messiah", CaseSensitive: false},
	{Original: "God", Sacred: "Elohim", CaseSensitive: false},
	{Original: "Lord", Sacred: "Adonai", CaseSensitive: false},
	{Original: "hallelujah", Sacred: "HalleluYah", CaseSensitive: false},
}

// DefaultMappings returns a copy of the built-in rule table.
func DefaultMappings() []Mapping {
	out := make([]Mapping, len(defaultMappings))
	copy(out, defaultMappings)
	return out
}

// AddMappings returns a new table holding the default rules plus extra.
// The default table is never mutated.
func AddMappings(extra []Mapping) []Mapping {
	out := DefaultMappings()
	return append(out, extra...)
}

// Transformer applies a fixed rule table. A Transformer is immutable
// and safe for concurrent use.
type Transformer struct {
	rules []Mapping
}

// NewTransformer returns a transformer bound to the given table; nil
// binds the default table. Rules are ordered longest original first so
// phrases beat their constituent words; on equal length, case-sensitive
// rules win.
func NewTransformer(mappings []Mapping) *Transformer {
	if mappings == nil {
		mappings = defaultMappings
	}
	rules := make([]Mapping, len(mappings))
	copy(rules, mappings)
	sort.SliceStable(rules, func(i, j int) bool {
		if len(rules[i].Original) != len(rules[j].Original) {
			return len(rules[i].Original) > len(rules[j].Original)
		}
		return rules[i].CaseSensitive && !rules[j].CaseSensitive
	})
	return &Transformer{rules: rules}
}

var defaultTransformer = NewTransformer(nil)

// Apply rewrites text with the default rule table.
func Apply(text string) string {
	return defaultTransformer.Apply(text)
}

// ApplyMappings rewrites text with a specific rule table.
func ApplyMappings(text string, mappings []Mapping) string {
	return NewTransformer(mappings).Apply(text)
}

// Apply rewrites the text. Matching is word-bounded: a rule never fires
// inside a larger word. Empty input is returned unchanged.
func (t *Transformer) Apply(text string) string {
	if text == "" {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	i := 0
	for i < len(text) {
		matched := false
		for _, rule := range t.rules {
			n := len(rule.Original)
			if i+n > len(text) {
				continue
			}
			span := text[i : i+n]
			if rule.CaseSensitive {
				if span != rule.Original {
					continue
				}
			} else if !strings.EqualFold(span, rule.Original) {
				continue
			}
			if !boundedAt(text, i, i+n) {
				continue
			}

			if rule.CaseSensitive {
				sb.WriteString(rule.Sacred)
			} else {
				sb.WriteString(matchCase(span, rule.Sacred))
			}
			i += n
			matched = true
			break
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(text[i:])
			sb.WriteString(text[i : i+size])
			i += size
		}
	}
	return sb.String()
}

// boundedAt reports whether text[start:end] sits on word boundaries:
// the bytes just outside the span must not be letters.
func boundedAt(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// matchCase adapts the replacement to the casing pattern of the
// matched span: all-upper, all-lower, or capitalized-first. Any other
// mixed casing falls back to the replacement's own declared casing.
func matchCase(span, replacement string) string {
	letters := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, span)
	if letters == "" {
		return replacement
	}

	switch {
	case letters == strings.ToUpper(letters) && letters != strings.ToLower(letters):
		return strings.ToUpper(replacement)
	case letters == strings.ToLower(letters):
		return strings.ToLower(replacement)
	case isCapitalized(letters):
		return capitalize(replacement)
	default:
		return replacement
	}
}

// isCapitalized reports an upper first letter followed only by lowercase.
func isCapitalized(letters string) bool {
	for i, r := range letters {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
		} else if !unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	lower := strings.ToLower(s)
	r, size := utf8.DecodeRuneInString(lower)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + lower[size:]
}
