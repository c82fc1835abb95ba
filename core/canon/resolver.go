package canon

import (
	"strings"
	"sync"

	"github.com/asjames18/scripture-engine/core/errors"
)

// Resolver maps any recognized spelling or abbreviation of a book name
// to its canonical book ID. Resolution is case-insensitive and
// whitespace-normalized; there is no fuzzy matching. A Resolver is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	// direct holds id and display-name keys, preferred over aliases.
	direct map[string]string
	// aliases is the fallback alias table.
	aliases map[string]string
}

// NewResolver builds a resolver over the given books. It fails when an
// alias collides with another book's ID, name, or alias, since a
// colliding table would make resolution nondeterministic.
func NewResolver(books []Book) (*Resolver, error) {
	r := &Resolver{
		direct:  make(map[string]string),
		aliases: make(map[string]string),
	}

	for _, b := range books {
		for _, key := range []string{Normalize(b.ID), Normalize(b.Name)} {
			if owner, ok := r.direct[key]; ok && owner != b.ID {
				return nil, errors.NewValidation("book", "duplicate key "+key)
			}
			r.direct[key] = b.ID
		}
	}

	for _, b := range books {
		for _, a := range b.Aliases {
			key := Normalize(a)
			if owner, ok := r.direct[key]; ok && owner != b.ID {
				return nil, errors.NewValidation("alias", a+" collides with book "+owner)
			}
			if owner, ok := r.aliases[key]; ok && owner != b.ID {
				return nil, errors.NewValidation("alias", a+" claimed by both "+owner+" and "+b.ID)
			}
			r.aliases[key] = b.ID
		}
	}

	return r, nil
}

// Resolve returns the canonical book ID for a candidate string.
// Exact ID/name matches win over alias matches. An unresolved string is
// a miss, not an error.
func (r *Resolver) Resolve(candidate string) (string, bool) {
	key := Normalize(candidate)
	if key == "" {
		return "", false
	}
	if id, ok := r.direct[key]; ok {
		return id, true
	}
	if id, ok := r.aliases[key]; ok {
		return id, true
	}
	return "", false
}

// Normalize lowercases a candidate and collapses runs of whitespace to
// single spaces. Periods are stripped so abbreviations like "Gen." and
// "1 Jn." resolve.
func Normalize(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, ".", ""))
	return strings.Join(strings.Fields(s), " ")
}

var (
	defaultResolver     *Resolver
	defaultResolverOnce sync.Once
)

// Default returns the resolver over the built-in registry. The registry
// is validated at first use; a collision in the built-in table is a
// programming error and panics.
func Default() *Resolver {
	defaultResolverOnce.Do(func() {
		r, err := NewResolver(registry)
		if err != nil {
			panic("canon: invalid built-in registry: " + err.Error())
		}
		defaultResolver = r
	})
	return defaultResolver
}
