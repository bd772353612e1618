// Package keyword extracts normalized keyword sets from English and Bengali text.
package keyword

import "sort"

// TokenSet is an unordered set of normalized tokens.
type TokenSet map[string]struct{}

// NewTokenSet returns a set holding tokens, duplicates collapsed.
func NewTokenSet(tokens ...string) TokenSet {
	s := make(TokenSet, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// Len returns the number of distinct tokens.
func (s TokenSet) Len() int {
	return len(s)
}

// Contains reports whether token is in the set.
func (s TokenSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether s and other hold exactly the same tokens.
func (s TokenSet) Equal(other TokenSet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if _, ok := other[t]; !ok {
			return false
		}
	}
	return true
}
