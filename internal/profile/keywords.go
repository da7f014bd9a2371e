package profile

import "strings"

// KeywordSet is a deduplicated set of lowercase keywords that remembers
// insertion order. Downstream code picks the "first N" keywords for search
// queries, so the order keywords were discovered in has to stay stable.
type KeywordSet struct {
	order []string
	seen  map[string]struct{}
}

func NewKeywordSet(words ...string) *KeywordSet {
	s := &KeywordSet{seen: make(map[string]struct{})}
	for _, word := range words {
		s.Add(word)
	}
	return s
}

// Add inserts the keyword unless it is blank or already present.
func (s *KeywordSet) Add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}

	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}

	if _, ok := s.seen[word]; ok {
		return
	}

	s.seen[word] = struct{}{}
	s.order = append(s.order, word)
}

func (s *KeywordSet) Has(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

func (s *KeywordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Values returns the keywords in insertion order.
func (s *KeywordSet) Values() []string {
	if s == nil {
		return nil
	}
	values := make([]string, len(s.order))
	copy(values, s.order)
	return values
}

// First returns up to n keywords in insertion order.
func (s *KeywordSet) First(n int) []string {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.order) {
		n = len(s.order)
	}
	values := make([]string, n)
	copy(values, s.order[:n])
	return values
}

// Equal reports set equality regardless of insertion order.
func (s *KeywordSet) Equal(other *KeywordSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s == nil || other == nil {
		return true
	}
	for word := range s.seen {
		if _, ok := other.seen[word]; !ok {
			return false
		}
	}
	return true
}
