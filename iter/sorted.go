package iter

import "sort"

// sortedWordState backs any WordIterator whose full match set is cheaper
// to materialize once (sorted ascending by rel) than to stream
// incrementally - Pattern's trie walk is the prototypical case, since a
// single trie traversal visits matches in transition-key order, not
// WordOff order (spec §4.4 "Buffer strategy ... Sort before return").
type sortedWordState struct {
	vals []WordRel
	pos  int
}

func (s *sortedWordState) getMore(lowerBound WordRel, out []WordRel) int {
	rest := s.vals[s.pos:]
	i := sort.Search(len(rest), func(i int) bool { return rest[i] >= lowerBound })
	s.pos += i
	count := 0
	for s.pos < len(s.vals) && count < len(out) {
		out[count] = s.vals[s.pos]
		count++
		s.pos++
	}
	return count
}

// sortedZgramState is sortedWordState's zgram-table analog (used by the
// ZgramId singleton iterator).
type sortedZgramState struct {
	vals []ZgramRel
	pos  int
}

func (s *sortedZgramState) getMore(lowerBound ZgramRel, out []ZgramRel) int {
	rest := s.vals[s.pos:]
	i := sort.Search(len(rest), func(i int) bool { return rest[i] >= lowerBound })
	s.pos += i
	count := 0
	for s.pos < len(s.vals) && count < len(out) {
		out[count] = s.vals[s.pos]
		count++
		s.pos++
	}
	return count
}
