package iter

import "github.com/kosak/z2kplus-sub000/index"

// rankState is the shared state shape for iterators that walk the whole
// zgram or word universe in rank order, testing a per-offset predicate
// (PopOrNot, AnyWord, HavingReaction): a dense [0,n) cursor over the
// universe in ascending-rel order.
type rankState struct {
	rank int
}

// zgramRankGetMore drives rankState over the zgram universe, emitting
// the rel of every rank whose offset satisfies matches, until out fills
// or the universe is exhausted.
func zgramRankGetMore(ctx *Context, st interface{}, lowerBound ZgramRel, out []ZgramRel, matches func(off index.ZgramOff) bool) int {
	s := st.(*rankState)
	n := ctx.Index.NumZgrams()
	start := ctx.ZgramRankOf(lowerBound)
	if start > s.rank {
		s.rank = start
	}
	if s.rank < 0 {
		s.rank = 0
	}
	count := 0
	for s.rank < n && count < len(out) {
		off := ctx.ZgramOffOfRank(s.rank)
		if matches(off) {
			out[count] = ctx.ZgramRelOfRank(s.rank)
			count++
		}
		s.rank++
	}
	return count
}

// wordRankGetMore is zgramRankGetMore's word-table analog.
func wordRankGetMore(ctx *Context, st interface{}, lowerBound WordRel, out []WordRel, matches func(off index.WordOff) bool) int {
	s := st.(*rankState)
	n := ctx.Index.NumWords()
	start := ctx.WordRankOf(lowerBound)
	if start > s.rank {
		s.rank = start
	}
	if s.rank < 0 {
		s.rank = 0
	}
	count := 0
	for s.rank < n && count < len(out) {
		off := ctx.WordOffOfRank(s.rank)
		if matches(off) {
			out[count] = ctx.WordRelOfRank(s.rank)
			count++
		}
		s.rank++
	}
	return count
}
