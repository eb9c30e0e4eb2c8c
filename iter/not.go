package iter

// notIter is the Not compound of spec §4.4: walks every zgramRel in the
// universe, skipping those child emits.
type notIter struct {
	child ZgramIterator
}

type notState struct {
	stream *Streamer[ZgramRel]
	rank   int
}

func (n *notIter) TryNegate() (ZgramIterator, bool) { return n.child, true }

func (n *notIter) CreateState(ctx *Context) interface{} {
	return &notState{stream: NewZgramStreamer(ctx, n.child)}
}

func (n *notIter) GetMore(ctx *Context, stI interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	s := stI.(*notState)
	total := ctx.Index.NumZgrams()
	start := ctx.ZgramRankOf(lowerBound)
	if start > s.rank {
		s.rank = start
	}
	if s.rank < 0 {
		s.rank = 0
	}
	count := 0
	for s.rank < total && count < len(out) {
		rel := ctx.ZgramRelOfRank(s.rank)
		v, ok := s.stream.TryGetOrAdvance(rel)
		if !ok || v != rel {
			out[count] = rel
			count++
		}
		s.rank++
	}
	return count
}
