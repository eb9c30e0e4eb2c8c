package iter

import "github.com/kosak/z2kplus-sub000/index"

// wordAdaptor is the WordAdaptor primitive of spec §4.4: turns a stream
// of word positions into a stream of the owning zgrams, suppressing
// consecutive duplicates (a zgram's fields occupy a contiguous WordOff
// range, so repeat hits within one zgram arrive back to back in rel
// order in either direction).
type wordAdaptor struct {
	child WordIterator
}

// NewWordAdaptor builds the WordAdaptor primitive. If child reports it
// matches every word in some mask, this rewrites to
// PopOrNot(mask, none) per spec §4.4's algebraic rewrite list.
func NewWordAdaptor(child WordIterator) ZgramIterator {
	if aw, ok := child.(anyWordMatcher); ok {
		if mask, ok2 := aw.MatchesAnyWord(); ok2 {
			return NewPopOrNot(mask, index.MaskNone)
		}
	}
	return &wordAdaptor{child: child}
}

type waState struct {
	stream      *Streamer[WordRel]
	nextWordRel WordRel
	lastZgram   ZgramRel
	hasLast     bool
}

func (w *wordAdaptor) CreateState(ctx *Context) interface{} {
	return &waState{stream: NewWordStreamer(ctx, w.child)}
}

func (w *wordAdaptor) GetMore(ctx *Context, stI interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	s := stI.(*waState)
	count := 0
	for count < len(out) {
		wr, ok := s.stream.TryGetOrAdvance(s.nextWordRel)
		if !ok {
			break
		}
		s.nextWordRel = wr + 1
		off := ctx.WordOffOfRel(wr)
		wi, ok2 := ctx.Index.GetWordInfo(off)
		if !ok2 {
			continue
		}
		zrel := ctx.ZgramRelOf(wi.ZgramOffset)
		if zrel < lowerBound {
			continue
		}
		if s.hasLast && zrel == s.lastZgram {
			continue
		}
		s.lastZgram = zrel
		s.hasLast = true
		out[count] = zrel
		count++
	}
	return count
}
