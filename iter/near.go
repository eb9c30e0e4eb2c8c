package iter

import (
	"sort"

	"github.com/kosak/z2kplus-sub000/index"
)

// nearIter is the Near compound of spec §4.4: matches when all children
// occur in the same zgram, the same field, in the given order, with each
// consecutive pair within margin word positions.
//
// Rather than the spec's cursor-sweep-and-realign algorithm (an
// implementation detail for doing this without materializing a child's
// full match set), this CreateState fully materializes each child's
// match set once, sorted ascending by absolute WordOff - which is
// direction-independent, since textual adjacency is a property of the
// corpus, not of query direction - and GetMore does a per-field,
// per-zgram range lookup with a greedy smallest-next-position walk.
// Equivalent result set, simpler to implement correctly for an arbitrary
// child count.
type nearIter struct {
	margin   int
	children []WordIterator
}

// NewNear builds the Near compound. An empty child list rewrites to
// Everything(); a singleton rewrites to WordAdaptor(child) (spec §4.4).
func NewNear(margin int, children ...WordIterator) ZgramIterator {
	switch len(children) {
	case 0:
		return Everything()
	case 1:
		return NewWordAdaptor(children[0])
	default:
		return &nearIter{margin: margin, children: children}
	}
}

type nearState struct {
	perChild []sortedOffs
}

type sortedOffs struct {
	offs []index.WordOff
}

func materializeWordIterator(ctx *Context, it WordIterator) []index.WordOff {
	state := it.CreateState(ctx)
	var offs []index.WordOff
	buf := make([]WordRel, 128)
	var next WordRel
	for {
		n := it.GetMore(ctx, state, next, buf)
		if n == 0 {
			break
		}
		for i := 0; i < n; i++ {
			offs = append(offs, ctx.WordOffOfRel(buf[i]))
		}
		next = buf[n-1] + 1
	}
	sort.Slice(offs, func(i, j int) bool { return offs[i] < offs[j] })
	return offs
}

func (ni *nearIter) CreateState(ctx *Context) interface{} {
	s := &nearState{perChild: make([]sortedOffs, len(ni.children))}
	for i, c := range ni.children {
		s.perChild[i] = sortedOffs{offs: materializeWordIterator(ctx, c)}
	}
	return s
}

// rangeOf returns the slice of offs lying in [begin,end).
func rangeOf(offs []index.WordOff, begin, end index.WordOff) []index.WordOff {
	lo := sort.Search(len(offs), func(i int) bool { return offs[i] >= begin })
	hi := sort.Search(len(offs), func(i int) bool { return offs[i] >= end })
	if hi < lo {
		hi = lo
	}
	return offs[lo:hi]
}

// firstGreaterWithinMargin returns the smallest value in the (sorted)
// slice l that is strictly greater than cur and within margin of it, if
// any.
func firstGreaterWithinMargin(l []index.WordOff, cur index.WordOff, margin int) (index.WordOff, bool) {
	idx := sort.Search(len(l), func(i int) bool { return l[i] > cur })
	if idx == len(l) {
		return 0, false
	}
	if int(l[idx]-cur) <= margin {
		return l[idx], true
	}
	return 0, false
}

func (ni *nearIter) matchesField(s *nearState, begin, end index.WordOff) bool {
	lists := make([][]index.WordOff, len(s.perChild))
	for i, pc := range s.perChild {
		lists[i] = rangeOf(pc.offs, begin, end)
		if len(lists[i]) == 0 {
			return false
		}
	}
	for _, p0 := range lists[0] {
		cur := p0
		ok := true
		for i := 1; i < len(lists); i++ {
			next, found := firstGreaterWithinMargin(lists[i], cur, ni.margin)
			if !found {
				ok = false
				break
			}
			cur = next
		}
		if ok {
			return true
		}
	}
	return false
}

func (ni *nearIter) GetMore(ctx *Context, stI interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	s := stI.(*nearState)
	n := ctx.Index.NumZgrams()
	count := 0
	rank := ctx.ZgramRankOf(lowerBound)
	if rank < 0 {
		rank = 0
	}
	for rank < n && count < len(out) {
		off := ctx.ZgramOffOfRank(rank)
		zi, ok := ctx.Index.GetZgramInfo(off)
		if ok {
			matched := false
			for t := index.FieldTag(0); int(t) < 4; t++ {
				begin, end := zi.FieldBounds(t)
				if begin == end {
					continue
				}
				if ni.matchesField(s, begin, end) {
					matched = true
					break
				}
			}
			if matched {
				out[count] = ctx.ZgramRelOfRank(rank)
				count++
			}
		}
		rank++
	}
	return count
}
