package iter

// anchored is the Anchored primitive of spec §4.4: filters child's word
// hits to those that begin ("^") or end ("$") their field.
type anchored struct {
	child       WordIterator
	left, right bool
}

// NewAnchored builds the Anchored primitive. If left and right are both
// false it rewrites to child directly (a no-op anchor); if child is
// itself anchored, the anchor flags are merged into a single wrapper
// instead of nesting (spec §4.4 algebraic rewrites).
func NewAnchored(child WordIterator, left, right bool) WordIterator {
	if !left && !right {
		return child
	}
	if g, ok := child.(anchorChildGetter); ok {
		inner, il, ir := g.TryGetAnchorChild()
		return &anchored{child: inner, left: left || il, right: right || ir}
	}
	return &anchored{child: child, left: left, right: right}
}

func (a *anchored) TryGetAnchorChild() (WordIterator, bool, bool) {
	return a.child, a.left, a.right
}

type anchoredState struct {
	stream *Streamer[WordRel]
}

func (a *anchored) CreateState(ctx *Context) interface{} {
	return &anchoredState{stream: NewWordStreamer(ctx, a.child)}
}

func (a *anchored) GetMore(ctx *Context, stI interface{}, lowerBound WordRel, out []WordRel) int {
	s := stI.(*anchoredState)
	count := 0
	next := lowerBound
	for count < len(out) {
		v, ok := s.stream.TryGetOrAdvance(next)
		if !ok {
			break
		}
		next = v + 1
		off := ctx.WordOffOfRel(v)
		wi, ok2 := ctx.Index.GetWordInfo(off)
		if !ok2 {
			continue
		}
		zi, ok3 := ctx.Index.GetZgramInfo(wi.ZgramOffset)
		if !ok3 {
			continue
		}
		begin, end := zi.FieldBounds(wi.Tag)
		atStart := off == begin
		atEnd := off+1 == end
		if (!a.left || atStart) && (!a.right || atEnd) {
			out[count] = v
			count++
		}
	}
	return count
}
