package iter

// orIter is the Or compound of spec §4.4: at each step, ask every child
// for its first value >= nextStart and emit the minimum.
type orIter struct {
	children []ZgramIterator
}

type orState struct {
	streams   []*Streamer[ZgramRel]
	nextStart ZgramRel
}

func (o *orIter) TryReleaseOrChildren() ([]ZgramIterator, bool) {
	return o.children, true
}

func (o *orIter) CreateState(ctx *Context) interface{} {
	s := &orState{streams: make([]*Streamer[ZgramRel], len(o.children))}
	for i, c := range o.children {
		s.streams[i] = NewZgramStreamer(ctx, c)
	}
	return s
}

func (o *orIter) GetMore(ctx *Context, stI interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	s := stI.(*orState)
	if lowerBound > s.nextStart {
		s.nextStart = lowerBound
	}
	count := 0
	for count < len(out) {
		var min ZgramRel
		haveMin := false
		for _, st := range s.streams {
			v, ok := st.TryGetOrAdvance(s.nextStart)
			if ok && (!haveMin || v < min) {
				min = v
				haveMin = true
			}
		}
		if !haveMin {
			break
		}
		out[count] = min
		count++
		s.nextStart = min + 1
	}
	return count
}
