package iter

// andIter is the And compound of spec §4.4: a leapfrog round-robin merge
// over its children's streams - ask each child for its first value >=
// nextStart; any child reporting a larger value bumps nextStart and
// restarts the round; agreement from every child emits nextStart and
// advances by one.
type andIter struct {
	children []ZgramIterator
}

type andState struct {
	streams   []*Streamer[ZgramRel]
	nextStart ZgramRel
}

func (a *andIter) TryReleaseAndChildren() ([]ZgramIterator, bool) {
	return a.children, true
}

func (a *andIter) CreateState(ctx *Context) interface{} {
	s := &andState{streams: make([]*Streamer[ZgramRel], len(a.children))}
	for i, c := range a.children {
		s.streams[i] = NewZgramStreamer(ctx, c)
	}
	return s
}

func (a *andIter) GetMore(ctx *Context, stI interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	s := stI.(*andState)
	if len(s.streams) == 0 {
		return 0
	}
	if lowerBound > s.nextStart {
		s.nextStart = lowerBound
	}
	count := 0
outer:
	for count < len(out) {
		agree := 0
		for _, st := range s.streams {
			v, ok := st.TryGetOrAdvance(s.nextStart)
			if !ok {
				break outer
			}
			if v == s.nextStart {
				agree++
				continue
			}
			s.nextStart = v
			continue outer
		}
		if agree == len(s.streams) {
			out[count] = s.nextStart
			count++
			s.nextStart++
		}
	}
	return count
}
