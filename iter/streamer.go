package iter

import "sort"

// streamerCapacity is the fixed buffer size spec §4.4 assigns to
// ZgramStreamer/WordStreamer.
const streamerCapacity = 128

// probeThreshold is the number of buffered entries TryGetOrAdvance scans
// linearly before falling back to a binary search, per spec §4.4: "based
// on the expectation that lower bounds are usually very close."
const probeThreshold = 5

// relValue is the shared constraint for ZgramRel and WordRel: both are
// plain uint32-based coordinates ordered the usual way.
type relValue interface {
	~uint32
}

// Streamer interposes a fixed-size buffer in front of a child iterator's
// GetMore, implementing TryGetOrAdvance(lowerBound) by linear-probing
// forward in the buffer before falling back to a binary search (spec
// §4.4 "Streaming buffer"). It is the shared implementation behind
// ZgramStreamer and WordStreamer.
type Streamer[T relValue] struct {
	getMore   func(lowerBound T, out []T) int
	buf       []T
	pos       int
	exhausted bool
}

// NewStreamer wraps a raw GetMore-shaped function in buffering.
func NewStreamer[T relValue](getMore func(lowerBound T, out []T) int) *Streamer[T] {
	return &Streamer[T]{getMore: getMore}
}

// TryGetOrAdvance returns the smallest buffered (or freshly pulled)
// value >= lowerBound, or (zero, false) if the child is exhausted at
// that bound.
func (s *Streamer[T]) TryGetOrAdvance(lowerBound T) (T, bool) {
	for {
		probes := 0
		for s.pos < len(s.buf) && probes < probeThreshold {
			if s.buf[s.pos] >= lowerBound {
				return s.buf[s.pos], true
			}
			s.pos++
			probes++
		}
		if s.pos < len(s.buf) {
			rest := s.buf[s.pos:]
			i := sort.Search(len(rest), func(i int) bool { return rest[i] >= lowerBound })
			s.pos += i
			if s.pos < len(s.buf) {
				return s.buf[s.pos], true
			}
		}
		if s.exhausted {
			var zero T
			return zero, false
		}
		if cap(s.buf) < streamerCapacity {
			s.buf = make([]T, streamerCapacity)
		} else {
			s.buf = s.buf[:streamerCapacity]
		}
		n := s.getMore(lowerBound, s.buf)
		s.buf = s.buf[:n]
		s.pos = 0
		if n == 0 {
			s.exhausted = true
			var zero T
			return zero, false
		}
	}
}

// NewZgramStreamer buffers a ZgramIterator, creating its state once and
// threading it through every pull.
func NewZgramStreamer(ctx *Context, child ZgramIterator) *Streamer[ZgramRel] {
	state := child.CreateState(ctx)
	return NewStreamer[ZgramRel](func(lowerBound ZgramRel, out []ZgramRel) int {
		return child.GetMore(ctx, state, lowerBound, out)
	})
}

// NewWordStreamer is NewZgramStreamer's WordIterator analog.
func NewWordStreamer(ctx *Context, child WordIterator) *Streamer[WordRel] {
	state := child.CreateState(ctx)
	return NewStreamer[WordRel](func(lowerBound WordRel, out []WordRel) int {
		return child.GetMore(ctx, state, lowerBound, out)
	})
}
