package iter

import "github.com/kosak/z2kplus-sub000/index"

// ZgramIterator is the contract every zgram-producing iterator in the
// algebra implements (spec §4.4): CreateState returns a fresh per-run
// state object, and GetMore fills out with strictly increasing ZgramRel
// values >= max(the state's own cursor, lowerBound), returning the count
// written (0 means exhausted). State is an opaque interface{} that each
// concrete iterator type-asserts back to its own private state struct.
type ZgramIterator interface {
	CreateState(ctx *Context) interface{}
	GetMore(ctx *Context, state interface{}, lowerBound ZgramRel, out []ZgramRel) int
}

// WordIterator is ZgramIterator's word-table analog.
type WordIterator interface {
	CreateState(ctx *Context) interface{}
	GetMore(ctx *Context, state interface{}, lowerBound WordRel, out []WordRel) int
}

// The following optional interfaces let the factory functions in
// factory.go inspect a child's algebraic properties before constructing
// a parent, per spec §4.4's "Implementations may also declare algebraic
// properties" and §9's "Dynamic dispatch over iterator types ...
// Algebraic rewrites are performed by factory functions that inspect
// child properties". An iterator that doesn't implement one of these
// simply reports "no opinion" via a failed type assertion.

// everythingIter is implemented by iterators that can report they match
// every zgram (used to drop them from And() and short-circuit Or()).
type everythingIter interface {
	MatchesEverything() bool
}

// nothingIter is everythingIter's dual.
type nothingIter interface {
	MatchesNothing() bool
}

// negator is implemented by an iterator that knows its own negation
// without needing to be wrapped in Not (used to collapse Not(Not(x))).
type negator interface {
	TryNegate() (ZgramIterator, bool)
}

// andReleaser is implemented by And so NewAnd can flatten nested Ands.
type andReleaser interface {
	TryReleaseAndChildren() ([]ZgramIterator, bool)
}

// orReleaser is Or's analog.
type orReleaser interface {
	TryReleaseOrChildren() ([]ZgramIterator, bool)
}

// anchorChildGetter is implemented by Anchored so NewAnchored can merge
// nested anchors instead of double-wrapping.
type anchorChildGetter interface {
	TryGetAnchorChild() (child WordIterator, left, right bool)
}

// anyWordMatcher is implemented by AnyWord so NewWordAdaptor can rewrite
// WordAdaptor(AnyWord(m)) into PopOrNot(m, none).
type anyWordMatcher interface {
	MatchesAnyWord() (mask index.FieldMask, ok bool)
}

func matchesEverything(it ZgramIterator) bool {
	e, ok := it.(everythingIter)
	return ok && e.MatchesEverything()
}

func matchesNothing(it ZgramIterator) bool {
	n, ok := it.(nothingIter)
	return ok && n.MatchesNothing()
}
