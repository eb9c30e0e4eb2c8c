// Package trie implements a radix trie over Unicode scalar sequences,
// mapping each indexed word to a sorted, duplicate-preserving list of
// word-occurrence offsets (spec §4.2). Two representations share one
// traversal contract: DynamicNode (mutable, map-backed) for the live
// segment, and FrozenNode (read-only, relative-pointer blob-backed) for
// the checkpointed segment.
package trie

import "github.com/kosak/z2kplus-sub000/automaton"

// WordOff is a dense, sequential index into the word-info table (see
// package index). The trie stores these verbatim; it has no opinion on
// what they point to.
type WordOff uint32

// Node is the traversal contract shared by DynamicNode and FrozenNode.
// A node represents an edge (its Prefix) plus everything reachable below
// it: exact-match word offsets ending exactly at this node, and further
// transitions keyed by the scalar that follows the prefix.
type Node interface {
	// Prefix is the Unicode scalar sequence consumed when entering this
	// node from its parent.
	Prefix() []rune
	// WordsHere returns the word offsets for exact matches terminating at
	// this node, in insertion order. May contain duplicates.
	WordsHere() []WordOff
	// TransitionKeys returns the sorted, duplicate-free set of scalars
	// for which this node has an outgoing transition.
	TransitionKeys() []rune
	// Transition returns the child reached by key, or nil if none.
	Transition(key rune) Node
}

// Find performs exact lookup: walk n's prefix against probe; if probe is
// fully consumed exactly at a node boundary, return that node's word
// list; otherwise dispatch on the first residual scalar (spec §4.2).
func Find(n Node, probe []rune) ([]WordOff, bool) {
	prefix := n.Prefix()
	i := 0
	for i < len(prefix) {
		if i >= len(probe) || probe[i] != prefix[i] {
			return nil, false
		}
		i++
	}
	rest := probe[i:]
	if len(rest) == 0 {
		return n.WordsHere(), true
	}
	child := n.Transition(rest[0])
	if child == nil {
		return nil, false
	}
	return Find(child, rest)
}

// FindMatching drives dfa forward over n's subtree starting from start,
// invoking cb with the word-offset range of every accepting node with a
// non-empty local word list (spec §4.2). Children are visited in sorted
// transition-key order; a single AdvanceMulti call per node prunes the
// children whose key leads to DeadState. A child's Prefix begins with its
// transition key, so each surviving child is entered with this node's
// state and consumes the key again as part of its own prefix.
func FindMatching(n Node, dfa *automaton.DFA, start automaton.StateID, cb func([]WordOff)) {
	state := start
	for _, r := range n.Prefix() {
		if state == automaton.DeadState {
			return
		}
		state = dfa.Advance(state, r)
	}
	if state == automaton.DeadState {
		return
	}
	if dfa.State(state).Accepting {
		if words := n.WordsHere(); len(words) > 0 {
			cb(words)
		}
	}
	keys := n.TransitionKeys()
	if len(keys) == 0 {
		return
	}
	nextStates := dfa.AdvanceMulti(state, keys)
	for i, key := range keys {
		ns := nextStates[i]
		if ns == automaton.DeadState {
			continue
		}
		child := n.Transition(key)
		FindMatching(child, dfa, state, cb)
	}
}

// FindMatchingFast is FindMatching with one optimization applied: when the
// caller already knows (via automaton.ExtractLiteralPrefix combined with
// automaton.IsStrictLiteral) that the whole pattern is a plain, strict
// (all-Exact) literal with no wildcard at all, it degrades to a single
// Find call instead of driving the DFA rune by rune. litExact must never
// be true for a pattern containing a Loose character: Find is a plain
// case-sensitive lookup and does not fold case or fuzzy variants the way
// the DFA does, so passing litExact=true for a Loose pattern would silently
// drop matches. This is the trie-side half of the literal-prefix
// supplement described in SPEC_FULL.md; for a genuinely strict pattern it
// changes no output, only how cheaply a plain word lookup is served by a
// caller that only has a compiled DFA in hand.
func FindMatchingFast(n Node, litPrefix string, litExact bool, dfa *automaton.DFA, start automaton.StateID, cb func([]WordOff)) {
	if litExact {
		if words, ok := Find(n, []rune(litPrefix)); ok && len(words) > 0 {
			cb(words)
		}
		return
	}
	FindMatching(n, dfa, start, cb)
}
