package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kosak/z2kplus-sub000/automaton/internal/sparse"
)

// StateID identifies a DFA state. DeadState is the distinguished "no
// match" state: Advance never returns it as a state to look up, but it is
// a valid Otherwise target meaning "fail".
type StateID uint32

// DeadState is returned by Advance/AdvanceMulti when no transition (not
// even an "otherwise") applies.
const DeadState StateID = 1<<32 - 1

// DefaultMaxStates bounds subset construction against pathological
// patterns; Compile returns ErrTooComplex past this.
const DefaultMaxStates = 1 << 16

// Transition is one concrete, labeled edge out of a DFA state.
type Transition struct {
	Label  rune
	Target StateID
}

// State is one node of a compiled DFA: a transition list sorted by label
// (binary-searched by Advance, walked in step with the sorted keys by
// AdvanceMulti), plus a default ("otherwise") target used when no label
// matches.
type State struct {
	Accepting   bool
	Transitions []Transition // sorted by Label, ascending
	Otherwise   StateID
}

// DFA is a minimized deterministic automaton over Unicode scalar values,
// compiled from a glob pattern-character sequence (spec §4.1).
type DFA struct {
	states []State
	start  StateID
}

// Start returns the DFA's start state.
func (d *DFA) Start() StateID { return d.start }

// NumStates returns the number of states after minimization.
func (d *DFA) NumStates() int { return len(d.states) }

// State returns state id's data. Panics if id is DeadState or out of range.
func (d *DFA) State(id StateID) State { return d.states[id] }

// Advance performs one step of DFA traversal: advance(state, scalar).
// Returns DeadState if neither a concrete label nor an otherwise edge
// applies.
func (d *DFA) Advance(s StateID, r rune) StateID {
	if s == DeadState {
		return DeadState
	}
	st := d.states[s]
	// transitions are sorted by label; binary search.
	lo, hi := 0, len(st.Transitions)
	for lo < hi {
		mid := (lo + hi) / 2
		if st.Transitions[mid].Label < r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(st.Transitions) && st.Transitions[lo].Label == r {
		return st.Transitions[lo].Target
	}
	return st.Otherwise
}

// AdvanceString composes per-scalar Advance calls over s, short-circuiting
// as soon as the state goes dead.
func (d *DFA) AdvanceString(start StateID, s string) StateID {
	cur := start
	for _, r := range s {
		if cur == DeadState {
			return DeadState
		}
		cur = d.Advance(cur, r)
	}
	return cur
}

// AdvanceMulti advances from state s independently over every scalar in
// sortedKeys (which must be sorted ascending and duplicate-free; the trie
// guarantees this for its transition keys), returning one target per key.
// It walks the state's transition list and sortedKeys in parallel in a
// single linear pass, which is the whole reason this method exists
// instead of calling Advance in a loop (spec §4.1: "required by trie
// traversal for efficiency").
func (d *DFA) AdvanceMulti(s StateID, sortedKeys []rune) []StateID {
	out := make([]StateID, len(sortedKeys))
	if s == DeadState {
		for i := range out {
			out[i] = DeadState
		}
		return out
	}
	st := d.states[s]
	ti := 0
	for ki, k := range sortedKeys {
		for ti < len(st.Transitions) && st.Transitions[ti].Label < k {
			ti++
		}
		if ti < len(st.Transitions) && st.Transitions[ti].Label == k {
			out[ki] = st.Transitions[ti].Target
		} else {
			out[ki] = st.Otherwise
		}
	}
	return out
}

// AcceptsEverything reports whether s is an accepting state whose only
// outgoing edge is an otherwise edge to itself (spec §4.1). Used by
// iterator-construction-time query simplification (Pattern -> AnyWord).
func (d *DFA) AcceptsEverything(s StateID) bool {
	if s == DeadState {
		return false
	}
	st := d.states[s]
	return st.Accepting && len(st.Transitions) == 0 && st.Otherwise == s
}

// Compile builds a minimized DFA for pat: linear NDFA construction,
// subset construction, then Moore-style partition-refinement
// minimization with self-loops canonicalized before comparison (spec
// §4.1 step 3, §9 "Cyclic graphs in DFA minimization").
func Compile(pat []PatternChar) (*DFA, error) {
	return CompileWithLimit(pat, DefaultMaxStates)
}

// CompileWithLimit is Compile with an explicit state-count ceiling.
func CompileWithLimit(pat []PatternChar, maxStates int) (*DFA, error) {
	nb := buildNDFA(pat)

	type subsetState struct {
		nodes []int // sorted, deduped, epsilon-closed
	}
	keyOf := func(nodes []int) string {
		var b strings.Builder
		for i, n := range nodes {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(n))
		}
		return b.String()
	}
	nodeCount := uint32(len(nb.nodes))
	normalize := func(nodes []int) []int {
		// Dedup via a sparse node-id set (same structure epsilonClosure uses
		// in nfa.go) before sorting for the canonical subset key: a node can
		// appear more than once in nodes (e.g. several NFA members
		// transitioning to the same target under the same label).
		seen := sparse.New(nodeCount)
		for _, n := range nodes {
			seen.Insert(uint32(n))
		}
		out := make([]int, 0, seen.Len())
		for _, v := range seen.Values() {
			out = append(out, int(v))
		}
		sort.Ints(out)
		return out
	}

	var built []subsetState
	index := map[string]int{}
	var worklist []int

	intern := func(nodes []int) int {
		nodes = normalize(nb.epsilonClosure(nodes))
		k := keyOf(nodes)
		if id, ok := index[k]; ok {
			return id
		}
		id := len(built)
		built = append(built, subsetState{nodes: nodes})
		index[k] = id
		worklist = append(worklist, id)
		return id
	}

	startID := intern([]int{0})

	// raw[i] holds the pre-minimization transitions for built[i], computed
	// per spec's "for each resulting state, enumerate the distinct
	// concrete transitions present in its NFA members and merge them"
	// rule.
	var raw []rawState

	for len(worklist) > 0 {
		if len(built) > maxStates {
			return nil, &CompileError{Pattern: pat, Err: ErrTooComplex}
		}
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for len(raw) <= id {
			raw = append(raw, rawState{})
		}
		set := built[id].nodes

		accepting := false
		labelSet := map[rune]bool{}
		for _, n := range set {
			if nb.isAccept(n) {
				accepting = true
				continue
			}
			node := nb.nodes[n]
			switch node.kind {
			case Exact:
				labelSet[node.char.Scalar] = true
			case Loose:
				base := node.char.Scalar
				labelSet[base] = true
				labelSet[toUpperRune(base)] = true
				for _, r := range FuzzyEquivalents(base) {
					labelSet[r] = true
				}
			}
		}
		labels := make([]rune, 0, len(labelSet))
		for r := range labelSet {
			labels = append(labels, r)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		targets := map[rune]int{}
		for _, lbl := range labels {
			var members []int
			for _, n := range set {
				if nb.isAccept(n) {
					continue
				}
				node := nb.nodes[n]
				switch node.kind {
				case Exact:
					if node.char.Scalar == lbl {
						members = append(members, node.next)
					}
				case Loose:
					if looseMatches(node.char.Scalar, lbl) {
						members = append(members, node.next)
					}
				case MatchOne:
					members = append(members, node.next)
				case MatchN:
					members = append(members, n) // self-loop
				}
			}
			targets[lbl] = intern(members)
		}

		var otherwiseMembers []int
		for _, n := range set {
			if nb.isAccept(n) {
				continue
			}
			node := nb.nodes[n]
			switch node.kind {
			case MatchOne:
				otherwiseMembers = append(otherwiseMembers, node.next)
			case MatchN:
				otherwiseMembers = append(otherwiseMembers, n)
			}
		}
		otherwise := -1
		if len(otherwiseMembers) > 0 {
			otherwise = intern(otherwiseMembers)
		}

		raw[id] = rawState{accepting: accepting, labels: labels, target: targets, otherwise: otherwise}
	}

	return minimize(raw, startID), nil
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
