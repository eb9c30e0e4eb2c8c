package automaton

import "github.com/kosak/z2kplus-sub000/automaton/internal/sparse"

// ndfaNode is one node of the linear, epsilon-bearing NDFA built
// right-to-left from a pattern-character array (spec §4.1 step 1). Nodes
// are addressed by index into ndfaBuilder.nodes; node len(pat) is the
// synthetic accepting terminal with no outgoing transitions.
type ndfaNode struct {
	kind CharType
	char PatternChar // valid when kind is Exact or Loose
	next int         // index of the node reached by consuming a matching scalar (Exact/Loose/MatchOne) or by the epsilon edge (MatchN)
	self bool        // MatchN also loops back to itself on any scalar ("otherwise")
}

// ndfaBuilder holds the linear chain for one compiled pattern.
type ndfaBuilder struct {
	nodes []ndfaNode // len(pat)+1; last is the accepting terminal
}

const ndfaAccept = -1 // sentinel "next" for the terminal node (never followed)

func buildNDFA(pat []PatternChar) *ndfaBuilder {
	b := &ndfaBuilder{nodes: make([]ndfaNode, len(pat)+1)}
	b.nodes[len(pat)] = ndfaNode{kind: -1, next: ndfaAccept}
	for i := len(pat) - 1; i >= 0; i-- {
		b.nodes[i] = ndfaNode{kind: pat[i].Kind, char: pat[i], next: i + 1, self: pat[i].Kind == MatchN}
	}
	return b
}

func (b *ndfaBuilder) isAccept(i int) bool { return i == len(b.nodes)-1 }

// epsilonClosure extends a node set with every node reachable purely by
// epsilon edges (MatchN's "zero occurrences" edge to its successor),
// without mutating the input. seen is a sparse.Set over the NDFA's node-id
// universe, allocated fresh for each call: cheap O(1) membership/insert,
// the same shape subset construction needs in dfa.go.
func (b *ndfaBuilder) epsilonClosure(seed []int) []int {
	seen := sparse.New(uint32(len(b.nodes)))
	var stack []int
	for _, s := range seed {
		if !seen.Contains(uint32(s)) {
			seen.Insert(uint32(s))
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := b.nodes[n]
		if node.kind == MatchN && !seen.Contains(uint32(node.next)) {
			seen.Insert(uint32(node.next))
			stack = append(stack, node.next)
		}
	}
	out := make([]int, seen.Len())
	for i, v := range seen.Values() {
		out[i] = int(v)
	}
	return out
}
