package iter

import (
	"sort"

	"github.com/kosak/z2kplus-sub000/automaton"
	"github.com/kosak/z2kplus-sub000/index"
	"github.com/kosak/z2kplus-sub000/trie"
)

// pattern is the Pattern primitive of spec §4.4: for each trie range
// matching dfa, keep only word offsets whose field tag is in mask.
//
// Unlike the spec's incremental top-capacity max-heap buffering (a pure
// performance optimization over an unbounded candidate set), this
// CreateState walks both trie segments to completion once and sorts the
// result; GetMore then serves it by binary search. Same output, same
// contract - the heap is a buffering strategy for a single large
// findMatching callback stream, not a behavioral requirement.
type pattern struct {
	dfa      *automaton.DFA
	mask     index.FieldMask
	lit      string
	litExact bool
}

// NewPattern compiles pat and builds the Pattern primitive restricted to
// mask. If the compiled DFA accepts everything, this rewrites to
// AnyWord(mask) per spec §4.4's algebraic rewrite list.
func NewPattern(pat []automaton.PatternChar, mask index.FieldMask) (WordIterator, error) {
	dfa, err := automaton.Compile(pat)
	if err != nil {
		return nil, err
	}
	if dfa.AcceptsEverything(dfa.Start()) {
		return NewAnyWord(mask), nil
	}
	lit, exact := automaton.ExtractLiteralPrefix(pat)
	// The exact-Find fast path is only sound for a strict (all-Exact)
	// pattern. A pattern with any Loose character - the common case, since
	// wordsplit.Translate emits Loose for unescaped lowercase letters - must
	// still go through the DFA so case and fuzzy variants fold in.
	litExact := exact && automaton.IsStrictLiteral(pat)
	return &pattern{dfa: dfa, mask: mask, lit: lit, litExact: litExact}, nil
}

func (p *pattern) collectFrom(root trie.Node, shift index.WordOff, out *[]index.WordOff) {
	cb := func(words []trie.WordOff) {
		for _, w := range words {
			*out = append(*out, index.WordOff(w)+shift)
		}
	}
	if p.litExact {
		trie.FindMatchingFast(root, p.lit, true, p.dfa, p.dfa.Start(), cb)
	} else {
		trie.FindMatching(root, p.dfa, p.dfa.Start(), cb)
	}
}

func (p *pattern) CreateState(ctx *Context) interface{} {
	var raw []index.WordOff
	p.collectFrom(ctx.Index.Frozen.TrieRoot, 0, &raw)
	p.collectFrom(ctx.Index.Dynamic.Trie, index.WordOff(len(ctx.Index.Frozen.Words)), &raw)

	rels := make([]WordRel, 0, len(raw))
	for _, w := range raw {
		if wi, ok := ctx.Index.GetWordInfo(w); ok && p.mask.Contains(wi.Tag) {
			rels = append(rels, ctx.WordRelOf(w))
		}
	}
	sort.Slice(rels, func(i, j int) bool { return rels[i] < rels[j] })
	return &sortedWordState{vals: rels}
}

func (p *pattern) GetMore(ctx *Context, st interface{}, lowerBound WordRel, out []WordRel) int {
	return st.(*sortedWordState).getMore(lowerBound, out)
}
