package index

import "github.com/kosak/z2kplus-sub000/trie"

// FrozenIndex is the immutable, checkpointed segment of the two-tier
// index (spec §3 "frozen segment"). Unlike the trie's FrozenNode, which
// faithfully reproduces the relative-pointer blob layout spec §4.2
// describes byte for byte, ZgramInfo/WordInfo/Metadata have no such
// on-disk format named by the spec (building and reading that format is
// the offline index builder, explicitly out of scope), so this type
// holds them as plain read-only Go slices/maps. Only the trie side needs
// true blob fidelity; everything else only needs to behave as
// read-only.
type FrozenIndex struct {
	TrieRoot trie.Node
	Zgrams   []ZgramInfo
	Words    []WordInfo
	Meta     *Metadata
}

// FreezeIndex builds a FrozenIndex snapshot of d. It exists to make the
// dynamic/frozen merge rules in spec §9 testable without a real offline
// builder or log directory; it is not a substitute for either.
func FreezeIndex(d *DynamicIndex) *FrozenIndex {
	blob, rootOff := trie.Freeze(d.Trie)
	zgrams := make([]ZgramInfo, len(d.Zgrams))
	copy(zgrams, d.Zgrams)
	words := make([]WordInfo, len(d.Words))
	copy(words, d.Words)
	return &FrozenIndex{
		TrieRoot: trie.NewFrozenNode(blob, rootOff),
		Zgrams:   zgrams,
		Words:    words,
		Meta:     d.Meta,
	}
}

// NewEmptyFrozenIndex returns a frozen index with no zgrams, usable as
// the starting frozen side of a ConsolidatedIndex before any checkpoint
// exists.
func NewEmptyFrozenIndex() *FrozenIndex {
	return &FrozenIndex{
		TrieRoot: emptyFrozenTrie(),
		Meta:     NewMetadata(),
	}
}

func emptyFrozenTrie() trie.Node {
	blob, rootOff := trie.Freeze(trie.NewDynamicRoot())
	return trie.NewFrozenNode(blob, rootOff)
}
