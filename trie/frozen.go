package trie

import (
	"encoding/binary"
)

// RelPtr is a signed offset relative to its own storage position inside
// a frozen blob (spec §4.2, §9 "Relative pointers"). The distinguished
// null value is +1, not 0, since 0 is a valid self-reference (a node can
// legitimately point at the byte range starting at its own pointer
// field in a degenerate zero-length layout, so 0 cannot double as null).
type RelPtr int64

// NullRelPtr is the reserved "no target" sentinel.
const NullRelPtr RelPtr = 1

// resolveRelPtr returns the absolute blob offset a RelPtr stored at byte
// position at refers to, or ok=false if it is null.
func resolveRelPtr(p RelPtr, at int) (offset int, ok bool) {
	if p == NullRelPtr {
		return 0, false
	}
	return at + int(p), true
}

// makeRelPtr computes the RelPtr to store at byte position at so that it
// resolves to target. Panics if the natural encoding would collide with
// NullRelPtr; this cannot happen for any node layout this package
// produces (headers are always more than one byte wide), so it exists
// only as a last-resort invariant check, matching the original's assert.
func makeRelPtr(at, target int) RelPtr {
	off := RelPtr(target - at)
	if off == NullRelPtr {
		panic("trie: relative offset collides with null sentinel")
	}
	return off
}

// FrozenNode is a read-only trie node backed by a single immutable byte
// blob, addressed by byte offset. Layout at offset off:
//
//	uint32 prefixSize, uint32 numWordsHere, uint32 numTransitions
//	prefixSize  x uint32   prefix scalars
//	numWordsHere x uint32  word offsets
//	numTransitions x uint32 transition-key scalars (sorted)
//	(padding to 8-byte alignment)
//	numTransitions x int64 RelPtr   transition targets, parallel to the keys
type FrozenNode struct {
	blob []byte
	off  int
}

// NewFrozenNode views blob as a frozen trie node at byte offset off.
func NewFrozenNode(blob []byte, off int) *FrozenNode {
	return &FrozenNode{blob: blob, off: off}
}

func le32(b []byte, i int) uint32 { return binary.LittleEndian.Uint32(b[i:]) }
func le64(b []byte, i int) int64  { return int64(binary.LittleEndian.Uint64(b[i:])) }

func align8(x int) int { return (x + 7) &^ 7 }

func (n *FrozenNode) header() (prefixSize, numWords, numTrans int) {
	return int(le32(n.blob, n.off)), int(le32(n.blob, n.off+4)), int(le32(n.blob, n.off+8))
}

func (n *FrozenNode) offsets() (prefixStart, wordsStart, keysStart, ptrStart int) {
	prefixSize, numWords, numTrans := n.header()
	prefixStart = n.off + 12
	wordsStart = prefixStart + prefixSize*4
	keysStart = wordsStart + numWords*4
	ptrStart = align8(keysStart + numTrans*4)
	return
}

func (n *FrozenNode) Prefix() []rune {
	prefixSize, _, _ := n.header()
	prefixStart, _, _, _ := n.offsets()
	out := make([]rune, prefixSize)
	for i := 0; i < prefixSize; i++ {
		out[i] = rune(le32(n.blob, prefixStart+4*i))
	}
	return out
}

func (n *FrozenNode) WordsHere() []WordOff {
	_, numWords, _ := n.header()
	_, wordsStart, _, _ := n.offsets()
	out := make([]WordOff, numWords)
	for i := 0; i < numWords; i++ {
		out[i] = WordOff(le32(n.blob, wordsStart+4*i))
	}
	return out
}

func (n *FrozenNode) TransitionKeys() []rune {
	_, _, numTrans := n.header()
	_, _, keysStart, _ := n.offsets()
	if numTrans == 0 {
		return nil
	}
	out := make([]rune, numTrans)
	for i := 0; i < numTrans; i++ {
		out[i] = rune(le32(n.blob, keysStart+4*i))
	}
	return out
}

func (n *FrozenNode) Transition(key rune) Node {
	_, _, numTrans := n.header()
	_, _, keysStart, ptrStart := n.offsets()
	lo, hi := 0, numTrans
	for lo < hi {
		mid := (lo + hi) / 2
		k := rune(le32(n.blob, keysStart+4*mid))
		if k < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo >= numTrans || rune(le32(n.blob, keysStart+4*lo)) != key {
		return nil
	}
	ptrAt := ptrStart + 8*lo
	target, ok := resolveRelPtr(RelPtr(le64(n.blob, ptrAt)), ptrAt)
	if !ok {
		return nil
	}
	return NewFrozenNode(n.blob, target)
}
