package trie

import "encoding/binary"

// Freeze serializes a dynamic trie into a single self-contained byte
// blob in the FrozenNode layout, returning the blob and the byte offset
// of its root node.
//
// This is not "the offline index builder" (out of scope per spec.md: a
// whole multi-table frozen segment file assembled from a log directory).
// It is the minimal complement FrozenNode needs to exist at all, and
// exists so the round-trip property in spec §8 ("build a dynamic trie,
// freeze its structure, re-open; lookups are identical") is actually
// testable in this repository.
func Freeze(root *DynamicNode) (blob []byte, rootOffset int) {
	var buf []byte
	rootOffset = writeNode(&buf, root)
	return buf, rootOffset
}

func writeNode(buf *[]byte, n *DynamicNode) int {
	keys := n.TransitionKeys()
	childOffsets := make([]int, len(keys))
	for i, k := range keys {
		childOffsets[i] = writeNode(buf, n.child(k))
	}

	start := len(*buf)
	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:], uint32(len(n.prefix)))
	binary.LittleEndian.PutUint32(header[4:], uint32(len(n.words)))
	binary.LittleEndian.PutUint32(header[8:], uint32(len(keys)))
	*buf = append(*buf, header[:]...)

	for _, r := range n.prefix {
		appendU32(buf, uint32(r))
	}
	for _, w := range n.words {
		appendU32(buf, uint32(w))
	}
	for _, k := range keys {
		appendU32(buf, uint32(k))
	}
	for len(*buf)%8 != 0 {
		*buf = append(*buf, 0)
	}
	ptrStart := len(*buf)
	for i := range keys {
		at := ptrStart + 8*i
		rp := makeRelPtr(at, childOffsets[i])
		appendU64(buf, uint64(rp))
	}
	return start
}

func appendU32(buf *[]byte, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func appendU64(buf *[]byte, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}
