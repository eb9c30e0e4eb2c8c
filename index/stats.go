package index

import "github.com/kosak/z2kplus-sub000/trie"

// Stats is a read-only introspection snapshot of a ConsolidatedIndex,
// grounded on original_source's consolidated_index.cc having an
// analogous status surface for its (out-of-scope) comms layer. Purely
// additive: nothing in the core consults it.
type Stats struct {
	FrozenZgrams, DynamicZgrams int
	FrozenWords, DynamicWords   int
	FrozenTrieNodes             int
	DynamicTrieNodes            int
}

// Stats computes a snapshot of c. Trie node counts walk the full
// transition graph, so this is O(trie size); it is meant for
// diagnostics, not the hot query path.
func (c *ConsolidatedIndex) Stats() Stats {
	return Stats{
		FrozenZgrams:     len(c.Frozen.Zgrams),
		DynamicZgrams:    len(c.Dynamic.Zgrams),
		FrozenWords:      len(c.Frozen.Words),
		DynamicWords:     len(c.Dynamic.Words),
		FrozenTrieNodes:  countTrieNodes(c.Frozen.TrieRoot),
		DynamicTrieNodes: countTrieNodes(c.Dynamic.Trie),
	}
}

func countTrieNodes(n trie.Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, k := range n.TransitionKeys() {
		count += countTrieNodes(n.Transition(k))
	}
	return count
}

// GetZgramText reconstructs a zgram's original field text, if
// KeepOriginalText was enabled on the dynamic segment's Ingest path (see
// DynamicIndex.OriginalText). The frozen segment never retains original
// text (spec.md's ZgramInfo is lean by design; this supplement only
// covers the mutable side a running process actually needs to echo
// back), so a frozen-only zgram reports ok=false.
func (c *ConsolidatedIndex) GetZgramText(id ZgramId) (sender, signature, instance, body string, ok bool) {
	return c.Dynamic.OriginalText(id)
}
