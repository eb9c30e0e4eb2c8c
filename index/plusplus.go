package index

import "regexp"

// plusPlusPattern recognizes "key++" / "key--" score tokens embedded in
// zgram bodies (spec §3, §4.3 "Plus-plus bookkeeping"). Go's regexp
// Unicode character classes (\p{L}, \p{N}) give an "any Unicode letter or
// digit" key alphabet (narrower than the word splitter's, which also
// admits every byte >= 0x80 and interior apostrophes), without needing a separate
// hand-rolled scanner for this one fixed two-token grammar; this is the
// documented stdlib exception for this component (see DESIGN.md: no
// pack library targets "optional literal suffix after a variable-length
// Unicode word" better than a two-group regexp here).
var plusPlusPattern = regexp.MustCompile(`([\p{L}\p{N}]+)(\+\+|--)`)

// scanPlusPlusDeltas returns, for each key found in text, the net delta
// contributed by that occurrence of text (+1 per "key++", -1 per
// "key--").
func scanPlusPlusDeltas(text string) map[string]int {
	matches := plusPlusPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	deltas := make(map[string]int, len(matches))
	for _, m := range matches {
		if m[2] == "++" {
			deltas[m[1]]++
		} else {
			deltas[m[1]]--
		}
	}
	return deltas
}

// combinedPlusPlusDeltas computes the delta a revision contributes: the
// new body's occurrences minus the old body's (spec §4.3: "scan the
// previous revision's body... and subtract them; scan the new body and
// add them").
func combinedPlusPlusDeltas(oldText, newText string) map[string]int {
	out := map[string]int{}
	for k, v := range scanPlusPlusDeltas(oldText) {
		out[k] -= v
	}
	for k, v := range scanPlusPlusDeltas(newText) {
		out[k] += v
	}
	return out
}
