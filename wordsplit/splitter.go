// Package wordsplit tokenizes zgram field text into indexable words and
// translates user-typed glob surface syntax into the automaton package's
// pattern-character sequence (spec §4.5).
package wordsplit

import (
	"strings"

	"golang.org/x/sys/cpu"
)

// batchThreshold is the input length above which the 8-byte batched
// classification loop pays for itself over the straightforward scalar
// loop; below it, loop overhead dominates. Mirrors the teacher's own
// hasAVX2 && len(data) >= 32 dispatch shape, scaled down to an 8-byte
// batch since this classifier has no SIMD backing, only a software
// unrolled fast path.
const batchThreshold = 16

// useBatchClassify gates the 8-byte-at-a-time alphabet scan on AVX2
// availability, the same feature-detection-gated dispatch the teacher
// uses for its ASCII/memchr fast paths (simd/ascii_amd64.go), adapted
// here to a pure-Go batch loop rather than assembly: no hand-written
// SIMD was attempted without the ability to build or test it, so both
// branches are plain Go and differ only in loop granularity.
var useBatchClassify = cpu.X86.HasAVX2

// isAlphabet reports whether b is a word-constituent byte: [A-Za-z0-9]
// or any byte >= 0x80 (so multibyte UTF-8 sequences are alphabet).
func isAlphabet(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b >= 0x80
}

func isSkip(b byte) bool {
	return b < 0x20 || b == ' ' || b == 0x7F
}

// runEnd returns the index of the first byte at or after start that is
// neither alphabet nor an apostrophe, scanning in batches of 8 when
// useBatchClassify is set and there is enough input left to amortize it.
func runEnd(b []byte, start int) int {
	i := start
	if useBatchClassify {
		for i+8 <= len(b) && len(b)-start >= batchThreshold {
			allRun := true
			for j := 0; j < 8; j++ {
				c := b[i+j]
				if !isAlphabet(c) && c != '\'' {
					allRun = false
					break
				}
			}
			if !allRun {
				break
			}
			i += 8
		}
	}
	for i < len(b) && (isAlphabet(b[i]) || b[i] == '\'') {
		i++
	}
	return i
}

// Split tokenizes text into words per spec §4.5: a maximal run of
// alphabet bytes optionally containing interior apostrophes is one word
// (trailing apostrophes stripped); control characters, space, and DEL
// are skipped; anything else is emitted as its own one-byte token.
func Split(text string) []string {
	b := []byte(text)
	var out []string
	i := 0
	for i < len(b) {
		c := b[i]
		if isSkip(c) {
			i++
			continue
		}
		if isAlphabet(c) {
			end := runEnd(b, i)
			word := strings.TrimRight(string(b[i:end]), "'")
			if word != "" {
				out = append(out, word)
			}
			i = end
			continue
		}
		out = append(out, string(b[i]))
		i++
	}
	return out
}
