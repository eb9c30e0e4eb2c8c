package automaton

import (
	"strings"
	"unicode"
)

// fuzzyTable maps each ASCII lowercase letter to a fixed string of
// "visually similar" Unicode scalars that a Loose pattern character also
// accepts, on top of the letter itself and its uppercase sibling. Each
// entry is built from three Unicode blocks that enumerate a-z in order:
// PARENTHESIZED LATIN SMALL LETTER (U+249C-U+24B5), CIRCLED LATIN CAPITAL
// LETTER (U+24B6-U+24CF), and CIRCLED LATIN SMALL LETTER (U+24D0-U+24E9).
var fuzzyTable = buildFuzzyTable()

func buildFuzzyTable() [26]string {
	var t [26]string
	for i := 0; i < 26; i++ {
		parenSmall := rune(0x249C + i)
		circledCap := rune(0x24B6 + i)
		circledSmall := rune(0x24D0 + i)
		t[i] = string([]rune{parenSmall, circledCap, circledSmall})
	}
	return t
}

// FuzzyEquivalents returns the fixed fuzzy-equivalent string for the ASCII
// lowercase letter lower, or "" if lower is not in a-z.
func FuzzyEquivalents(lower rune) string {
	if lower < 'a' || lower > 'z' {
		return ""
	}
	return fuzzyTable[lower-'a']
}

// looseMatches reports whether x is accepted by a Loose pattern character
// anchored on the lowercase letter base.
func looseMatches(base, x rune) bool {
	if x == base || x == unicode.ToUpper(base) {
		return true
	}
	return strings.ContainsRune(FuzzyEquivalents(base), x)
}
