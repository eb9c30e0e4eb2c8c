package wordsplit

import "github.com/kosak/z2kplus-sub000/automaton"

// Translate converts user-typed glob surface text into a pattern-character
// sequence for package automaton (spec §4.5).
//
// A first pass decides strictness for the whole pattern: the presence of
// any uppercase letter, or any backslash immediately followed by a
// lowercase letter, makes every resulting character Exact; otherwise
// unescaped lowercase letters become Loose (so fuzzy/uppercase
// equivalents also match). A second pass resolves each position to
// MatchOne ('?'), MatchN ('*'), or a literal rune - dropping the
// backslash when it truly escapes '?', '*', or a lowercase letter, and
// retaining an unmatched trailing backslash as itself - then applies the
// strictness decision uniformly.
func Translate(s string) []automaton.PatternChar {
	runes := []rune(s)

	forceExact := false
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			forceExact = true
		}
		if r == '\\' && i+1 < len(runes) && isAsciiLower(runes[i+1]) {
			forceExact = true
		}
	}

	var out []automaton.PatternChar
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\\' && i+1 >= len(runes):
			out = append(out, literalChar('\\', forceExact))
			i++
		case r == '\\' && isTrueEscapeTarget(runes[i+1]):
			out = append(out, literalChar(runes[i+1], forceExact))
			i += 2
		case r == '\\':
			out = append(out, literalChar('\\', forceExact))
			i++
		case r == '?':
			out = append(out, automaton.NewMatchOne())
			i++
		case r == '*':
			out = append(out, automaton.NewMatchN())
			i++
		default:
			out = append(out, literalChar(r, forceExact))
			i++
		}
	}
	return out
}

func isTrueEscapeTarget(r rune) bool {
	return r == '?' || r == '*' || isAsciiLower(r)
}

func isAsciiLower(r rune) bool { return r >= 'a' && r <= 'z' }

func literalChar(r rune, forceExact bool) automaton.PatternChar {
	if !forceExact && isAsciiLower(r) {
		return automaton.NewLoose(r)
	}
	return automaton.NewExact(r)
}
