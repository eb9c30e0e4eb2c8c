package automaton

import "testing"

// testPattern is a tiny glob-surface-to-PatternChar helper for this
// package's own tests only: '*' -> MatchN, '?' -> MatchOne, an uppercase
// letter -> Exact, anything else -> Loose. The real translator lives in
// package wordsplit and has its own tests against its own two-pass rules.
func testPattern(s string) []PatternChar {
	var out []PatternChar
	for _, r := range s {
		switch {
		case r == '*':
			out = append(out, NewMatchN())
		case r == '?':
			out = append(out, NewMatchOne())
		case r >= 'A' && r <= 'Z':
			out = append(out, NewExact(r))
		default:
			out = append(out, NewLoose(r))
		}
	}
	return out
}

func mustCompile(t *testing.T, s string) *DFA {
	t.Helper()
	d, err := Compile(testPattern(s))
	if err != nil {
		t.Fatalf("Compile(%q): %v", s, err)
	}
	return d
}

func accepts(d *DFA, s string) bool {
	end := d.AdvanceString(d.Start(), s)
	if end == DeadState {
		return false
	}
	return d.State(end).Accepting
}

func TestAcceptsEverything(t *testing.T) {
	cases := []struct {
		pat  string
		want bool
	}{
		{"*", true},
		{"?", false},
		{"**", true},
		{"?*", false},
	}
	for _, c := range cases {
		d := mustCompile(t, c.pat)
		got := d.AcceptsEverything(d.Start())
		if got != c.want {
			t.Errorf("Compile(%q).AcceptsEverything() = %v, want %v", c.pat, got, c.want)
		}
	}
}

func TestLooseFuzzy(t *testing.T) {
	d := mustCompile(t, "c")
	for _, s := range []string{"c", "C", "ⓒ", "⒞"} {
		if !accepts(d, s) {
			t.Errorf("Compile(%q) should accept %q", "c", s)
		}
	}
	if accepts(d, "x") {
		t.Errorf("Compile(%q) should reject %q", "c", "x")
	}
}

func TestStrictUppercase(t *testing.T) {
	d := mustCompile(t, "XYZ")
	if accepts(d, "xyz") {
		t.Errorf(`Compile("XYZ") should reject "xyz"`)
	}
	if !accepts(d, "XYZ") {
		t.Errorf(`Compile("XYZ") should accept "XYZ"`)
	}

	d2 := mustCompile(t, "xyz")
	if !accepts(d2, "xyz") || !accepts(d2, "XYZ") {
		t.Errorf(`Compile("xyz") should accept both "xyz" and "XYZ"`)
	}
}

func TestWildcards(t *testing.T) {
	d := mustCompile(t, "a*b")
	for _, s := range []string{"ab", "axb", "axxxb"} {
		if !accepts(d, s) {
			t.Errorf("Compile(%q) should accept %q", "a*b", s)
		}
	}
	if accepts(d, "a") || accepts(d, "b") {
		t.Errorf(`Compile("a*b") should reject "a" and "b"`)
	}

	q := mustCompile(t, "a?b")
	if !accepts(q, "axb") {
		t.Errorf(`Compile("a?b") should accept "axb"`)
	}
	if accepts(q, "ab") || accepts(q, "axxb") {
		t.Errorf(`Compile("a?b") should reject "ab" and "axxb"`)
	}
}

func TestAdvanceMultiMatchesAdvance(t *testing.T) {
	d := mustCompile(t, "a*")
	keys := []rune{'a', 'b', 'z'}
	multi := d.AdvanceMulti(d.Start(), keys)
	for i, k := range keys {
		want := d.Advance(d.Start(), k)
		if multi[i] != want {
			t.Errorf("AdvanceMulti[%d] = %v, want %v", i, multi[i], want)
		}
	}
}

func TestExtractLiteralPrefix(t *testing.T) {
	lit, exact := ExtractLiteralPrefix(testPattern("abc"))
	if lit != "abc" || !exact {
		t.Errorf("ExtractLiteralPrefix(abc) = %q,%v want abc,true", lit, exact)
	}
	lit, exact = ExtractLiteralPrefix(testPattern("ab*"))
	if lit != "ab" || exact {
		t.Errorf("ExtractLiteralPrefix(ab*) = %q,%v want ab,false", lit, exact)
	}
}
