package wordsplit

import (
	"reflect"
	"testing"

	"github.com/kosak/z2kplus-sub000/automaton"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"don't stop", []string{"don't", "stop"}},
		{"foo++", []string{"foo", "+", "+"}},
		{"a, b.", []string{"a", ",", "b", "."}},
		{"trailing''", []string{"trailing"}},
		{"", nil},
	}
	for _, c := range cases {
		got := Split(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Split(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func accepts(pat []automaton.PatternChar, s string) bool {
	d, err := automaton.Compile(pat)
	if err != nil {
		panic(err)
	}
	end := d.AdvanceString(d.Start(), s)
	return end != automaton.DeadState && d.State(end).Accepting
}

func TestTranslateLooseByDefault(t *testing.T) {
	pat := Translate("xyz")
	if !accepts(pat, "xyz") || !accepts(pat, "XYZ") {
		t.Errorf("Translate(xyz) should accept both cases")
	}
}

func TestTranslateUppercaseForcesStrict(t *testing.T) {
	pat := Translate("XYZ")
	if accepts(pat, "xyz") {
		t.Errorf("Translate(XYZ) should reject lowercase")
	}
	if !accepts(pat, "XYZ") {
		t.Errorf("Translate(XYZ) should accept XYZ")
	}
}

func TestTranslateEscapedLowercaseForcesStrict(t *testing.T) {
	pat := Translate(`\cat`)
	if accepts(pat, "CAT") {
		t.Errorf(`Translate(\cat) should be strict and reject "CAT"`)
	}
	if !accepts(pat, "cat") {
		t.Errorf(`Translate(\cat) should accept "cat"`)
	}
}

func TestTranslateWildcards(t *testing.T) {
	pat := Translate("a*b?c")
	if !accepts(pat, "axxxbyc") {
		t.Errorf("Translate(a*b?c) should accept axxxbyc")
	}
}

func TestTranslateEscapedWildcard(t *testing.T) {
	pat := Translate(`a\*b`)
	if !accepts(pat, "a*b") {
		t.Errorf(`Translate(a\*b) should accept literal "a*b"`)
	}
	if accepts(pat, "axb") {
		t.Errorf(`Translate(a\*b) should not treat * as a wildcard`)
	}
}

func TestTranslateTrailingBackslash(t *testing.T) {
	pat := Translate(`a\`)
	if !accepts(pat, `a\`) {
		t.Errorf(`Translate(a\) should retain the trailing backslash literally`)
	}
}
