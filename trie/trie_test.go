package trie

import (
	"reflect"
	"testing"

	"github.com/kosak/z2kplus-sub000/automaton"
)

func toRunes(s string) []rune { return []rune(s) }

func compileLoose(s string) *automaton.DFA {
	var pat []automaton.PatternChar
	for _, r := range s {
		pat = append(pat, automaton.NewLoose(r))
	}
	d, err := automaton.Compile(pat)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDynamicFindExact(t *testing.T) {
	root := NewDynamicRoot()
	root.Insert(toRunes("kosak"), 1)
	root.Insert(toRunes("kosak"), 2)
	root.Insert(toRunes("koala"), 3)

	words, ok := Find(root, toRunes("kosak"))
	if !ok || !reflect.DeepEqual(words, []WordOff{1, 2}) {
		t.Fatalf("Find(kosak) = %v,%v", words, ok)
	}
	words, ok = Find(root, toRunes("koala"))
	if !ok || !reflect.DeepEqual(words, []WordOff{3}) {
		t.Fatalf("Find(koala) = %v,%v", words, ok)
	}
	if _, ok := Find(root, toRunes("kos")); ok {
		t.Fatalf("Find(kos) should miss (not a terminal node)")
	}
	if _, ok := Find(root, toRunes("nope")); ok {
		t.Fatalf("Find(nope) should miss")
	}
}

func TestDynamicSplitPreservesWords(t *testing.T) {
	root := NewDynamicRoot()
	root.Insert(toRunes("abcdef"), 1)
	// Forces a split of the "abcdef" node at "abc".
	root.Insert(toRunes("abcxyz"), 2)
	// Lands exactly at the boundary of the "abc" node that split created,
	// so no further split happens.
	root.Insert(toRunes("abc"), 3)

	for _, tc := range []struct {
		word string
		want []WordOff
	}{
		{"abcdef", []WordOff{1}},
		{"abcxyz", []WordOff{2}},
		{"abc", []WordOff{3}},
	} {
		words, ok := Find(root, toRunes(tc.word))
		if !ok || !reflect.DeepEqual(words, tc.want) {
			t.Errorf("Find(%q) = %v,%v want %v", tc.word, words, ok, tc.want)
		}
	}
}

func TestFindMatchingInvokesOncePerWord(t *testing.T) {
	root := NewDynamicRoot()
	root.Insert(toRunes("kosak"), 1)
	root.Insert(toRunes("koala"), 2)
	root.Insert(toRunes("banana"), 3)

	dfa := compileLoose("kosak")
	var calls int
	var got []WordOff
	FindMatching(root, dfa, dfa.Start(), func(words []WordOff) {
		calls++
		got = append(got, words...)
	})
	if calls != 1 {
		t.Fatalf("FindMatching invoked callback %d times, want 1", calls)
	}
	if !reflect.DeepEqual(got, []WordOff{1}) {
		t.Fatalf("FindMatching words = %v, want [1]", got)
	}
}

func TestFreezeRoundTrip(t *testing.T) {
	root := NewDynamicRoot()
	words := map[string][]WordOff{
		"kosak":  {1, 4},
		"koala":  {2},
		"banana": {3},
		"band":   {5},
	}
	for w, offs := range words {
		for _, o := range offs {
			root.Insert(toRunes(w), o)
		}
	}

	blob, rootOff := Freeze(root)
	frozenRoot := NewFrozenNode(blob, rootOff)

	for w, want := range words {
		dynWords, dynOk := Find(root, toRunes(w))
		frozenWords, frozenOk := Find(frozenRoot, toRunes(w))
		if dynOk != frozenOk || !reflect.DeepEqual(dynWords, want) || !reflect.DeepEqual(frozenWords, want) {
			t.Errorf("round trip mismatch for %q: dyn=%v,%v frozen=%v,%v want %v", w, dynWords, dynOk, frozenWords, frozenOk, want)
		}
	}

	dfa := compileLoose("kosak")
	var dynHits, frozenHits []WordOff
	FindMatching(root, dfa, dfa.Start(), func(ws []WordOff) { dynHits = append(dynHits, ws...) })
	FindMatching(frozenRoot, dfa, dfa.Start(), func(ws []WordOff) { frozenHits = append(frozenHits, ws...) })
	if !reflect.DeepEqual(dynHits, frozenHits) {
		t.Errorf("FindMatching mismatch after freeze: dyn=%v frozen=%v", dynHits, frozenHits)
	}
}
