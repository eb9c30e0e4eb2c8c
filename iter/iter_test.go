package iter

import (
	"testing"

	"github.com/kosak/z2kplus-sub000/automaton"
	"github.com/kosak/z2kplus-sub000/index"
	"github.com/kosak/z2kplus-sub000/wordsplit"
)

func buildTestIndex(t *testing.T) *index.ConsolidatedIndex {
	t.Helper()
	d := index.NewDynamicIndex()
	zgrams := []index.Zephyrgram{
		{Id: 1, TimeSecs: 1, Sender: "kosak", Instance: "test", Body: "hello world"},
		{Id: 2, TimeSecs: 2, Sender: "alice", Instance: "test", Body: "this is fine"},
		{Id: 3, TimeSecs: 3, Sender: "kosak", Instance: "other", Body: "you are jealous of kosak right now"},
		{Id: 4, TimeSecs: 4, Sender: "bob", Instance: "single", Body: "onlyoneword"},
	}
	for _, z := range zgrams {
		if err := d.Ingest(z); err != nil {
			t.Fatalf("ingest %d: %v", z.Id, err)
		}
	}
	return index.NewConsolidatedIndex(index.NewEmptyFrozenIndex(), d)
}

func drain(t *testing.T, ctx *Context, it ZgramIterator) []ZgramRel {
	t.Helper()
	st := it.CreateState(ctx)
	var out []ZgramRel
	buf := make([]ZgramRel, 4)
	next := ZgramRel(0)
	for {
		n := it.GetMore(ctx, st, next, buf)
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
		next = buf[n-1] + 1
	}
	return out
}

func idsOf(t *testing.T, ctx *Context, rels []ZgramRel) []index.ZgramId {
	t.Helper()
	var ids []index.ZgramId
	for _, r := range rels {
		off := ctx.ZgramOffOfRel(r)
		zi, ok := ctx.Index.GetZgramInfo(off)
		if !ok {
			t.Fatalf("rel %d: no such zgram", r)
		}
		ids = append(ids, zi.ZgramId)
	}
	return ids
}

func patternFor(t *testing.T, s string, mask index.FieldMask) WordIterator {
	t.Helper()
	pat := wordsplit.Translate(s)
	p, err := NewPattern(pat, mask)
	if err != nil {
		t.Fatalf("compile %q: %v", s, err)
	}
	return p
}

func TestPopOrNotEverythingNothing(t *testing.T) {
	idx := buildTestIndex(t)
	ctx := &Context{Index: idx, Forward: true}

	got := idsOf(t, ctx, drain(t, ctx, Everything()))
	want := []index.ZgramId{1, 2, 3, 4}
	if !equalIds(got, want) {
		t.Fatalf("Everything() = %v, want %v", got, want)
	}

	got = idsOf(t, ctx, drain(t, ctx, Nothing()))
	if len(got) != 0 {
		t.Fatalf("Nothing() = %v, want empty", got)
	}
}

func TestAndOrNotBasic(t *testing.T) {
	idx := buildTestIndex(t)
	ctx := &Context{Index: idx, Forward: true}

	kosak := NewWordAdaptor(patternFor(t, "kosak", index.MaskDefault))
	got := idsOf(t, ctx, drain(t, ctx, kosak))
	if !equalIds(got, []index.ZgramId{1, 3}) {
		t.Fatalf("kosak pattern = %v", got)
	}

	notKosak := NewNot(kosak)
	got = idsOf(t, ctx, drain(t, ctx, notKosak))
	if !equalIds(got, []index.ZgramId{2, 4}) {
		t.Fatalf("not kosak = %v", got)
	}

	doubleNot := NewNot(NewNot(kosak))
	if doubleNot != kosak {
		t.Fatalf("Not(Not(x)) should collapse to x")
	}

	senderKosak := NewWordAdaptor(patternFor(t, "kosak", index.FieldMaskOf(index.Sender)))
	and := NewAnd(senderKosak, Everything())
	if and != senderKosak {
		t.Fatalf("And(x, everything) should collapse to x")
	}

	or := NewOr(senderKosak, Nothing())
	if or != senderKosak {
		t.Fatalf("Or(x, nothing) should collapse to x")
	}
}

func TestNearMargin(t *testing.T) {
	idx := buildTestIndex(t)
	ctx := &Context{Index: idx, Forward: true}

	you := patternFor(t, "you", index.MaskDefault)
	jealous := patternFor(t, "jealous", index.MaskDefault)

	near3 := NewNear(3, you, jealous)
	got := idsOf(t, ctx, drain(t, ctx, near3))
	if !equalIds(got, []index.ZgramId{3}) {
		t.Fatalf("near margin 3 = %v, want [3]", got)
	}

	near0 := NewNear(0, you, jealous)
	got = idsOf(t, ctx, drain(t, ctx, near0))
	if len(got) != 0 {
		t.Fatalf("near margin 0 = %v, want empty", got)
	}

	near1 := NewNear(1, you, jealous)
	got = idsOf(t, ctx, drain(t, ctx, near1))
	if len(got) != 0 {
		t.Fatalf("near margin 1 (gap is 2) = %v, want empty", got)
	}
}

func TestAnchored(t *testing.T) {
	idx := buildTestIndex(t)
	ctx := &Context{Index: idx, Forward: true}

	// "onlyoneword" is the sole body word of zgram 4: anchored both ways
	// on body should match it; anchored left-only on "of" (mid-sentence
	// in zgram 3) should not.
	single := NewAnchored(patternFor(t, "onlyoneword", index.FieldMaskOf(index.Body)), true, true)
	got := idsOf(t, ctx, drain(t, ctx, NewWordAdaptor(single)))
	if !equalIds(got, []index.ZgramId{4}) {
		t.Fatalf("anchored singleton = %v, want [4]", got)
	}

	mid := NewAnchored(patternFor(t, "of", index.FieldMaskOf(index.Body)), true, false)
	got = idsOf(t, ctx, drain(t, ctx, NewWordAdaptor(mid)))
	if len(got) != 0 {
		t.Fatalf("anchored mid-field word = %v, want empty", got)
	}
}

func TestReverseDirectionMatchesSameSet(t *testing.T) {
	idx := buildTestIndex(t)
	fwd := &Context{Index: idx, Forward: true}
	rev := &Context{Index: idx, Forward: false}

	kosakFwd := NewWordAdaptor(patternFor(t, "kosak", index.MaskDefault))
	kosakRev := NewWordAdaptor(patternFor(t, "kosak", index.MaskDefault))

	gotFwd := idsOf(t, fwd, drain(t, fwd, kosakFwd))
	gotRev := idsOf(t, rev, drain(t, rev, kosakRev))

	if !equalIds(gotFwd, []index.ZgramId{1, 3}) {
		t.Fatalf("forward = %v", gotFwd)
	}
	// reverse mode must visit the same set, in reverse order.
	if len(gotRev) != len(gotFwd) {
		t.Fatalf("reverse set size mismatch: %v vs %v", gotRev, gotFwd)
	}
	for i := range gotFwd {
		if gotRev[i] != gotFwd[len(gotFwd)-1-i] {
			t.Fatalf("reverse order mismatch: fwd=%v rev=%v", gotFwd, gotRev)
		}
	}
}

func TestHavingReaction(t *testing.T) {
	idx := buildTestIndex(t)
	if err := idx.IngestMetadata(index.ReactionRecord{Id: 2, Reaction: "thumbsup", Creator: "bob", Bit: true}); err != nil {
		t.Fatalf("ingest reaction: %v", err)
	}
	ctx := &Context{Index: idx, Forward: true}
	got := idsOf(t, ctx, drain(t, ctx, NewHavingReaction("thumbsup")))
	if !equalIds(got, []index.ZgramId{2}) {
		t.Fatalf("hasreaction = %v, want [2]", got)
	}
}

func TestZgramId(t *testing.T) {
	idx := buildTestIndex(t)
	ctx := &Context{Index: idx, Forward: true}
	got := idsOf(t, ctx, drain(t, ctx, NewZgramId(3)))
	if !equalIds(got, []index.ZgramId{3}) {
		t.Fatalf("zgramid(3) = %v", got)
	}
	got = idsOf(t, ctx, drain(t, ctx, NewZgramId(999)))
	if len(got) != 0 {
		t.Fatalf("zgramid(999) = %v, want empty", got)
	}
}

func TestLiteralPrefixFastPath(t *testing.T) {
	idx := buildTestIndex(t)
	ctx := &Context{Index: idx, Forward: true}
	// "hello" has no wildcard, so NewPattern should use the
	// ExtractLiteralPrefix fast path; verify it still finds the word.
	pat := []automaton.PatternChar{
		automaton.NewExact('h'), automaton.NewExact('e'), automaton.NewExact('l'),
		automaton.NewExact('l'), automaton.NewExact('o'),
	}
	p, err := NewPattern(pat, index.MaskDefault)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	got := idsOf(t, ctx, drain(t, ctx, NewWordAdaptor(p)))
	if !equalIds(got, []index.ZgramId{1}) {
		t.Fatalf("literal hello = %v, want [1]", got)
	}
}

func equalIds(got, want []index.ZgramId) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
