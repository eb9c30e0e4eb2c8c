package zg

import (
	"testing"

	"github.com/kosak/z2kplus-sub000/index"
)

func seedEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	zgrams := []index.Zephyrgram{
		{Id: 4, Sender: "kosak", Instance: "chat", Body: "kosak says hi"},
		{Id: 5, Sender: "alice", Instance: "chat", Body: "it is fine"},
		{Id: 50, Sender: "bob", Instance: "random", Body: "you are jealous of kosak right now"},
		{Id: 51, Sender: "carol", Instance: "chat", Body: "this thing works"},
		{Id: 63, Sender: "dave", Instance: "single", Body: "onlyoneword"},
		{Id: 70, Sender: "kosak", Instance: "chat", Body: "another kosak sighting"},
		{Id: 71, Sender: "erin", Instance: "chat", Body: "kosak again"},
	}
	for _, z := range zgrams {
		if err := e.Ingest(z); err != nil {
			t.Fatalf("ingest %d: %v", z.Id, err)
		}
	}
	return e
}

func containsId(ids []index.ZgramId, id index.ZgramId) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestSearchBareWord(t *testing.T) {
	e := seedEngine(t)
	got, err := e.Search("kosak", SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []index.ZgramId{4, 50, 70, 71}
	if len(got) != len(want) {
		t.Fatalf("kosak = %v, want %v", got, want)
	}
	for _, id := range want {
		if !containsId(got, id) {
			t.Fatalf("kosak = %v, missing %d", got, id)
		}
	}
}

func TestSearchStartAt(t *testing.T) {
	e := seedEngine(t)
	got, err := e.Search("kosak", SearchOptions{Forward: true, StartAt: 5})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []index.ZgramId{50, 70, 71}
	if len(got) != len(want) {
		t.Fatalf("kosak starting at 5 = %v, want %v", got, want)
	}
	for i, id := range want {
		if got[i] != id {
			t.Fatalf("kosak starting at 5 = %v, want %v", got, want)
		}
	}
}

func TestSearchBodyAnchor(t *testing.T) {
	e := seedEngine(t)
	got, err := e.Search("body:^this", SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0] != 51 {
		t.Fatalf("body:^this = %v, want [51]", got)
	}
}

func TestSearchNotAndBoolean(t *testing.T) {
	e := seedEngine(t)
	got, err := e.Search("not sender:kosak", SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []index.ZgramId{5, 50, 51, 63, 71}
	if len(got) != len(want) {
		t.Fatalf("not sender:kosak = %v, want %v", got, want)
	}
	for _, id := range want {
		if !containsId(got, id) {
			t.Fatalf("not sender:kosak = %v, missing %d", got, id)
		}
	}
}

func TestSearchTildeMargin(t *testing.T) {
	e := seedEngine(t)
	got, err := e.Search("~you jealous~", SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0] != 50 {
		t.Fatalf("~you jealous~ = %v, want [50]", got)
	}
}

func TestSearchMetadataHasReaction(t *testing.T) {
	e := seedEngine(t)
	if err := e.IngestMetadata(index.ReactionRecord{Id: 51, Reaction: "funny", Creator: "bob", Bit: true}); err != nil {
		t.Fatalf("ingest reaction: %v", err)
	}
	got, err := e.Search(`hasreaction("funny")`, SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0] != 51 {
		t.Fatalf("hasreaction(funny) = %v, want [51]", got)
	}
}

func TestSearchMetadataZgramId(t *testing.T) {
	e := seedEngine(t)
	got, err := e.Search("zgramid(63)", SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0] != 63 {
		t.Fatalf("zgramid(63) = %v, want [63]", got)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	e := seedEngine(t)
	got, err := e.Search("", SearchOptions{Forward: true, EmptyMeansEverything: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("empty query (everything) = %v, want 7 ids", got)
	}

	got, err = e.Search("", SearchOptions{Forward: true, EmptyMeansEverything: false})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty query (nothing) = %v, want empty", got)
	}
}

func TestSearchReverseOrder(t *testing.T) {
	e := seedEngine(t)
	fwd, err := e.Search("kosak", SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	rev, err := e.Search("kosak", SearchOptions{Forward: false})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(fwd) != len(rev) {
		t.Fatalf("forward/reverse size mismatch: %v vs %v", fwd, rev)
	}
	for i := range fwd {
		if fwd[i] != rev[len(rev)-1-i] {
			t.Fatalf("reverse order mismatch: fwd=%v rev=%v", fwd, rev)
		}
	}
}

func TestSearchLooseMatchesCaseAndFuzzyVariants(t *testing.T) {
	// A plain lowercase query word compiles to all-Loose pattern characters
	// (wordsplit.Translate), which must fold in uppercase and the fixed
	// fuzzy-equivalent Unicode scalars (spec §4.1/§8) when driven through
	// iter.Pattern - not just an exact, case-sensitive trie lookup.
	e := New()
	zgrams := []index.Zephyrgram{
		{Id: 1, Sender: "dave", Instance: "chat", Body: "Kosak approved this"},
		{Id: 2, Sender: "erin", Instance: "chat", Body: "ⓚosak style points"},
		{Id: 3, Sender: "frank", Instance: "chat", Body: "nothing relevant here"},
	}
	for _, z := range zgrams {
		if err := e.Ingest(z); err != nil {
			t.Fatalf("ingest %d: %v", z.Id, err)
		}
	}
	got, err := e.Search("kosak", SearchOptions{Forward: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := []index.ZgramId{1, 2}
	if len(got) != len(want) {
		t.Fatalf("kosak (loose) = %v, want %v", got, want)
	}
	for _, id := range want {
		if !containsId(got, id) {
			t.Fatalf("kosak (loose) = %v, missing %d", got, id)
		}
	}
}

func TestStats(t *testing.T) {
	e := seedEngine(t)
	st := e.Index().Stats()
	if st.DynamicZgrams != 7 {
		t.Fatalf("Stats().DynamicZgrams = %d, want 7", st.DynamicZgrams)
	}
	if st.DynamicTrieNodes == 0 {
		t.Fatalf("Stats().DynamicTrieNodes = 0, want > 0")
	}
}
