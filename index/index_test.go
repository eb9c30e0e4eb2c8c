package index

import (
	"testing"

	"github.com/kosak/z2kplus-sub000/trie"
)

func mkZgram(id ZgramId, body string) Zephyrgram {
	return Zephyrgram{
		Id:        id,
		TimeSecs:  int64(id),
		Sender:    "alice",
		Signature: "Alice A",
		Instance:  "general",
		Body:      body,
	}
}

func TestIngestRejectsOutOfOrder(t *testing.T) {
	d := NewDynamicIndex()
	if err := d.Ingest(mkZgram(5, "hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.Ingest(mkZgram(5, "again")); err == nil {
		t.Fatalf("expected ErrIngestionOutOfOrder for a repeated id")
	}
	if err := d.Ingest(mkZgram(3, "earlier")); err == nil {
		t.Fatalf("expected ErrIngestionOutOfOrder for a lesser id")
	}
}

func TestIngestIndexesWords(t *testing.T) {
	d := NewDynamicIndex()
	if err := d.Ingest(mkZgram(1, "hello world")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := trie.Find(d.Trie, []rune("hello"))
	if !ok || len(got) != 1 {
		t.Fatalf("expected exactly one occurrence of %q, got %v ok=%v", "hello", got, ok)
	}
}

func TestConsolidatedReactionsDynamicDominates(t *testing.T) {
	fd := NewDynamicIndex()
	if err := fd.Ingest(mkZgram(1, "hi")); err != nil {
		t.Fatal(err)
	}
	fd.ApplyReaction(ReactionRecord{Id: 1, Reaction: "+1", Creator: "bob", Bit: true})
	frozen := FreezeIndex(fd)

	dyn := NewDynamicIndex()
	c := NewConsolidatedIndex(frozen, dyn)

	got := c.GetReactionsFor(1)
	if len(got) != 1 || got[0].Reaction != "+1" {
		t.Fatalf("expected frozen reaction to surface before any dynamic state, got %v", got)
	}

	if err := c.IngestMetadata(ReactionRecord{Id: 1, Reaction: "+1", Creator: "bob", Bit: false}); err != nil {
		t.Fatal(err)
	}
	got = c.GetReactionsFor(1)
	if len(got) != 0 {
		t.Fatalf("expected dynamic removal to dominate the frozen reaction, got %v", got)
	}
}

func TestConsolidatedRevisionsAppend(t *testing.T) {
	fd := NewDynamicIndex()
	if err := fd.Ingest(mkZgram(1, "v1")); err != nil {
		t.Fatal(err)
	}
	fd.Meta.AddRevision(1, "v1-edited")
	frozen := FreezeIndex(fd)

	dyn := NewDynamicIndex()
	c := NewConsolidatedIndex(frozen, dyn)
	if err := c.IngestMetadata(ZgramRevisionRecord{Id: 1, Core: "v2"}); err != nil {
		t.Fatal(err)
	}
	revs := c.GetZgramRevsFor(1)
	want := []string{"v1-edited", "v2"}
	if len(revs) != len(want) || revs[0] != want[0] || revs[1] != want[1] {
		t.Fatalf("GetZgramRevsFor = %v, want %v", revs, want)
	}
}

func TestPlusPlusEndToEnd(t *testing.T) {
	fd := NewDynamicIndex()
	dyn := fd
	c := NewConsolidatedIndex(NewEmptyFrozenIndex(), dyn)

	if err := c.IngestZephyrgram(mkZgram(1, "foo++")); err != nil {
		t.Fatal(err)
	}
	if err := c.IngestMetadata(ZgramRevisionRecord{Id: 1, Core: "foo--"}); err != nil {
		t.Fatal(err)
	}

	got := c.GetPlusPlusCountAfter(1, "foo")
	if got != -1 {
		t.Fatalf("GetPlusPlusCountAfter(1, foo) = %d, want -1", got)
	}

	keys := c.GetPlusPlusKeysFor(1)
	if len(keys) != 1 || keys[0] != "foo" {
		t.Fatalf("GetPlusPlusKeysFor(1) = %v, want [foo]", keys)
	}
}

func TestPlusPlusVectorStaysSortedAcrossRevision(t *testing.T) {
	fd := NewDynamicIndex()
	c := NewConsolidatedIndex(NewEmptyFrozenIndex(), fd)

	if err := c.IngestZephyrgram(mkZgram(1, "bar")); err != nil {
		t.Fatal(err)
	}
	if err := c.IngestZephyrgram(mkZgram(5, "foo++")); err != nil {
		t.Fatal(err)
	}
	if err := c.IngestZephyrgram(mkZgram(10, "foo++")); err != nil {
		t.Fatal(err)
	}
	// Revising zgram 1 - already the smallest ingested id - to add a
	// "foo++" applies its delta against id 1, after ids 5 and 10 are
	// already in the vector. A plain append would leave plusPluses["foo"]
	// as [5, 10, 1], corrupting rankLE's binary search.
	if err := c.IngestMetadata(ZgramRevisionRecord{Id: 1, Core: "foo++"}); err != nil {
		t.Fatal(err)
	}

	if got := c.GetPlusPlusCountAfter(7, "foo"); got != 2 {
		t.Fatalf("GetPlusPlusCountAfter(7, foo) = %d, want 2 (ids 1 and 5 are <= 7)", got)
	}
	if got := c.GetPlusPlusCountAfter(0, "foo"); got != 0 {
		t.Fatalf("GetPlusPlusCountAfter(0, foo) = %d, want 0 (no plus-plus id <= 0)", got)
	}
	if got := c.GetPlusPlusCountAfter(10, "foo"); got != 3 {
		t.Fatalf("GetPlusPlusCountAfter(10, foo) = %d, want 3", got)
	}
}

func TestIngestMetadataRejectsUnknownZgram(t *testing.T) {
	c := NewConsolidatedIndex(NewEmptyFrozenIndex(), NewDynamicIndex())
	err := c.IngestMetadata(ReactionRecord{Id: 99, Reaction: "+1", Creator: "bob", Bit: true})
	if err == nil {
		t.Fatalf("expected ErrUnknownZgramId for a reaction on an unknown zgram")
	}
}
