// Package zg is the public facade of the search engine: it ties the
// trie (package trie), index (package index), iterator algebra (package
// iter), and query parser (package query) into a single entry point
// named for "zgram", the unit of text this engine indexes.
//
// Basic usage:
//
//	e := zg.New()
//	e.Ingest(index.Zephyrgram{Id: 1, Body: "hello world"})
//	hits, err := e.Search("hello", zg.SearchOptions{Forward: true})
package zg

import (
	"github.com/kosak/z2kplus-sub000/index"
	"github.com/kosak/z2kplus-sub000/iter"
	"github.com/kosak/z2kplus-sub000/query"
)

// Engine wraps a ConsolidatedIndex with the query parser and iterator
// context needed to turn surface query text into ordered zgram ids.
type Engine struct {
	idx        *index.ConsolidatedIndex
	nearMargin int
}

type config struct {
	frozen           *index.FrozenIndex
	nearMargin       int
	keepOriginalText bool
}

// Option configures a new Engine.
type Option func(*config)

// WithFrozen supplies a pre-built frozen segment (e.g. from
// index.FreezeIndex) instead of New's empty one.
func WithFrozen(frozen *index.FrozenIndex) Option {
	return func(c *config) { c.frozen = frozen }
}

// WithNearMargin overrides the default adjacency slack a tilded query
// group uses (spec §4.6; default query.DefaultNearMargin).
func WithNearMargin(margin int) Option {
	return func(c *config) { c.nearMargin = margin }
}

// WithOriginalText retains each ingested zgram's pre-split field text,
// enabling ConsolidatedIndex.GetZgramText (index's ZgramText
// supplement).
func WithOriginalText() Option {
	return func(c *config) { c.keepOriginalText = true }
}

// New builds an Engine with an empty frozen segment (unless WithFrozen
// is given) and a fresh dynamic segment.
func New(opts ...Option) *Engine {
	cfg := config{nearMargin: query.DefaultNearMargin}
	for _, o := range opts {
		o(&cfg)
	}
	var dynOpts []index.DynamicIndexOption
	if cfg.keepOriginalText {
		dynOpts = append(dynOpts, index.WithOriginalText())
	}
	frozen := cfg.frozen
	if frozen == nil {
		frozen = index.NewEmptyFrozenIndex()
	}
	return &Engine{
		idx:        index.NewConsolidatedIndex(frozen, index.NewDynamicIndex(dynOpts...)),
		nearMargin: cfg.nearMargin,
	}
}

// Index exposes the underlying ConsolidatedIndex for callers that need
// direct access (e.g. Stats(), metadata accessors) beyond Search.
func (e *Engine) Index() *index.ConsolidatedIndex { return e.idx }

// Ingest appends a zgram to the dynamic segment.
func (e *Engine) Ingest(z index.Zephyrgram) error {
	return e.idx.IngestZephyrgram(z)
}

// IngestMetadata applies one metadata record (spec §4.3).
func (e *Engine) IngestMetadata(rec index.MetadataRecord) error {
	return e.idx.IngestMetadata(rec)
}

// SearchOptions configures one Search call.
type SearchOptions struct {
	// Forward runs the query in ascending-id order; false runs it in
	// descending-id (reverse chronological) order (spec §4.4, §9).
	Forward bool
	// EmptyMeansEverything controls what an empty query string yields:
	// every zgram (true) or none (false) (spec §4.6).
	EmptyMeansEverything bool
	// StartAt, if nonzero and present in the index, begins results at
	// or after (in the requested direction) this zgram id rather than
	// from the very start of the corpus.
	StartAt index.ZgramId
	// Capacity bounds how many ids a single GetMore probe pulls per
	// internal batch; zero uses a sensible default.
	Capacity int
}

// Search parses q and drains every matching zgram id in the requested
// direction (spec §5's "getMore returns at most capacity results per
// call" is the batching strategy used internally; Search itself drains
// it fully rather than exposing the batches).
func (e *Engine) Search(q string, opts SearchOptions) ([]index.ZgramId, error) {
	it, err := query.Parse(q, opts.EmptyMeansEverything, e.nearMargin)
	if err != nil {
		return nil, err
	}
	return e.drain(it, opts), nil
}

// Iterator parses q into its iterator tree without draining it, for
// callers that want to pull results themselves via package iter
// directly (e.g. to interleave with other work or apply their own
// backpressure, per spec §5's cooperative-cancellation model).
func (e *Engine) Iterator(q string, emptyMeansEverything bool) (iter.ZgramIterator, error) {
	return query.Parse(q, emptyMeansEverything, e.nearMargin)
}

// Context builds the direction-aware iterator context Search uses
// internally; exposed for callers driving an Iterator by hand.
func (e *Engine) Context(forward bool) *iter.Context {
	return &iter.Context{Index: e.idx, Forward: forward}
}

func (e *Engine) drain(it iter.ZgramIterator, opts SearchOptions) []index.ZgramId {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = 128
	}
	ctx := e.Context(opts.Forward)
	st := it.CreateState(ctx)
	buf := make([]iter.ZgramRel, capacity)

	next := iter.ZgramRel(0)
	if opts.StartAt != 0 {
		if off, ok := e.idx.Find(opts.StartAt); ok {
			next = ctx.ZgramRelOf(off)
		}
	}

	var ids []index.ZgramId
	for {
		n := it.GetMore(ctx, st, next, buf)
		if n == 0 {
			break
		}
		for i := 0; i < n; i++ {
			off := ctx.ZgramOffOfRel(buf[i])
			if zi, ok := e.idx.GetZgramInfo(off); ok {
				ids = append(ids, zi.ZgramId)
			}
		}
		next = buf[n-1] + 1
	}
	return ids
}
