package index

import "sort"

// ConsolidatedIndex presents a frozen and a dynamic segment as a single
// logical index, merging every read according to the rules in spec §9:
// dynamic dominates for reactions and refers-to, dynamic appends for
// revisions, dynamic-first-with-frozen-fallback for zmojis and reaction
// counts, and a sum of ranks across all four plus-plus vectors for
// plus-plus counts.
type ConsolidatedIndex struct {
	Frozen  *FrozenIndex
	Dynamic *DynamicIndex
}

// NewConsolidatedIndex pairs a frozen segment (use NewEmptyFrozenIndex if
// none has been checkpointed yet) with a live dynamic segment.
func NewConsolidatedIndex(frozen *FrozenIndex, dynamic *DynamicIndex) *ConsolidatedIndex {
	return &ConsolidatedIndex{Frozen: frozen, Dynamic: dynamic}
}

// IngestZephyrgram appends z to the dynamic segment.
func (c *ConsolidatedIndex) IngestZephyrgram(z Zephyrgram) error {
	return c.Dynamic.Ingest(z)
}

func (c *ConsolidatedIndex) hasZgram(id ZgramId) bool {
	if c.Dynamic.HasZgram(id) {
		return true
	}
	for i := range c.Frozen.Zgrams {
		if c.Frozen.Zgrams[i].ZgramId == id {
			return true
		}
	}
	return false
}

// IngestMetadata applies one metadata record to the dynamic segment,
// after validating that it refers to a known zgram id (spec §4.3, §7).
func (c *ConsolidatedIndex) IngestMetadata(rec MetadataRecord) error {
	var id ZgramId
	switch r := rec.(type) {
	case ReactionRecord:
		id = r.Id
	case ZgramRevisionRecord:
		id = r.Id
	case ZgramRefersToRecord:
		id = r.Id
	case ZmojisRecord:
		id = 0 // zmojis records are keyed by user, not zgram id
	}
	if _, ok := rec.(ZmojisRecord); !ok {
		if !c.hasZgram(id) {
			return &IngestionError{ZgramId: id, Err: ErrUnknownZgramId}
		}
	}

	switch r := rec.(type) {
	case ReactionRecord:
		c.Dynamic.ApplyReaction(r)
	case ZgramRevisionRecord:
		c.Dynamic.ApplyRevision(r)
	case ZgramRefersToRecord:
		c.Dynamic.ApplyRefersTo(r)
	case ZmojisRecord:
		c.Dynamic.ApplyZmojis(r)
	}
	return nil
}

// NumZgrams is the total count across both segments.
func (c *ConsolidatedIndex) NumZgrams() int {
	return len(c.Frozen.Zgrams) + len(c.Dynamic.Zgrams)
}

// NumWords is the total word-info count across both segments.
func (c *ConsolidatedIndex) NumWords() int {
	return len(c.Frozen.Words) + len(c.Dynamic.Words)
}

// GetWordInfo looks up the WordInfo at off, a coordinate spanning the
// frozen segment followed by the dynamic segment, mirroring
// GetZgramInfo's split.
func (c *ConsolidatedIndex) GetWordInfo(off WordOff) (WordInfo, bool) {
	if int(off) < len(c.Frozen.Words) {
		return c.Frozen.Words[off], true
	}
	i := int(off) - len(c.Frozen.Words)
	if i < 0 || i >= len(c.Dynamic.Words) {
		return WordInfo{}, false
	}
	// Dynamic rows store segment-local offsets; rebase to the combined one.
	wi := c.Dynamic.Words[i]
	wi.ZgramOffset += ZgramOff(len(c.Frozen.Zgrams))
	return wi, true
}

// GetZgramInfo looks up the ZgramInfo at off, a coordinate spanning the
// frozen segment followed by the dynamic segment (frozen offsets are
// numerically lower, per the checkpoint-then-append model in spec §3).
func (c *ConsolidatedIndex) GetZgramInfo(off ZgramOff) (ZgramInfo, bool) {
	if int(off) < len(c.Frozen.Zgrams) {
		return c.Frozen.Zgrams[off], true
	}
	i := int(off) - len(c.Frozen.Zgrams)
	if i < 0 || i >= len(c.Dynamic.Zgrams) {
		return ZgramInfo{}, false
	}
	// Dynamic rows store segment-local offsets; rebase to the combined one.
	zi := c.Dynamic.Zgrams[i]
	zi.StartingWordOffset += WordOff(len(c.Frozen.Words))
	return zi, true
}

// Find returns the ZgramOff of id, searching the frozen segment then the
// dynamic segment (both are id-ascending per the ingestion invariant).
func (c *ConsolidatedIndex) Find(id ZgramId) (ZgramOff, bool) {
	fz := c.Frozen.Zgrams
	i := sort.Search(len(fz), func(i int) bool { return fz[i].ZgramId >= id })
	if i < len(fz) && fz[i].ZgramId == id {
		return ZgramOff(i), true
	}
	dz := c.Dynamic.Zgrams
	j := sort.Search(len(dz), func(j int) bool { return dz[j].ZgramId >= id })
	if j < len(dz) && dz[j].ZgramId == id {
		return ZgramOff(len(fz) + j), true
	}
	return 0, false
}

// LowerBound returns the smallest ZgramOff whose TimeSecs is >= ts.
func (c *ConsolidatedIndex) LowerBound(ts int64) ZgramOff {
	fz := c.Frozen.Zgrams
	if len(fz) == 0 || fz[len(fz)-1].TimeSecs < ts {
		dz := c.Dynamic.Zgrams
		j := sort.Search(len(dz), func(j int) bool { return dz[j].TimeSecs >= ts })
		return ZgramOff(len(fz) + j)
	}
	i := sort.Search(len(fz), func(i int) bool { return fz[i].TimeSecs >= ts })
	return ZgramOff(i)
}

// GetReactionsFor returns the reactions currently set for id: dynamic
// entries win outright when id has any dynamic reaction state at all,
// otherwise the frozen entries are used (spec §9: "dynamic dominates").
func (c *ConsolidatedIndex) GetReactionsFor(id ZgramId) []ReactionKey {
	if d := c.Dynamic.Meta.ReactionsFor(id); len(d) > 0 || c.dynamicHasReactionState(id) {
		return d
	}
	return c.Frozen.Meta.ReactionsFor(id)
}

func (c *ConsolidatedIndex) dynamicHasReactionState(id ZgramId) bool {
	_, ok := c.Dynamic.Meta.reactions[id]
	return ok
}

// GetReactionCount returns reaction's running count as of relativeTo:
// consult the dynamic timeline first, falling back to frozen only if
// dynamic has no point at or before relativeTo (spec §9).
func (c *ConsolidatedIndex) GetReactionCount(reaction string, relativeTo ZgramId) int64 {
	if n, ok := c.Dynamic.Meta.ReactionCount(reaction, relativeTo); ok {
		return n
	}
	if n, ok := c.Frozen.Meta.ReactionCount(reaction, relativeTo); ok {
		return n
	}
	return 0
}

// GetZgramRevsFor returns id's full ordered revision list: frozen
// revisions followed by dynamic ones appended after them (spec §9:
// "dynamic appends").
func (c *ConsolidatedIndex) GetZgramRevsFor(id ZgramId) []string {
	frozen := c.Frozen.Meta.RevisionsFor(id)
	dynamic := c.Dynamic.Meta.RevisionsFor(id)
	if len(frozen) == 0 {
		return dynamic
	}
	if len(dynamic) == 0 {
		return frozen
	}
	out := make([]string, 0, len(frozen)+len(dynamic))
	out = append(out, frozen...)
	out = append(out, dynamic...)
	return out
}

// GetRefersToFor returns the cross-reference targets currently set for
// id, with dynamic dominating exactly as reactions do.
func (c *ConsolidatedIndex) GetRefersToFor(id ZgramId) []ZgramId {
	if d := c.Dynamic.Meta.RefersToFor(id); len(d) > 0 || c.dynamicHasRefersToState(id) {
		return d
	}
	return c.Frozen.Meta.RefersToFor(id)
}

func (c *ConsolidatedIndex) dynamicHasRefersToState(id ZgramId) bool {
	_, ok := c.Dynamic.Meta.refersTo[id]
	return ok
}

// GetZmojis returns user's zmojis string, dynamic first, frozen fallback.
func (c *ConsolidatedIndex) GetZmojis(user string) (string, bool) {
	if s, ok := c.Dynamic.Meta.Zmojis(user); ok {
		return s, true
	}
	return c.Frozen.Meta.Zmojis(user)
}

// GetPlusPlusCountAfter returns key's net score as of zgramId: the sum
// of ranks (entries with ZgramId <= zgramId) across the frozen and
// dynamic plus vectors, minus the same sum across the minus vectors —
// f+ − f− + d+ − d− (spec §4.3, §9).
func (c *ConsolidatedIndex) GetPlusPlusCountAfter(zgramId ZgramId, key string) int64 {
	fp, fm := c.Frozen.Meta.PlusPlusRank(key, zgramId)
	dp, dm := c.Dynamic.Meta.PlusPlusRank(key, zgramId)
	return fp - fm + dp - dm
}

// GetPlusPlusKeysFor returns the union of plus-plus keys recorded for id
// across both segments.
func (c *ConsolidatedIndex) GetPlusPlusKeysFor(id ZgramId) []string {
	seen := map[string]bool{}
	for _, k := range c.Frozen.Meta.PlusPlusKeysFor(id) {
		seen[k] = true
	}
	for _, k := range c.Dynamic.Meta.PlusPlusKeysFor(id) {
		seen[k] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
