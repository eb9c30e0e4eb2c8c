package index

import (
	"github.com/kosak/z2kplus-sub000/trie"
	"github.com/kosak/z2kplus-sub000/wordsplit"
)

// DynamicIndex is the mutable, in-memory segment of the two-tier index
// (spec §3 "dynamic segment"). It is not durable: persisting it is the
// offline log/checkpoint machinery's job, out of scope here.
type DynamicIndex struct {
	Trie  *trie.DynamicNode
	Zgrams []ZgramInfo
	Words  []WordInfo
	Meta   *Metadata

	// KeepOriginalText, when set, retains each field's original surface
	// text alongside its split words, so callers can reconstruct a
	// zgram's text without re-reading the (out-of-scope) log. Off by
	// default to avoid doubling memory for callers that don't need it.
	KeepOriginalText bool
	text             map[ZgramId][4]string

	// lastBody tracks each zgram's most recently known body text,
	// independent of KeepOriginalText: plus-plus revision diffing (spec
	// §4.3) needs the previous body regardless of whether the caller
	// wants full field-text retention.
	lastBody map[ZgramId]string

	hasLast bool
	lastId  ZgramId
}

// DynamicIndexOption configures a new DynamicIndex.
type DynamicIndexOption func(*DynamicIndex)

// WithOriginalText enables original-text retention (see KeepOriginalText).
func WithOriginalText() DynamicIndexOption {
	return func(d *DynamicIndex) { d.KeepOriginalText = true }
}

// NewDynamicIndex returns an empty dynamic index.
func NewDynamicIndex(opts ...DynamicIndexOption) *DynamicIndex {
	d := &DynamicIndex{
		Trie:     trie.NewDynamicRoot(),
		Meta:     NewMetadata(),
		lastBody: map[ZgramId]string{},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.KeepOriginalText {
		d.text = map[ZgramId][4]string{}
	}
	return d
}

// Ingest appends one zephyrgram (spec §3, §4.3): it must strictly exceed
// every previously ingested id, each of its four fields is split into
// words and indexed, a ZgramInfo row is appended recording the field
// boundaries, and any "key++"/"key--" tokens in its body update the
// plus-plus vectors.
func (d *DynamicIndex) Ingest(z Zephyrgram) error {
	if d.hasLast && z.Id <= d.lastId {
		return &IngestionError{ZgramId: z.Id, Err: ErrIngestionOutOfOrder}
	}

	fields := [numFieldTags]string{z.Sender, z.Signature, z.Instance, z.Body}
	start := WordOff(len(d.Words))
	var lens [numFieldTags]uint16

	for tag := FieldTag(0); tag < numFieldTags; tag++ {
		words := wordsplit.Split(fields[tag])
		if len(words) > 0xFFFF {
			return &IngestionError{ZgramId: z.Id, Err: ErrFieldOverflow}
		}
		lens[tag] = uint16(len(words))
		for _, w := range words {
			off := WordOff(len(d.Words))
			d.Words = append(d.Words, WordInfo{ZgramOffset: ZgramOff(len(d.Zgrams)), Tag: tag})
			d.Trie.Insert([]rune(w), trie.WordOff(off))
		}
	}

	d.Zgrams = append(d.Zgrams, ZgramInfo{
		TimeSecs:            z.TimeSecs,
		LocationInLog:       z.LocationInLog,
		StartingWordOffset:  start,
		ZgramId:             z.Id,
		SenderWordLength:    lens[Sender],
		SignatureWordLength: lens[Signature],
		InstanceWordLength:  lens[Instance],
		BodyWordLength:      lens[Body],
	})

	if deltas := scanPlusPlusDeltas(z.Body); len(deltas) > 0 {
		d.Meta.ApplyPlusPlusDeltas(z.Id, deltas)
	}

	if d.KeepOriginalText {
		d.text[z.Id] = [4]string{z.Sender, z.Signature, z.Instance, z.Body}
	}
	d.lastBody[z.Id] = z.Body

	d.hasLast = true
	d.lastId = z.Id
	return nil
}

// OriginalText returns the retained field text for id, if
// KeepOriginalText was enabled and id was ingested since.
func (d *DynamicIndex) OriginalText(id ZgramId) (sender, signature, instance, body string, ok bool) {
	if d.text == nil {
		return "", "", "", "", false
	}
	t, ok := d.text[id]
	if !ok {
		return "", "", "", "", false
	}
	return t[0], t[1], t[2], t[3], true
}

// HasZgram reports whether id was ingested into this segment.
func (d *DynamicIndex) HasZgram(id ZgramId) bool {
	for i := range d.Zgrams {
		if d.Zgrams[i].ZgramId == id {
			return true
		}
	}
	return false
}

// ApplyReaction applies a reaction toggle record; id must already exist.
func (d *DynamicIndex) ApplyReaction(r ReactionRecord) {
	d.Meta.ToggleReaction(r.Id, r.Reaction, r.Creator, r.Bit)
}

// ApplyRevision appends a revision and updates plus-plus bookkeeping by
// diffing the previous body text against the new one (spec §4.3): the
// previous text is the most recently seen body for r.Id, whether that
// came from Ingest or an earlier ApplyRevision. A revision whose zgram
// was ingested into a different (e.g. frozen) segment has no prior body
// on this side and diffs against "", which is the best this segment can
// do without re-reading the out-of-scope log.
func (d *DynamicIndex) ApplyRevision(r ZgramRevisionRecord) {
	prev := d.lastBody[r.Id]
	d.Meta.AddRevision(r.Id, r.Core)
	if deltas := combinedPlusPlusDeltas(prev, r.Core); len(deltas) > 0 {
		d.Meta.ApplyPlusPlusDeltas(r.Id, deltas)
	}
	d.lastBody[r.Id] = r.Core
}

// ApplyRefersTo applies a cross-reference record.
func (d *DynamicIndex) ApplyRefersTo(r ZgramRefersToRecord) {
	d.Meta.SetRefersTo(r.Id, r.Target, r.Bit)
}

// ApplyZmojis applies a zmojis record.
func (d *DynamicIndex) ApplyZmojis(r ZmojisRecord) {
	d.Meta.SetZmojis(r.User, r.Zmojis)
}
