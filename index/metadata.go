package index

import "sort"

// reactionKey names one (reaction, creator) pair.
type reactionKey struct {
	Reaction string
	Creator  string
}

// ReactionKey is the public, sortable view of a (reaction, creator) pair.
type ReactionKey struct {
	Reaction string
	Creator  string
}

// countPoint is one entry of a per-reaction running-count timeline: as of
// ZgramId, the net count was Count (spec §3: "per-reaction counts are
// also maintained and indexed by message id for range queries").
type countPoint struct {
	Id    ZgramId
	Count int64
}

// atOrBefore returns the Count of the last point with Id <= id, and
// whether any such point exists.
func atOrBefore(points []countPoint, id ZgramId) (int64, bool) {
	i := sort.Search(len(points), func(i int) bool { return points[i].Id > id })
	if i == 0 {
		return 0, false
	}
	return points[i-1].Count, true
}

// rankLE returns the number of entries in a sorted (non-decreasing)
// ZgramId vector that are <= id — the "rank" spec §4.3 describes for
// plus-plus vectors.
func rankLE(ids []ZgramId, id ZgramId) int64 {
	return int64(sort.Search(len(ids), func(i int) bool { return ids[i] > id }))
}

// insertSorted inserts id into ids, which must already be sorted
// non-decreasing, preserving that order. Plus-plus/minus-minus vectors
// must stay sorted by Id (spec §4.3: "maintained sorted") rather than
// merely by arrival order: a revision's delta (index/dynamic.go's
// ApplyRevision) is recorded against the revised zgram's id, which is
// smaller than any id ingested since, so a plain append would leave the
// vector out of order and corrupt rankLE's binary search.
func insertSorted(ids []ZgramId, id ZgramId) []ZgramId {
	i := sort.Search(len(ids), func(i int) bool { return ids[i] > id })
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

// Metadata is one side (frozen or dynamic) of the metadata store
// described in spec §3/§4.3. ConsolidatedIndex merges a frozen and a
// dynamic Metadata per the rules in spec §9.
type Metadata struct {
	reactions      map[ZgramId]map[reactionKey]bool
	reactionCounts map[string][]countPoint // reaction -> timeline, Id ascending
	revisions      map[ZgramId][]string
	refersTo       map[ZgramId]map[ZgramId]bool
	zmojis         map[string]string
	plusPluses     map[string][]ZgramId // key -> sorted zgram ids, ascending
	minusMinuses   map[string][]ZgramId
	plusPlusKeys   map[ZgramId]map[string]bool
}

// NewMetadata returns an empty metadata store.
func NewMetadata() *Metadata {
	return &Metadata{
		reactions:      map[ZgramId]map[reactionKey]bool{},
		reactionCounts: map[string][]countPoint{},
		revisions:      map[ZgramId][]string{},
		refersTo:       map[ZgramId]map[ZgramId]bool{},
		zmojis:         map[string]string{},
		plusPluses:     map[string][]ZgramId{},
		minusMinuses:   map[string][]ZgramId{},
		plusPlusKeys:   map[ZgramId]map[string]bool{},
	}
}

// ToggleReaction compares bit against the currently effective state for
// (id, reaction, creator); a no-op if unchanged, otherwise flips it and
// updates the reaction's running-count timeline by +1 (add) or -1
// (remove) (spec §4.3).
func (m *Metadata) ToggleReaction(id ZgramId, reaction, creator string, bit bool) {
	key := reactionKey{Reaction: reaction, Creator: creator}
	perZgram, ok := m.reactions[id]
	if !ok {
		perZgram = map[reactionKey]bool{}
		m.reactions[id] = perZgram
	}
	if perZgram[key] == bit {
		return
	}
	perZgram[key] = bit

	delta := int64(1)
	if !bit {
		delta = -1
	}
	// Keep the timeline Id-ascending: a toggle on an older zgram lands in
	// the middle, and every later point's running count shifts by delta.
	timeline := m.reactionCounts[reaction]
	i := sort.Search(len(timeline), func(i int) bool { return timeline[i].Id > id })
	var prev int64
	if i > 0 {
		prev = timeline[i-1].Count
	}
	timeline = append(timeline[:i], append([]countPoint{{Id: id, Count: prev}}, timeline[i:]...)...)
	for j := i; j < len(timeline); j++ {
		timeline[j].Count += delta
	}
	m.reactionCounts[reaction] = timeline
}

// ReactionsFor returns the currently-set (reaction, creator) pairs for id.
func (m *Metadata) ReactionsFor(id ZgramId) []ReactionKey {
	perZgram := m.reactions[id]
	out := make([]ReactionKey, 0, len(perZgram))
	for k, v := range perZgram {
		if v {
			out = append(out, ReactionKey(k))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reaction != out[j].Reaction {
			return out[i].Reaction < out[j].Reaction
		}
		return out[i].Creator < out[j].Creator
	})
	return out
}

// ReactionCount returns the running count for reaction as of the last
// timeline point with Id <= relativeTo, or (0, false) if none.
func (m *Metadata) ReactionCount(reaction string, relativeTo ZgramId) (int64, bool) {
	return atOrBefore(m.reactionCounts[reaction], relativeTo)
}

// AddRevision appends core to id's ordered revision list.
func (m *Metadata) AddRevision(id ZgramId, core string) {
	m.revisions[id] = append(m.revisions[id], core)
}

// RevisionsFor returns id's ordered revision list.
func (m *Metadata) RevisionsFor(id ZgramId) []string { return m.revisions[id] }

// SetRefersTo inserts/overwrites the add/remove bit for (id, target).
func (m *Metadata) SetRefersTo(id, target ZgramId, bit bool) {
	perZgram, ok := m.refersTo[id]
	if !ok {
		perZgram = map[ZgramId]bool{}
		m.refersTo[id] = perZgram
	}
	perZgram[target] = bit
}

// RefersToFor returns the currently-true cross-reference targets for id.
func (m *Metadata) RefersToFor(id ZgramId) []ZgramId {
	perZgram := m.refersTo[id]
	out := make([]ZgramId, 0, len(perZgram))
	for target, bit := range perZgram {
		if bit {
			out = append(out, target)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetZmojis inserts/overwrites user's zmojis string.
func (m *Metadata) SetZmojis(user, s string) { m.zmojis[user] = s }

// Zmojis returns user's zmojis string, if set.
func (m *Metadata) Zmojis(user string) (string, bool) {
	s, ok := m.zmojis[user]
	return s, ok
}

// ApplyPlusPlusDeltas records the per-key deltas computed for one
// ingested record (a new zgram or a revision): d>0 inserts d copies of
// id into plusPluses[key]; d<0 inserts -d copies into minusMinuses[key];
// d==0 inserts a balanced (1,1) pair into both, to preserve dependency
// tracking (spec §4.3, §9 Open Questions). Also records key in id's
// plus-plus key set.
func (m *Metadata) ApplyPlusPlusDeltas(id ZgramId, deltas map[string]int) {
	if len(deltas) == 0 {
		return
	}
	keys, ok := m.plusPlusKeys[id]
	if !ok {
		keys = map[string]bool{}
		m.plusPlusKeys[id] = keys
	}
	for key, delta := range deltas {
		keys[key] = true
		switch {
		case delta > 0:
			for i := 0; i < delta; i++ {
				m.plusPluses[key] = insertSorted(m.plusPluses[key], id)
			}
		case delta < 0:
			for i := 0; i < -delta; i++ {
				m.minusMinuses[key] = insertSorted(m.minusMinuses[key], id)
			}
		default:
			m.plusPluses[key] = insertSorted(m.plusPluses[key], id)
			m.minusMinuses[key] = insertSorted(m.minusMinuses[key], id)
		}
	}
}

// PlusPlusKeysFor returns the set of plus-plus keys recorded for id.
func (m *Metadata) PlusPlusKeysFor(id ZgramId) []string {
	keys := m.plusPlusKeys[id]
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PlusPlusRank returns the rank (count of entries <= id) of id in key's
// plusPluses and minusMinuses vectors.
func (m *Metadata) PlusPlusRank(key string, id ZgramId) (plusRank, minusRank int64) {
	return rankLE(m.plusPluses[key], id), rankLE(m.minusMinuses[key], id)
}
