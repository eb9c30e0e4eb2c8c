package iter

import "github.com/kosak/z2kplus-sub000/index"

// ZgramRel is a direction-aware coordinate over the zgram-info table: it
// equals the ZgramOff in forward mode and maxRel-ZgramOff in reverse
// mode, so every compound iterator can treat "increasing" uniformly
// regardless of query direction (spec §4.4, GLOSSARY "zgramRel").
type ZgramRel uint32

// WordRel is ZgramRel's analog over the word-info table.
type WordRel uint32

// maxRel is UINT32_MAX - 1, the ceiling spec §4.4 defines reverse
// coordinates against (leaving room for the all-ones value as a
// distinguishable out-of-range sentinel if a caller ever needs one).
const maxRel uint32 = ^uint32(0) - 1

// Context carries the one ConsolidatedIndex a query executes against and
// its direction flag (spec §4.4 "Iterator context"). It is constructed
// once per query and shared read-only by every iterator state in that
// query's tree.
type Context struct {
	Index   *index.ConsolidatedIndex
	Forward bool
}

// ZgramRelOf converts an absolute zgram offset to this context's
// direction-aware coordinate.
func (c *Context) ZgramRelOf(off index.ZgramOff) ZgramRel {
	if c.Forward {
		return ZgramRel(off)
	}
	return ZgramRel(maxRel - uint32(off))
}

// ZgramOffOfRel is ZgramRelOf's inverse.
func (c *Context) ZgramOffOfRel(rel ZgramRel) index.ZgramOff {
	if c.Forward {
		return index.ZgramOff(rel)
	}
	return index.ZgramOff(maxRel - uint32(rel))
}

// WordRelOf converts an absolute word offset to this context's
// direction-aware coordinate.
func (c *Context) WordRelOf(off index.WordOff) WordRel {
	if c.Forward {
		return WordRel(off)
	}
	return WordRel(maxRel - uint32(off))
}

// WordOffOfRel is WordRelOf's inverse.
func (c *Context) WordOffOfRel(rel WordRel) index.WordOff {
	if c.Forward {
		return index.WordOff(rel)
	}
	return index.WordOff(maxRel - uint32(rel))
}

// zgramBase is the constant offset such that ZgramRelOfRank(rank) =
// ZgramRel(rank + zgramBase): in forward mode rank 0 is off 0 (base 0);
// in reverse mode rank 0 is the highest off, n-1 (base maxRel-n+1). Rank
// is a dense [0,n) enumeration index over the zgram universe in
// ascending-rel order, used by iterators (PopOrNot, Not, HavingReaction)
// that must walk "every zgram" in direction-aware order.
func (c *Context) zgramBase() int {
	if c.Forward {
		return 0
	}
	return int(maxRel) - c.Index.NumZgrams() + 1
}

// ZgramRankOf returns the smallest rank whose rel is >= rel (may be
// negative or >= NumZgrams(); callers clamp as needed).
func (c *Context) ZgramRankOf(rel ZgramRel) int {
	return int(rel) - c.zgramBase()
}

// ZgramRelOfRank is ZgramRankOf's inverse.
func (c *Context) ZgramRelOfRank(rank int) ZgramRel {
	return ZgramRel(rank + c.zgramBase())
}

// ZgramOffOfRank returns the absolute offset visited at rank in
// ascending-rel order.
func (c *Context) ZgramOffOfRank(rank int) index.ZgramOff {
	if c.Forward {
		return index.ZgramOff(rank)
	}
	return index.ZgramOff(c.Index.NumZgrams() - 1 - rank)
}

func (c *Context) wordBase() int {
	if c.Forward {
		return 0
	}
	return int(maxRel) - c.Index.NumWords() + 1
}

// WordRankOf is ZgramRankOf's word-table analog.
func (c *Context) WordRankOf(rel WordRel) int {
	return int(rel) - c.wordBase()
}

// WordRelOfRank is WordRankOf's inverse.
func (c *Context) WordRelOfRank(rank int) WordRel {
	return WordRel(rank + c.wordBase())
}

// WordOffOfRank returns the absolute word offset visited at rank in
// ascending-rel order.
func (c *Context) WordOffOfRank(rank int) index.WordOff {
	if c.Forward {
		return index.WordOff(rank)
	}
	return index.WordOff(c.Index.NumWords() - 1 - rank)
}
