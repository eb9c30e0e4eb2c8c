package iter

import "github.com/kosak/z2kplus-sub000/index"

// popOrNot is the PopOrNot primitive of spec §4.4: a zgram matches iff
// any field selected by Populated has a nonzero word length, or any
// field selected by Unpopulated has a zero word length. PopOrNot(all,
// all) and PopOrNot(none, none) are also used as the algebra's canonical
// "everything" and "nothing" elements.
type popOrNot struct {
	populated, unpopulated index.FieldMask
}

// NewPopOrNot builds the PopOrNot primitive.
func NewPopOrNot(populated, unpopulated index.FieldMask) ZgramIterator {
	return &popOrNot{populated: populated, unpopulated: unpopulated}
}

// Everything returns the canonical "matches every zgram" iterator.
func Everything() ZgramIterator { return NewPopOrNot(index.MaskAll, index.MaskAll) }

// Nothing returns the canonical "matches no zgram" iterator.
func Nothing() ZgramIterator { return NewPopOrNot(index.MaskNone, index.MaskNone) }

func (p *popOrNot) MatchesEverything() bool {
	return p.populated == index.MaskAll && p.unpopulated == index.MaskAll
}

func (p *popOrNot) MatchesNothing() bool {
	return p.populated == index.MaskNone && p.unpopulated == index.MaskNone
}

func (p *popOrNot) matches(ctx *Context, off index.ZgramOff) bool {
	zi, ok := ctx.Index.GetZgramInfo(off)
	if !ok {
		return false
	}
	lens := [4]uint16{zi.SenderWordLength, zi.SignatureWordLength, zi.InstanceWordLength, zi.BodyWordLength}
	for t := index.FieldTag(0); int(t) < len(lens); t++ {
		l := lens[t]
		if p.populated.Contains(t) && l != 0 {
			return true
		}
		if p.unpopulated.Contains(t) && l == 0 {
			return true
		}
	}
	return false
}

func (p *popOrNot) CreateState(ctx *Context) interface{} { return &rankState{} }

func (p *popOrNot) GetMore(ctx *Context, st interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	return zgramRankGetMore(ctx, st, lowerBound, out, func(off index.ZgramOff) bool {
		return p.matches(ctx, off)
	})
}
