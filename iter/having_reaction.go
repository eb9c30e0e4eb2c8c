package iter

import "github.com/kosak/z2kplus-sub000/index"

// havingReaction is the HavingReaction primitive of spec §4.4 / §6's
// hasreaction(...): emits every zgram currently carrying at least one
// active (reaction, creator) pair whose Reaction equals the target
// string - i.e. a nonzero net count for that reaction.
type havingReaction struct {
	reaction string
}

// NewHavingReaction builds the HavingReaction primitive.
func NewHavingReaction(reaction string) ZgramIterator {
	return &havingReaction{reaction: reaction}
}

func (h *havingReaction) matches(ctx *Context, off index.ZgramOff) bool {
	zi, ok := ctx.Index.GetZgramInfo(off)
	if !ok {
		return false
	}
	for _, rk := range ctx.Index.GetReactionsFor(zi.ZgramId) {
		if rk.Reaction == h.reaction {
			return true
		}
	}
	return false
}

func (h *havingReaction) CreateState(ctx *Context) interface{} { return &rankState{} }

func (h *havingReaction) GetMore(ctx *Context, st interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	return zgramRankGetMore(ctx, st, lowerBound, out, func(off index.ZgramOff) bool {
		return h.matches(ctx, off)
	})
}
