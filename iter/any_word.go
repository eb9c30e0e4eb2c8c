package iter

import "github.com/kosak/z2kplus-sub000/index"

// anyWord is the AnyWord primitive of spec §4.4: emits every word whose
// field tag is in mask.
type anyWord struct {
	mask index.FieldMask
}

// NewAnyWord builds the AnyWord primitive.
func NewAnyWord(mask index.FieldMask) WordIterator {
	return &anyWord{mask: mask}
}

func (a *anyWord) MatchesAnyWord() (index.FieldMask, bool) { return a.mask, true }

func (a *anyWord) CreateState(ctx *Context) interface{} { return &rankState{} }

func (a *anyWord) GetMore(ctx *Context, st interface{}, lowerBound WordRel, out []WordRel) int {
	return wordRankGetMore(ctx, st, lowerBound, out, func(off index.WordOff) bool {
		wi, ok := ctx.Index.GetWordInfo(off)
		return ok && a.mask.Contains(wi.Tag)
	})
}
