package iter

import "github.com/kosak/z2kplus-sub000/index"

// zgramIdIter is the ZgramId primitive of spec §4.4: a singleton
// iterator emitting the one zgram offset found by Find(id), if any.
type zgramIdIter struct {
	id index.ZgramId
}

// NewZgramId builds the ZgramId primitive.
func NewZgramId(id index.ZgramId) ZgramIterator {
	return &zgramIdIter{id: id}
}

func (z *zgramIdIter) CreateState(ctx *Context) interface{} {
	var vals []ZgramRel
	if off, ok := ctx.Index.Find(z.id); ok {
		vals = append(vals, ctx.ZgramRelOf(off))
	}
	return &sortedZgramState{vals: vals}
}

func (z *zgramIdIter) GetMore(ctx *Context, st interface{}, lowerBound ZgramRel, out []ZgramRel) int {
	return st.(*sortedZgramState).getMore(lowerBound, out)
}
