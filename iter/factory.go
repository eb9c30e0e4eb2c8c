package iter

// NewAnd builds the And compound, applying spec §4.4's algebraic
// rewrites: nested Ands are flattened, a matchesNothing child makes the
// whole conjunction Nothing(), and matchesEverything children are
// dropped. Zero surviving children yields Everything(); one yields that
// child directly.
func NewAnd(children ...ZgramIterator) ZgramIterator {
	var flat []ZgramIterator
	stack := append([]ZgramIterator{}, children...)
	for len(stack) > 0 {
		c := stack[0]
		stack = stack[1:]
		if r, ok := c.(andReleaser); ok {
			if kids, ok2 := r.TryReleaseAndChildren(); ok2 {
				stack = append(append([]ZgramIterator{}, kids...), stack...)
				continue
			}
		}
		if matchesNothing(c) {
			return Nothing()
		}
		if matchesEverything(c) {
			continue
		}
		flat = append(flat, c)
	}
	switch len(flat) {
	case 0:
		return Everything()
	case 1:
		return flat[0]
	default:
		return &andIter{children: flat}
	}
}

// NewOr builds the Or compound: nested Ors are flattened, a
// matchesEverything child makes the whole disjunction Everything(), and
// matchesNothing children are dropped. Zero surviving children yields
// Nothing(); one yields that child directly.
func NewOr(children ...ZgramIterator) ZgramIterator {
	var flat []ZgramIterator
	stack := append([]ZgramIterator{}, children...)
	for len(stack) > 0 {
		c := stack[0]
		stack = stack[1:]
		if r, ok := c.(orReleaser); ok {
			if kids, ok2 := r.TryReleaseOrChildren(); ok2 {
				stack = append(append([]ZgramIterator{}, kids...), stack...)
				continue
			}
		}
		if matchesEverything(c) {
			return Everything()
		}
		if matchesNothing(c) {
			continue
		}
		flat = append(flat, c)
	}
	switch len(flat) {
	case 0:
		return Nothing()
	case 1:
		return flat[0]
	default:
		return &orIter{children: flat}
	}
}

// NewNot builds the Not compound, collapsing Not(Not(x)) to x per spec
// §4.4.
func NewNot(child ZgramIterator) ZgramIterator {
	if n, ok := child.(negator); ok {
		if inner, ok2 := n.TryNegate(); ok2 {
			return inner
		}
	}
	return &notIter{child: child}
}
