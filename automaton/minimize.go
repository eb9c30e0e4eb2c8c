package automaton

import "sort"

// rawState is a pre-minimization DFA state produced by subset
// construction in Compile: a set of concrete labeled transitions plus an
// otherwise (default) transition, both given as indices into the raw
// state slice (-1 meaning dead/no edge).
type rawState struct {
	accepting bool
	labels    []rune
	target    map[rune]int
	otherwise int
}

// selfSentinel stands in for "this transition targets its own state" when
// computing a minimization signature, so that two different self-looping
// states compare equal regardless of which numeric state they are (spec
// §9, "Cyclic graphs in DFA minimization").
const selfSentinel = -2

// minimize folds equivalent raw states via Moore-style partition
// refinement: states start partitioned by their accepting flag, then
// repeatedly split any class whose members disagree on (per-label target
// class, otherwise target class) until the partition stops changing.
// Self-referencing transitions are canonicalized to selfSentinel before
// comparison so that a state which only loops back to itself is
// equivalent to any other state with the same shape, independent of
// identity.
func minimize(raw []rawState, start int) *DFA {
	n := len(raw)
	class := make([]int, n)
	for i, r := range raw {
		if r.accepting {
			class[i] = 1
		}
	}

	type sigEntry struct {
		label rune
		class int
	}
	sigOf := func(i int) string {
		r := raw[i]
		entries := make([]sigEntry, len(r.labels))
		for j, lbl := range r.labels {
			t := r.target[lbl]
			entries[j] = sigEntry{label: lbl, class: classOrSelf(class, t, i)}
		}
		var b []byte
		if r.accepting {
			b = append(b, 'A')
		} else {
			b = append(b, 'a')
		}
		b = appendInt(b, classOrSelf(class, r.otherwise, i))
		for _, e := range entries {
			b = append(b, '|')
			b = appendInt(b, int(e.label))
			b = append(b, ':')
			b = appendInt(b, e.class)
		}
		return string(b)
	}

	for {
		sigToClass := map[string]int{}
		newClass := make([]int, n)
		for i := 0; i < n; i++ {
			s := sigOf(i)
			c, ok := sigToClass[s]
			if !ok {
				c = len(sigToClass)
				sigToClass[s] = c
			}
			newClass[i] = c
		}
		changed := false
		for i := 0; i < n; i++ {
			if newClass[i] != class[i] {
				changed = true
				break
			}
		}
		class = newClass
		if !changed {
			break
		}
	}

	numClasses := 0
	for _, c := range class {
		if c+1 > numClasses {
			numClasses = c + 1
		}
	}
	states := make([]State, numClasses)
	done := make([]bool, numClasses)
	for i := 0; i < n; i++ {
		c := class[i]
		if done[c] {
			continue
		}
		done[c] = true
		r := raw[i]
		trans := make([]Transition, 0, len(r.labels))
		for _, lbl := range r.labels {
			t := r.target[lbl]
			trans = append(trans, Transition{Label: lbl, Target: classTarget(class, t)})
		}
		sort.Slice(trans, func(a, b int) bool { return trans[a].Label < trans[b].Label })
		states[c] = State{
			Accepting:   r.accepting,
			Transitions: trans,
			Otherwise:   classTarget(class, r.otherwise),
		}
	}

	return &DFA{states: states, start: StateID(class[start])}
}

// classOrSelf returns selfSentinel when raw target t refers back to from
// (a self-loop in the pre-minimization graph), else the current class of
// t, or selfSentinel-1 ("dead") when t is -1.
func classOrSelf(class []int, t, from int) int {
	if t == -1 {
		return selfSentinel - 1
	}
	if t == from {
		return selfSentinel
	}
	return class[t]
}

// classTarget resolves a raw target to its final StateID, or DeadState
// for -1 (no edge).
func classTarget(class []int, t int) StateID {
	if t == -1 {
		return DeadState
	}
	return StateID(class[t])
}

func appendInt(b []byte, v int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	if v == 0 {
		return append(b, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(b, tmp[i:]...)
}
