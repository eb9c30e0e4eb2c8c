// Package automaton compiles a glob pattern (a sequence of PatternChar)
// into a minimized deterministic automaton over Unicode scalar values.
//
// Construction follows three stages: a linear, right-to-left NDFA over
// the pattern characters (MatchOne/MatchN contribute "otherwise"
// default transitions and, for MatchN, an epsilon edge); subset
// construction into a DFA where each state tracks the distinct concrete
// transition labels present among its NDFA members plus a single
// default "otherwise" transition; and a minimization pass that folds
// equivalent states, canonicalizing self-loops so two otherwise-distinct
// self-looping states compare equal.
//
// Example:
//
//	pat := []automaton.PatternChar{automaton.NewLoose('c')}
//	dfa, err := automaton.Compile(pat)
//	if err != nil {
//		log.Fatal(err)
//	}
//	dfa.AdvanceString(dfa.Start(), "c") // accepting
//	dfa.AdvanceString(dfa.Start(), "C") // accepting (uppercase sibling)
package automaton
