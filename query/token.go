package query

import "github.com/kosak/z2kplus-sub000/index"

// tokenKind names one lexical category of the query grammar.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokColon
	tokComma
	tokCaret   // '^', LANCHOR
	tokDollar  // '$', RANCHOR
	tokQuote   // '"'
	tokTilde   // '~'
	tokAnd     // "and"
	tokOr      // "or"
	tokNot     // "not"
	tokField   // one of sender/signature/instance/body
	tokFnLiterally
	tokFnHasReaction
	tokFnZgramId
	tokRun // a maximal non-structural, non-whitespace run; may split into 1+ WORDs
)

// token is one lexed unit, with its byte offset in the original input
// for error reporting (spec §7: "a character-position hint").
type token struct {
	kind  tokenKind
	text  string // raw text for tokRun; empty for punctuation tokens
	field index.FieldTag
	pos   int
}
