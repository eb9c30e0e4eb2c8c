// Package query implements the surface-syntax parser of spec §4.6/§6: a
// lexer that tokenizes raw query text, and a recursive-descent parser
// that drives bottom-up construction of an iter.ZgramIterator tree.
//
// The grammar (operator precedence loosest to tightest):
//
//	query            := WS? boolean WS? EOF
//	boolean          := metadataFnString           # hasreaction("…")
//	                  | metadataFnWhole             # zgramid(42)
//	                  | scopedAdjacency
//	                  | NOT WS boolean              # prec 4
//	                  | boolean WS boolean          # implied AND, prec 3
//	                  | boolean WS AND WS boolean   # explicit AND, prec 2
//	                  | boolean WS OR WS boolean    # OR, prec 1
//	                  | LPAREN WS? boolean WS? RPAREN
//	scopedAdjacency  := (FIELDS ':' WS?)? LANCHOR? (words | quoted | tilded | literally) RANCHOR?
//	words            := WORD+
//	quoted           := '"' WORD* '"'
//	tilded           := '~' WORD* '~'
//	literally        := 'literally(' WS* '"…"' WS* ')'
//
// Field specifiers are a comma/space-separated list drawn from {sender,
// signature, instance, body}; the default mask, when no specifier is
// given, is instance+body. Quoted groups are adjacency-1; tilded groups
// are adjacency-nearMargin (a parser-configured constant). literally("…")
// runs the word splitter over its quoted content and treats the result
// as a near-1 adjacency, identically to a bare quoted group.
package query
