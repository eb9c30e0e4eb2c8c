package query

import (
	"github.com/coregx/ahocorasick"
	"github.com/kosak/z2kplus-sub000/index"
)

// reservedWords is the fixed keyword/field-tag dictionary spec §6 names:
// "and", "or", "not", the three metadata/phrase function heads (matched
// together with their opening paren, since the grammar treats e.g.
// "literally(" as a single lexeme), and the four field tags.
//
// Grounded on the teacher's meta/compile.go, which builds one
// ahocorasick.Automaton from a literal set and asks it "what, if
// anything, matches right here" instead of chaining strings.HasPrefix
// checks. Here the literal set is this fixed dictionary rather than a
// user's regex alternation, but the role - a single pre-built multi-
// literal matcher consulted at each scan position - is identical.
var reservedWords = []string{
	"and", "or", "not",
	"literally(", "hasreaction(", "zgramid(",
	"sender", "signature", "instance", "body",
}

var reservedKind = map[string]tokenKind{
	"and":          tokAnd,
	"or":           tokOr,
	"not":          tokNot,
	"literally(":   tokFnLiterally,
	"hasreaction(": tokFnHasReaction,
	"zgramid(":     tokFnZgramId,
}

var reservedField = map[string]index.FieldTag{
	"sender":    index.Sender,
	"signature": index.Signature,
	"instance":  index.Instance,
	"body":      index.Body,
}

var reservedAho *ahocorasick.Automaton

func init() {
	b := ahocorasick.NewBuilder()
	for _, w := range reservedWords {
		b.AddPattern([]byte(w))
	}
	aho, err := b.Build()
	if err != nil {
		panic("query: building reserved-word automaton: " + err.Error())
	}
	reservedAho = aho
}

// lexer scans raw query text into tokens. It is a plain byte-position
// cursor: the parser can snapshot and restore it (mark/reset) to
// backtrack out of a failed field-specifier lookahead.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer { return &lexer{src: src} }

func (l *lexer) mark() int { return l.pos }

func (l *lexer) reset(p int) { l.pos = p }

func isStructural(b byte) bool {
	switch b {
	case '(', ')', ':', ',', '^', '$', '"', '~':
		return true
	}
	return false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isWordByte mirrors wordsplit's alphabet test: a reserved-word match
// that is immediately followed by a word byte is not a standalone
// keyword ("android" must not lex as "and" + "roid").
func isWordByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b >= 0x80
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
}

// next returns the next token, advancing the cursor.
func (l *lexer) next() token {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}
	}
	c := l.src[l.pos]
	if isStructural(c) {
		l.pos++
		switch c {
		case '(':
			return token{kind: tokLParen, pos: start}
		case ')':
			return token{kind: tokRParen, pos: start}
		case ':':
			return token{kind: tokColon, pos: start}
		case ',':
			return token{kind: tokComma, pos: start}
		case '^':
			return token{kind: tokCaret, pos: start}
		case '$':
			return token{kind: tokDollar, pos: start}
		case '"':
			return token{kind: tokQuote, pos: start}
		case '~':
			return token{kind: tokTilde, pos: start}
		}
	}

	if m := reservedAho.Find([]byte(l.src[l.pos:]), 0); m != nil && m.Start == 0 {
		matched := l.src[l.pos+m.Start : l.pos+m.End]
		if kind, ok := reservedKind[matched]; ok {
			// "and(" is ambiguous with a run; the three function forms
			// already consume their '(' so no boundary byte follows
			// that could extend the match.
			end := l.pos + m.End
			if matched[len(matched)-1] != '(' {
				if end < len(l.src) && (isWordByte(l.src[end]) || l.src[end] == '\'') {
					return l.scanRun(start)
				}
			}
			l.pos = end
			return token{kind: kind, pos: start}
		}
		if tag, ok := reservedField[matched]; ok {
			end := l.pos + m.End
			if end < len(l.src) && (isWordByte(l.src[end]) || l.src[end] == '\'') {
				return l.scanRun(start)
			}
			l.pos = end
			return token{kind: tokField, field: tag, pos: start}
		}
	}
	return l.scanRun(start)
}

// scanRun consumes a maximal run of non-whitespace, non-structural
// bytes: the grammar's atomic "words" unit, later split into one or
// more WORD tokens by wordsplit.Split.
func (l *lexer) scanRun(start int) token {
	for l.pos < len(l.src) && !isSpace(l.src[l.pos]) && !isStructural(l.src[l.pos]) {
		l.pos++
	}
	return token{kind: tokRun, text: l.src[start:l.pos], pos: start}
}

// rawUntil consumes raw bytes up to (and past) the next occurrence of
// delim, used right after a QUOTE or TILDE token: inside a quoted or
// tilded group every byte is literal content, including characters that
// would otherwise be structural (spec's own C++ parser treats
// `"sender:kosak"` as three plain words, not a field specifier).
func (l *lexer) rawUntil(delim byte) (content string, closed bool) {
	start := l.pos
	for l.pos < len(l.src) {
		if l.src[l.pos] == delim {
			content = l.src[start:l.pos]
			l.pos++
			return content, true
		}
		l.pos++
	}
	return l.src[start:l.pos], false
}
