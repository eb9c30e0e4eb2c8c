package query

import (
	"strconv"

	"github.com/kosak/z2kplus-sub000/index"
	"github.com/kosak/z2kplus-sub000/iter"
	"github.com/kosak/z2kplus-sub000/wordsplit"
)

// DefaultNearMargin is the adjacency slack a tilded group uses when the
// caller does not configure one explicitly (spec §4.6).
const DefaultNearMargin = 3

// defaultFieldMask is the field set a scopedAdjacency searches when no
// explicit "field,field:" specifier precedes it (spec §4.6: "absent
// specifier" is instance+body, deliberately narrower than
// index.MaskDefault which also covers sender for other callers).
var defaultFieldMask = index.FieldMaskOf(index.Instance, index.Body)

// Parser drives bottom-up construction of the iterator tree from a
// tokenized query string (spec §4.6).
type Parser struct {
	lex        *lexer
	cur        token
	nearMargin int
}

// NewParser builds a parser over src with the given tilded-group margin.
func NewParser(src string, nearMargin int) *Parser {
	p := &Parser{lex: newLexer(src), nearMargin: nearMargin}
	p.advance()
	return p
}

// Parse tokenizes and parses src in one call, per spec §4.6's "query :=
// WS? boolean WS? EOF" production. The empty query yields Everything()
// when emptyMeansEverything is set, else Nothing() (spec §4.6).
func Parse(src string, emptyMeansEverything bool, nearMargin int) (iter.ZgramIterator, error) {
	p := NewParser(src, nearMargin)
	if p.cur.kind == tokEOF {
		if emptyMeansEverything {
			return iter.Everything(), nil
		}
		return iter.Nothing(), nil
	}
	result, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, parseErrorf(p.cur.pos, "unexpected trailing input")
	}
	return result, nil
}

func (p *Parser) advance() { p.cur = p.lex.next() }

// parseOr is prec-1: OR, the loosest-binding operator.
func (p *Parser) parseOr() (iter.ZgramIterator, error) {
	left, err := p.parseExplicitAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOr {
		p.advance()
		right, err := p.parseExplicitAnd()
		if err != nil {
			return nil, err
		}
		left = iter.NewOr(left, right)
	}
	return left, nil
}

// parseExplicitAnd is prec-2: the literal "and" keyword.
func (p *Parser) parseExplicitAnd() (iter.ZgramIterator, error) {
	left, err := p.parseImpliedAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokAnd {
		p.advance()
		right, err := p.parseImpliedAnd()
		if err != nil {
			return nil, err
		}
		left = iter.NewAnd(left, right)
	}
	return left, nil
}

// parseImpliedAnd is prec-3: two atoms separated only by whitespace are
// ANDed together, left-associative.
func (p *Parser) parseImpliedAnd() (iter.ZgramIterator, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = iter.NewAnd(left, right)
	}
	return left, nil
}

func (p *Parser) startsAtom() bool {
	switch p.cur.kind {
	case tokNot, tokLParen, tokFnHasReaction, tokFnZgramId, tokFnLiterally,
		tokField, tokCaret, tokQuote, tokTilde, tokRun:
		return true
	}
	return false
}

// parseNot is prec-4, the tightest-binding operator: right-associative so
// "not not x" collapses via iter.NewNot's double-negation rewrite.
func (p *Parser) parseNot() (iter.ZgramIterator, error) {
	if p.cur.kind == tokNot {
		p.advance()
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return iter.NewNot(child), nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (iter.ZgramIterator, error) {
	switch p.cur.kind {
	case tokLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, parseErrorf(p.cur.pos, "expected ')'")
		}
		p.advance()
		return inner, nil
	case tokFnHasReaction:
		return p.parseHasReaction()
	case tokFnZgramId:
		return p.parseZgramId()
	case tokEOF:
		return nil, parseErrorf(p.cur.pos, "unexpected end of query")
	default:
		return p.parseScopedAdjacency()
	}
}

// parseHasReaction handles the metadataFnString production:
// hasreaction("…"). p.cur is the already-consumed tokFnHasReaction token
// (which swallowed the opening paren along with the keyword).
func (p *Parser) parseHasReaction() (iter.ZgramIterator, error) {
	fnPos := p.cur.pos
	p.advance()
	if p.cur.kind != tokQuote {
		return nil, parseErrorf(p.cur.pos, "hasreaction( expects a quoted string")
	}
	content, closed := p.lex.rawUntil('"')
	if !closed {
		return nil, parseErrorf(fnPos, "unterminated string in hasreaction(")
	}
	p.advance()
	if p.cur.kind != tokRParen {
		return nil, parseErrorf(p.cur.pos, "expected ')' to close hasreaction(")
	}
	p.advance()
	return iter.NewHavingReaction(content), nil
}

// parseZgramId handles the metadataFnWhole production: zgramid(42).
func (p *Parser) parseZgramId() (iter.ZgramIterator, error) {
	p.advance()
	if p.cur.kind != tokRun {
		return nil, parseErrorf(p.cur.pos, "zgramid( expects an integer")
	}
	n, err := strconv.ParseUint(p.cur.text, 10, 64)
	if err != nil {
		return nil, parseErrorf(p.cur.pos, "zgramid( expects an integer, got %q", p.cur.text)
	}
	p.advance()
	if p.cur.kind != tokRParen {
		return nil, parseErrorf(p.cur.pos, "expected ')' to close zgramid(")
	}
	p.advance()
	return iter.NewZgramId(index.ZgramId(n)), nil
}

// parseScopedAdjacency handles "(FIELDS ':' WS?)? LANCHOR? (words |
// quoted | tilded | literally) RANCHOR?".
func (p *Parser) parseScopedAdjacency() (iter.ZgramIterator, error) {
	mask, hasFields, err := p.tryParseFieldSpec()
	if err != nil {
		return nil, err
	}
	if !hasFields {
		mask = defaultFieldMask
	}

	left := p.cur.kind == tokCaret
	if left {
		p.advance()
	}

	children, margin, err := p.parseContent(mask)
	if err != nil {
		return nil, err
	}

	right := p.cur.kind == tokDollar
	if right {
		p.advance()
	}

	if len(children) == 0 {
		return iter.NewPopOrNot(index.MaskNone, mask), nil
	}
	if left {
		children[0] = iter.NewAnchored(children[0], true, false)
	}
	if right {
		last := len(children) - 1
		children[last] = iter.NewAnchored(children[last], false, true)
	}
	if len(children) == 1 {
		return iter.NewWordAdaptor(children[0]), nil
	}
	return iter.NewNear(margin, children...), nil
}

// tryParseFieldSpec consumes a leading "FIELDS ':'" if one is present,
// backtracking cleanly if it is not (so "body" with no following colon
// is left alone as an ordinary search word). A bare run immediately
// followed by ':' that is not one of the four known field names is
// reported as an error (SPEC_FULL.md's field-list validation
// supplement) rather than silently falling through to a literal word,
// since that combination is never a useful query.
func (p *Parser) tryParseFieldSpec() (index.FieldMask, bool, error) {
	if p.cur.kind == tokRun {
		mark := p.lex.mark()
		saved := p.cur
		name, namePos := p.cur.text, p.cur.pos
		p.advance()
		if p.cur.kind == tokColon {
			return 0, false, parseErrorf(namePos, "unknown field tag %q", name)
		}
		p.lex.reset(mark)
		p.cur = saved
		return 0, false, nil
	}
	if p.cur.kind != tokField {
		return 0, false, nil
	}

	mark := p.lex.mark()
	saved := p.cur
	var mask index.FieldMask
	for {
		mask |= index.FieldMaskOf(p.cur.field)
		p.advance()
		if p.cur.kind == tokComma {
			p.advance()
		}
		if p.cur.kind == tokField {
			continue
		}
		break
	}
	if p.cur.kind != tokColon {
		p.lex.reset(mark)
		p.cur = saved
		return 0, false, nil
	}
	p.advance()
	return mask, true, nil
}

// parseContent parses the words|quoted|tilded|literally alternative and
// returns the per-word pattern iterators plus the adjacency margin that
// should join them (1 for everything but a tilded group).
func (p *Parser) parseContent(mask index.FieldMask) ([]iter.WordIterator, int, error) {
	switch p.cur.kind {
	case tokQuote:
		return p.parseDelimited('"', mask, 1)
	case tokTilde:
		return p.parseDelimited('~', mask, p.nearMargin)
	case tokFnLiterally:
		return p.parseLiterally(mask)
	case tokRun, tokField:
		// A field tag not followed by ':' is an ordinary search word.
		text := p.cur.text
		if p.cur.kind == tokField {
			text = p.cur.field.String()
		}
		words := wordsplit.Split(text)
		pos := p.cur.pos
		p.advance()
		pats, err := p.buildPatterns(words, mask, pos)
		return pats, 1, err
	default:
		return nil, 0, parseErrorf(p.cur.pos, "expected a word, quoted phrase, tilded phrase, or literally(...)")
	}
}

// parseDelimited handles quoted and tilded groups: everything between
// the delimiters is raw content, split by the same word rules as
// anything else but never re-tokenized as field specs or anchors (the
// original C++ parser's test fixtures confirm `"sender:kosak"` lexes as
// three plain words, not a field specifier).
func (p *Parser) parseDelimited(delim byte, mask index.FieldMask, margin int) ([]iter.WordIterator, int, error) {
	pos := p.cur.pos
	content, closed := p.lex.rawUntil(delim)
	if !closed {
		return nil, 0, parseErrorf(pos, "unterminated %q group", string(delim))
	}
	p.advance()
	pats, err := p.buildPatterns(wordsplit.Split(content), mask, pos)
	return pats, margin, err
}

func (p *Parser) parseLiterally(mask index.FieldMask) ([]iter.WordIterator, int, error) {
	fnPos := p.cur.pos
	p.advance()
	if p.cur.kind != tokQuote {
		return nil, 0, parseErrorf(p.cur.pos, "literally( expects a quoted string")
	}
	content, closed := p.lex.rawUntil('"')
	if !closed {
		return nil, 0, parseErrorf(fnPos, "unterminated string in literally(")
	}
	p.advance()
	if p.cur.kind != tokRParen {
		return nil, 0, parseErrorf(p.cur.pos, "expected ')' to close literally(")
	}
	p.advance()
	pats, err := p.buildPatterns(wordsplit.Split(content), mask, fnPos)
	return pats, 1, err
}

func (p *Parser) buildPatterns(words []string, mask index.FieldMask, pos int) ([]iter.WordIterator, error) {
	pats := make([]iter.WordIterator, 0, len(words))
	for _, w := range words {
		chars := wordsplit.Translate(w)
		pat, err := iter.NewPattern(chars, mask)
		if err != nil {
			return nil, parseErrorf(pos, "compiling pattern %q: %v", w, err)
		}
		pats = append(pats, pat)
	}
	return pats, nil
}
