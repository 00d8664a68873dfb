package css

import (
	"strings"

	"go.uber.org/zap"
)

// parser holds the shared state threaded through the top-level loop and
// every sub-parser: one arena, one tokenizer cursor, and the resolved
// options. Sub-parsers reposition the shared cursor via
// SavePosition/RestorePosition but always leave it at a well-defined point
// before returning to their caller (spec §5).
//
// Grounded on lukehoban-browser/css/parser.go's Parser{tokenizer}, widened
// from a single flat Parse() into the cooperating top-level/declaration/
// selector/at-rule/value sub-parsers spec §4.4-§4.8 describe.
type parser struct {
	arena  *Arena
	tok    *Tokenizer
	source string
	opts   Options
}

func newParser(source string, opts Options) *parser {
	arena := NewArena(len(source))
	arena.log = opts.log
	opts.log.Debug("parse start",
		zap.Int("bytes", len(source)),
		zap.Bool("parse_values", opts.parseValues),
		zap.Bool("parse_selectors", opts.parseSelectors),
		zap.Bool("parse_atrule_preludes", opts.parseAtrulePreludes),
	)
	return &parser{
		arena:  arena,
		tok:    NewTokenizer(source),
		source: source,
		opts:   opts,
	}
}

// logResync emits a Debug record for every point where the parser drops a
// malformed construct and resumes scanning elsewhere, per SPEC_FULL.md §2
// ("every resynchronization after a structural error, with the token kind
// and source offset where recovery resumed").
func (p *parser) logResync(kind TokenKind, offset int) {
	p.opts.log.Debug("resynchronized after structural error",
		zap.String("token_kind", kind.String()),
		zap.Int("offset", offset),
	)
}

// parseStylesheet consumes the whole source as a Stylesheet's children and
// returns the Stylesheet node's index. This is the root production for
// the public Parse entry point.
func (p *parser) parseStylesheet() uint32 {
	children := p.parseNodes(false)
	idx := p.arena.CreateNode(KindStylesheet, 0, len(p.source), 1, 1)
	p.arena.AppendChildren(idx, children)
	return idx
}

// parseNodes implements the alternating stylesheet-level/block-level loop
// of spec §4.4. When inBlock is true it stops at an unnested RightBrace
// (which it does not consume, leaving that to the caller); otherwise it
// runs to EOF.
func (p *parser) parseNodes(inBlock bool) []uint32 {
	var out []uint32
	for {
		switch kind := p.skipTrivia(inBlock, &out); kind {
		case TokenEOF:
			return out
		case TokenRightBrace:
			if inBlock {
				return out
			}
			// A stray '}' at stylesheet level has no enclosing construct
			// to flag; consume it and resynchronize.
			offset := p.tok.Pos()
			p.tok.Next(false)
			p.logResync(TokenRightBrace, offset)
		case TokenAtKeyword:
			out = append(out, p.parseAtRule())
		default:
			if idx, ok := p.tryParseDeclaration(); ok {
				out = append(out, idx)
			} else {
				out = append(out, p.parseStyleRule(inBlock))
			}
		}
	}
}

// skipTrivia consumes whitespace and comments ahead of the cursor,
// invoking the comment callback and (inside a block, per DESIGN.md's
// Open Question decision) recording a Comment node for each one, then
// returns the kind of the following non-trivia token without consuming
// it.
func (p *parser) skipTrivia(inBlock bool, out *[]uint32) TokenKind {
	for {
		snap := p.tok.SavePosition()
		kind := p.tok.Next(false)
		switch kind {
		case TokenWhitespace:
			continue
		case TokenComment:
			tok := p.tok.Token()
			if p.opts.onComment != nil {
				p.opts.onComment(tok.Start, tok.End, tok.End-tok.Start, tok.Line, tok.Column)
			}
			if inBlock {
				idx := p.arena.CreateNode(KindComment, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
				*out = append(*out, idx)
			}
		default:
			p.tok.RestorePosition(snap)
			return kind
		}
	}
}

// skipTriviaInline consumes a run of whitespace/comments without building
// any nodes, for use by the selector/value/at-rule sub-parsers that scan
// within a bounded span rather than through the top-level parseNodes
// loop. The comment callback still fires (spec §6.1: it fires for every
// comment as it is tokenized, regardless of context). It reports whether
// any whitespace byte was consumed, which selector parsing needs to
// distinguish a descendant combinator from two adjacent compounds.
func (p *parser) skipTriviaInline() (sawWhitespace bool) {
	for {
		snap := p.tok.SavePosition()
		kind := p.tok.Next(false)
		switch kind {
		case TokenWhitespace:
			sawWhitespace = true
		case TokenComment:
			sawWhitespace = true
			tok := p.tok.Token()
			if p.opts.onComment != nil {
				p.opts.onComment(tok.Start, tok.End, tok.End-tok.Start, tok.Line, tok.Column)
			}
		default:
			p.tok.RestorePosition(snap)
			return sawWhitespace
		}
	}
}

// lineColAt computes the 1-based line/column of an arbitrary byte offset
// by scanning from the start of source. Used where a sub-parser builds a
// node from a derived span (a trimmed value, an implicit descendant
// combinator) rather than directly from a lexed token, so it has no
// tokenizer-tracked line/column to copy.
func (p *parser) lineColAt(offset int) (int, int) {
	line, col := 1, 1
	for i := 0; i < offset && i < len(p.source); i++ {
		c := p.source[i]
		if c == '\r' {
			if i+1 < len(p.source) && p.source[i+1] == '\n' {
				continue
			}
			line++
			col = 1
			continue
		}
		if isNewline(c) {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// peekStart reports the start offset/line/column of the next token
// without consuming it.
func (p *parser) peekStart() (offset, line, column int) {
	snap := p.tok.SavePosition()
	p.tok.Next(false)
	tok := p.tok.Token()
	p.tok.RestorePosition(snap)
	return tok.Start, tok.Line, tok.Column
}

// scanUnnested scans forward from the current cursor position, tracking
// parenthesis/bracket/function-call nesting, until it finds one of the
// given stop kinds at depth zero or reaches EOF. It does not consume the
// stop token: the cursor is left positioned so the next Next() call
// re-lexes it.
func (p *parser) scanUnnested(stops ...TokenKind) (stopOffset int, stopKind TokenKind) {
	depth := 0
	for {
		snap := p.tok.SavePosition()
		kind := p.tok.Next(false)
		if kind == TokenEOF {
			return p.tok.Token().Start, TokenEOF
		}
		if depth == 0 {
			for _, s := range stops {
				if kind == s {
					p.tok.RestorePosition(snap)
					return p.tok.Token().Start, kind
				}
			}
		}
		switch kind {
		case TokenLeftParen, TokenLeftBracket, TokenFunction:
			depth++
		case TokenRightParen, TokenRightBracket:
			if depth > 0 {
				depth--
			}
		}
	}
}

// parseStyleRule parses a selector list, brace-delimited Block, and the
// Block's children, per spec §4.4's StyleRule production. allowRelative
// permits the selector list to begin with a bare combinator (relaxed
// nesting, spec §4.4).
func (p *parser) parseStyleRule(allowRelative bool) uint32 {
	startSnap := p.tok.SavePosition()
	startOffset, startLine, startCol := p.peekStart()

	stopOffset, stopKind := p.scanUnnested(TokenLeftBrace, TokenSemicolon)

	if stopKind != TokenLeftBrace {
		end := stopOffset
		if stopKind == TokenSemicolon {
			p.tok.Next(false)
			end = p.tok.Token().End
		}
		idx := p.arena.CreateNode(KindStyleRule, startOffset, end-startOffset, startLine, startCol)
		p.arena.SetFlags(idx, FlagHasError)
		p.logResync(stopKind, end)
		return idx
	}

	p.tok.RestorePosition(startSnap)
	var selList uint32
	if p.opts.parseSelectors {
		selList = p.parseSelectorList(stopOffset, allowRelative)
	} else {
		selList = p.parseRawSelectorList(stopOffset)
	}

	p.tok.Next(false) // consume '{'
	blockTok := p.tok.Token()
	blockIdx := p.arena.CreateNode(KindBlock, blockTok.Start, 0, blockTok.Line, blockTok.Column)

	children := p.parseNodes(true)
	p.arena.AppendChildren(blockIdx, children)

	closeKind := p.tok.Next(false) // consumes '}' or stays at EOF
	blockEnd := p.tok.Token().End
	blockHasError := closeKind != TokenRightBrace
	p.arena.SetLength(blockIdx, blockEnd-blockTok.Start)
	if blockHasError {
		p.arena.SetFlags(blockIdx, FlagHasError)
	}

	ruleIdx := p.arena.CreateNode(KindStyleRule, startOffset, blockEnd-startOffset, startLine, startCol)
	p.arena.AppendChildren(ruleIdx, []uint32{selList, blockIdx})
	p.arena.SetFlags(ruleIdx, FlagHasBlock)
	if blockHasError {
		p.arena.SetFlags(ruleIdx, FlagHasError)
	}
	for _, c := range children {
		if p.arena.Kind(c) == KindDeclaration {
			p.arena.SetFlags(ruleIdx, FlagHasDeclarations)
			break
		}
	}
	return ruleIdx
}

// isVendorPrefixName reports whether name matches the vendor-prefix
// pattern used for both Declaration properties and pseudo-selector names
// (spec §4.5/§4.6): starts with a single '-' (not '--') and contains
// another '-' later in the name.
func isVendorPrefixName(name string) bool {
	if len(name) < 2 || name[0] != '-' || name[1] == '-' {
		return false
	}
	return strings.IndexByte(name[1:], '-') >= 0
}

// trimSpan strips leading/trailing whitespace and comments from the byte
// span [start, end) of source in one forward pass, returning the bounds of
// the first through last non-trivia byte. Interior whitespace/comments are
// left untouched.
func trimSpan(source string, start, end int) (int, int) {
	firstStart := -1
	lastEnd := start
	pos := start
	for pos < end {
		switch {
		case isWhitespace(source[pos]):
			pos++
		case pos+1 < end && source[pos] == '/' && source[pos+1] == '*':
			p := pos + 2
			for p < end-1 && !(source[p] == '*' && source[p+1] == '/') {
				p++
			}
			if p < end-1 {
				p += 2
			} else {
				p = end
			}
			pos = p
		default:
			if firstStart == -1 {
				firstStart = pos
			}
			for pos < end && !isWhitespace(source[pos]) && !(pos+1 < end && source[pos] == '/' && source[pos+1] == '*') {
				pos++
			}
			lastEnd = pos
		}
	}
	if firstStart == -1 {
		return start, start
	}
	return firstStart, lastEnd
}
