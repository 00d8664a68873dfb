package css

// parseValueSpan parses [start, end) as a sequence of value nodes (spec
// §4.8). It is invoked both by declaration.go (a span the shared cursor
// has already advanced past) and, indirectly, by nested Function/
// Parenthesis argument parsing within this file. Callers whose own cursor
// position must survive the call are responsible for saving and restoring
// it; parseValueSpan itself always leaves the cursor at end.
//
// Grounded on lukehoban-browser/css/parser.go's parseDeclarationValue
// token-concatenation loop, generalized into the typed Identifier/Number/
// Dimension/String/Hash/Function/Operator/Parenthesis/Url node set spec
// §4.8 describes.
func (p *parser) parseValueSpan(start, end int) []uint32 {
	p.seekTo(start)
	nodes := p.parseValueNodes(end)
	p.seekTo(end)
	return nodes
}

// parseValueNodes loops parseOneValueNode until the cursor reaches limit,
// skipping whitespace/comments between value nodes without recording them
// (spec §4.8: whitespace between value tokens is not itself a node).
func (p *parser) parseValueNodes(limit int) []uint32 {
	var out []uint32
	for {
		p.skipTriviaInline()
		if p.tok.Pos() >= limit || p.tok.AtEOF() {
			break
		}
		idx, ok := p.parseOneValueNode(limit)
		if !ok {
			break
		}
		out = append(out, idx)
	}
	return out
}

// parseOneValueNode parses exactly one value-content node starting at the
// cursor, dispatching on the next token's kind per spec §4.8.
func (p *parser) parseOneValueNode(limit int) (uint32, bool) {
	if p.tok.Pos() >= limit {
		return 0, false
	}
	snap := p.tok.SavePosition()
	kind := p.tok.Next(false)
	tok := p.tok.Token()

	switch kind {
	case TokenIdent:
		idx := p.arena.CreateNode(KindIdentifier, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		p.arena.SetContentLength(idx, tok.End-tok.Start)
		return idx, true

	case TokenNumber:
		idx := p.arena.CreateNode(KindNumber, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		return idx, true

	case TokenPercentage:
		return p.makeDimension(tok, tok.End-1), true

	case TokenDimension:
		unitStart := numericPrefixEnd(p.source, tok.Start, tok.End)
		return p.makeDimension(tok, unitStart), true

	case TokenString:
		idx := p.arena.CreateNode(KindString, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		return idx, true

	case TokenHash:
		idx := p.arena.CreateNode(KindHash, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		p.arena.SetContentStartDelta(idx, 1)
		p.arena.SetContentLength(idx, (tok.End-tok.Start)-1)
		return idx, true

	case TokenURL, TokenBadURL:
		idx := p.arena.CreateNode(KindURL, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		p.setURLValueSpan(idx, tok)
		if kind == TokenBadURL {
			p.arena.SetFlags(idx, FlagHasError)
		}
		return idx, true

	case TokenFunction:
		return p.parseFunction(tok, limit), true

	case TokenLeftParen:
		return p.parseParenthesis(tok, limit), true

	case TokenComma, TokenColon:
		idx := p.arena.CreateNode(KindOperator, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		return idx, true

	case TokenDelim:
		switch p.source[tok.Start:tok.End] {
		case "+", "-", "*", "/":
			idx := p.arena.CreateNode(KindOperator, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
			return idx, true
		default:
			p.tok.RestorePosition(snap)
			return 0, false
		}

	default:
		p.tok.RestorePosition(snap)
		return 0, false
	}
}

// makeDimension creates a Dimension node whose content sub-span is the
// numeric prefix [tok.Start, unitStart) and whose value sub-span is the
// unit suffix [unitStart, tok.End) — "%" counts as a one-byte unit, per
// node.go's Unit()/NumericValue() split.
func (p *parser) makeDimension(tok Token, unitStart int) uint32 {
	idx := p.arena.CreateNode(KindDimension, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
	p.arena.SetContentLength(idx, unitStart-tok.Start)
	if tok.End > unitStart {
		p.arena.SetValueStartDelta(idx, unitStart-tok.Start)
		p.arena.SetValueLength(idx, tok.End-unitStart)
	}
	return idx
}

// numericPrefixEnd returns the offset where a Dimension token's numeric
// prefix ends and its unit suffix begins: the first byte that cannot
// continue the number grammar (sign, digits, optional '.'+digits,
// optional exponent) consumed by the tokenizer's consumeNumeric.
func numericPrefixEnd(source string, start, end int) int {
	i := start
	if i < end && (source[i] == '+' || source[i] == '-') {
		i++
	}
	for i < end && isDigit(source[i]) {
		i++
	}
	if i+1 < end && source[i] == '.' && isDigit(source[i+1]) {
		i++
		for i < end && isDigit(source[i]) {
			i++
		}
	}
	if i < end && (source[i] == 'e' || source[i] == 'E') {
		j := i + 1
		if j < end && (source[j] == '+' || source[j] == '-') {
			j++
		}
		if j < end && isDigit(source[j]) {
			j++
			for j < end && isDigit(source[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

// setURLValueSpan records a Url node's value sub-span: the (possibly
// unquoted) URL text between "url(" and the closing ")", trimmed of
// surrounding whitespace. A bad-url token's span still starts with "url("
// even though it lacks a clean close; the trim handles both shapes.
func (p *parser) setURLValueSpan(idx uint32, tok Token) {
	const prefixLen = 4 // len("url(")
	inner := tok.Start + prefixLen
	limit := tok.End
	if limit > inner && p.source[limit-1] == ')' {
		limit--
	}
	if inner >= limit {
		return
	}
	trimStart, trimEnd := trimSpan(p.source, inner, limit)
	if trimEnd <= trimStart {
		return
	}
	p.arena.SetValueStartDelta(idx, trimStart-tok.Start)
	p.arena.SetValueLength(idx, trimEnd-trimStart)
}

// parseFunction parses a Function node from an already-consumed Function
// token (whose span includes the trailing '('), recursing into its
// argument list via the same scan-then-restore pattern selector.go uses
// for pseudo-class arguments: the interior boundary is found first, the
// cursor is rewound to the interior's start, then the interior is parsed
// as nested value nodes up to the discovered close-paren offset.
func (p *parser) parseFunction(tok Token, outerLimit int) uint32 {
	nameEnd := tok.End - 1
	name := p.source[tok.Start:nameEnd]

	argsSnap := p.tok.SavePosition()
	closeOffset, closeKind := p.scanUnnested(TokenRightParen)
	p.tok.RestorePosition(argsSnap)

	// The tokenizer only carves "url(" out into a raw Url/BadUrl token
	// when unquoted (spec §4.8); a quoted "url(...)" lexes as an ordinary
	// Function token instead, but name "url" always produces a Url node,
	// never a Function node, regardless of quoting.
	if isASCIICaseInsensitiveEqual(name, "url") {
		return p.parseQuotedURLFunction(tok, closeOffset, closeKind, outerLimit)
	}

	// "src(", the CSS Images Module's equivalent, gets no such
	// tokenizer-level special case at all, so it is recognized here
	// instead.
	if isASCIICaseInsensitiveEqual(name, "src") && !p.firstArgIsString(closeOffset) {
		p.tok.RestorePosition(argsSnap)
		return p.parseRawURLFunction(tok, closeOffset, closeKind, outerLimit)
	}

	args := p.parseValueNodes(closeOffset)
	p.seekTo(closeOffset)

	end := closeOffset
	hasError := closeKind != TokenRightParen
	if !hasError {
		p.tok.Next(false)
		end = p.tok.Token().End
	}

	idx := p.arena.CreateNode(KindFunction, tok.Start, end-tok.Start, tok.Line, tok.Column)
	p.arena.SetContentLength(idx, nameEnd-tok.Start)
	p.arena.SetFlags(idx, FlagHasParens)
	if isVendorPrefixName(name) {
		p.arena.SetFlags(idx, FlagVendorPrefixed)
	}
	if hasError {
		p.arena.SetFlags(idx, FlagHasError)
	}
	p.arena.AppendChildren(idx, args)

	if end > outerLimit {
		p.arena.SetFlags(idx, FlagHasError)
	}
	return idx
}

// firstArgIsString peeks (without permanently consuming) whether the first
// non-whitespace token before limit is a String, the test spec §4.8 uses
// to decide whether "src(" behaves like an ordinary Function or like a
// raw-capture Url.
func (p *parser) firstArgIsString(limit int) bool {
	snap := p.tok.SavePosition()
	defer p.tok.RestorePosition(snap)
	p.skipTriviaInline()
	if p.tok.Pos() >= limit {
		return false
	}
	return p.tok.Next(false) == TokenString
}

// parseRawURLFunction builds a Url node for an unquoted "src(...)" call,
// mirroring the tokenizer's own raw-capture handling of unquoted "url(...)".
// The cursor is at the already-consumed Function token's end (the open
// paren); closeOffset/closeKind are the pre-discovered matching boundary.
func (p *parser) parseRawURLFunction(tok Token, closeOffset int, closeKind TokenKind, outerLimit int) uint32 {
	inner := tok.End
	trimStart, trimEnd := trimSpan(p.source, inner, closeOffset)

	p.seekTo(closeOffset)
	end := closeOffset
	hasError := closeKind != TokenRightParen
	if !hasError {
		p.tok.Next(false)
		end = p.tok.Token().End
	}

	idx := p.arena.CreateNode(KindURL, tok.Start, end-tok.Start, tok.Line, tok.Column)
	if trimEnd > trimStart {
		p.arena.SetValueStartDelta(idx, trimStart-tok.Start)
		p.arena.SetValueLength(idx, trimEnd-trimStart)
	}
	if hasError || end > outerLimit {
		p.arena.SetFlags(idx, FlagHasError)
	}
	return idx
}

// parseQuotedURLFunction builds a Url node for a quoted "url(...)" call
// (the only shape that reaches parseFunction under the name "url", since
// the tokenizer diverts the unquoted form to a raw Url/BadUrl token
// itself): the cursor sits at the arguments' start, and the single String
// argument becomes the Url node's child (spec §9's resolved Open
// Question), rather than the opaque value-span treatment
// parseRawURLFunction gives the unquoted form.
func (p *parser) parseQuotedURLFunction(tok Token, closeOffset int, closeKind TokenKind, outerLimit int) uint32 {
	args := p.parseValueNodes(closeOffset)
	p.seekTo(closeOffset)

	end := closeOffset
	hasError := closeKind != TokenRightParen
	if !hasError {
		p.tok.Next(false)
		end = p.tok.Token().End
	}

	idx := p.arena.CreateNode(KindURL, tok.Start, end-tok.Start, tok.Line, tok.Column)
	p.arena.SetFlags(idx, FlagHasParens)
	if hasError {
		p.arena.SetFlags(idx, FlagHasError)
	}
	p.arena.AppendChildren(idx, args)

	if end > outerLimit {
		p.arena.SetFlags(idx, FlagHasError)
	}
	return idx
}

// parseParenthesis parses a bare "(" ... ")" grouping (spec §4.8: math
// expressions like calc()'s interior may nest plain parens), using the
// same scan-then-restore pattern as parseFunction.
func (p *parser) parseParenthesis(tok Token, outerLimit int) uint32 {
	interiorSnap := p.tok.SavePosition()
	closeOffset, closeKind := p.scanUnnested(TokenRightParen)
	p.tok.RestorePosition(interiorSnap)

	children := p.parseValueNodes(closeOffset)
	p.seekTo(closeOffset)

	end := closeOffset
	hasError := closeKind != TokenRightParen
	if !hasError {
		p.tok.Next(false)
		end = p.tok.Token().End
	}

	idx := p.arena.CreateNode(KindParenthesis, tok.Start, end-tok.Start, tok.Line, tok.Column)
	if hasError {
		p.arena.SetFlags(idx, FlagHasError)
	}
	p.arena.AppendChildren(idx, children)

	if end > outerLimit {
		p.arena.SetFlags(idx, FlagHasError)
	}
	return idx
}
