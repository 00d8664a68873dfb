package css

// parseSelectorList parses a SelectorList spanning [cursor, limit) — one or
// more comma-separated Selectors — per spec §4.6. limit is the byte offset
// of the boundary the caller already found (a StyleRule's '{', or a
// functional pseudo-class's matching ')'). allowRelative permits each
// Selector to begin with a bare combinator (":has(> a)").
//
// Grounded on lukehoban-browser/css/parser.go's parseSelectors/
// parseSelector/parseSimpleSelector comma/combinator loop, generalized
// from CSS 2.1's (tag, id, classes) triple into the full selector
// component set spec §4.6 lists.
func (p *parser) parseSelectorList(limit int, allowRelative bool) uint32 {
	startOffset, startLine, startCol := p.peekStart()
	var children []uint32
	for {
		children = append(children, p.parseSelector(limit, allowRelative))
		p.skipTriviaInline()
		if p.tok.Pos() >= limit {
			break
		}
		snap := p.tok.SavePosition()
		if p.tok.Next(false) == TokenComma {
			p.skipTriviaInline()
			continue
		}
		p.tok.RestorePosition(snap)
		break
	}
	// Malformed input (an unrecognized character mid-selector) can leave the
	// cursor short of limit with no comma or combinator to resync on.
	// Callers depend on the cursor landing exactly at limit, so force it.
	p.seekTo(limit)
	idx := p.arena.CreateNode(KindSelectorList, startOffset, limit-startOffset, startLine, startCol)
	p.arena.AppendChildren(idx, children)
	return idx
}

// parseRawSelectorList records [cursor, limit) as a childless SelectorList
// leaf when parse_selectors is disabled (spec §6.1): Text() still returns
// the raw selector text, but no TypeSelector/ClassSelector/... subtree is
// built.
func (p *parser) parseRawSelectorList(limit int) uint32 {
	startOffset, startLine, startCol := p.peekStart()
	p.seekTo(limit)
	return p.arena.CreateNode(KindSelectorList, startOffset, limit-startOffset, startLine, startCol)
}

// parseSelector parses one CompoundSelector (Combinator CompoundSelector)*
// chain, stopping at an unnested comma or limit.
func (p *parser) parseSelector(limit int, allowRelative bool) uint32 {
	startOffset, startLine, startCol := p.peekStart()
	var children []uint32

	if allowRelative {
		if c, ok := p.tryParseExplicitCombinator(limit); ok {
			children = append(children, c)
			p.skipTriviaInline()
		}
	}

	for {
		comps := p.parseCompoundSelector(limit)
		if len(comps) == 0 && len(children) == 0 {
			// Nothing recognizable at all: force progress so the caller's
			// comma loop cannot spin forever on malformed input.
			if p.tok.Pos() < limit {
				p.tok.Next(false)
				tok := p.tok.Token()
				errIdx := p.arena.CreateNode(KindTypeSelector, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
				p.arena.SetFlags(errIdx, FlagHasError)
				children = append(children, errIdx)
			}
			break
		}
		children = append(children, comps...)

		wsStart := p.tok.Pos()
		hadWS := p.skipTriviaInline()
		if p.tok.Pos() >= limit {
			break
		}

		if c, ok := p.tryParseExplicitCombinator(limit); ok {
			children = append(children, c)
			p.skipTriviaInline()
			continue
		}

		if !hadWS {
			break // adjacent non-combinator token ends this Selector (e.g. a comma)
		}

		// Implicit descendant combinator: check the token after the
		// whitespace isn't the comma/limit that ends the list.
		snap := p.tok.SavePosition()
		kind := p.tok.Next(false)
		p.tok.RestorePosition(snap)
		if kind == TokenComma || p.tok.Pos() >= limit {
			break
		}

		wsEnd := p.tok.Pos()
		line, col := p.lineColAt(wsStart)
		combIdx := p.arena.CreateNode(KindCombinator, wsStart, wsEnd-wsStart, line, col)
		children = append(children, combIdx)
	}

	end := startOffset
	if len(children) > 0 {
		last := newNode(p.arena, p.source, children[len(children)-1])
		end = last.End()
	}
	idx := p.arena.CreateNode(KindSelector, startOffset, end-startOffset, startLine, startCol)
	p.arena.AppendChildren(idx, children)
	return idx
}

// tryParseExplicitCombinator recognizes a single '>', '+', or '~' delimiter
// token as an explicit Combinator, without consuming anything on failure.
func (p *parser) tryParseExplicitCombinator(limit int) (uint32, bool) {
	if p.tok.Pos() >= limit {
		return 0, false
	}
	snap := p.tok.SavePosition()
	kind := p.tok.Next(false)
	if kind != TokenDelim {
		p.tok.RestorePosition(snap)
		return 0, false
	}
	tok := p.tok.Token()
	switch p.source[tok.Start:tok.End] {
	case ">", "+", "~":
		idx := p.arena.CreateNode(KindCombinator, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		return idx, true
	default:
		p.tok.RestorePosition(snap)
		return 0, false
	}
}

// parseCompoundSelector parses a run of simple selectors with no
// whitespace between them (spec §4.6): TypeSelector, UniversalSelector,
// NestingSelector, ClassSelector, IdSelector, AttributeSelector,
// PseudoClassSelector, PseudoElementSelector. Each is appended directly as
// a Selector child; CompoundSelector is a grouping concept only, not a
// node kind.
func (p *parser) parseCompoundSelector(limit int) []uint32 {
	var out []uint32
	for {
		idx, ok := p.tryParseSimpleSelector(limit)
		if !ok {
			return out
		}
		out = append(out, idx)
	}
}

func (p *parser) tryParseSimpleSelector(limit int) (uint32, bool) {
	if p.tok.Pos() >= limit {
		return 0, false
	}
	snap := p.tok.SavePosition()
	kind := p.tok.Next(false)
	tok := p.tok.Token()

	switch kind {
	case TokenIdent:
		idx := p.arena.CreateNode(KindTypeSelector, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		p.arena.SetContentLength(idx, tok.End-tok.Start)
		return idx, true

	case TokenHash:
		idx := p.arena.CreateNode(KindIDSelector, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
		p.arena.SetContentStartDelta(idx, 1)
		p.arena.SetContentLength(idx, (tok.End-tok.Start)-1)
		return idx, true

	case TokenDelim:
		switch p.source[tok.Start:tok.End] {
		case "*":
			idx := p.arena.CreateNode(KindUniversalSelector, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
			p.arena.SetContentLength(idx, tok.End-tok.Start)
			return idx, true
		case "&":
			idx := p.arena.CreateNode(KindNestingSelector, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
			p.arena.SetContentLength(idx, tok.End-tok.Start)
			return idx, true
		case ".":
			if p.tok.Next(false) != TokenIdent {
				p.tok.RestorePosition(snap)
				return 0, false
			}
			nameTok := p.tok.Token()
			idx := p.arena.CreateNode(KindClassSelector, tok.Start, nameTok.End-tok.Start, tok.Line, tok.Column)
			p.arena.SetContentStartDelta(idx, nameTok.Start-tok.Start)
			p.arena.SetContentLength(idx, nameTok.End-nameTok.Start)
			return idx, true
		default:
			p.tok.RestorePosition(snap)
			return 0, false
		}

	case TokenColon:
		return p.parsePseudoSelector(tok, limit)

	case TokenLeftBracket:
		return p.parseAttributeSelector(tok, limit)

	default:
		p.tok.RestorePosition(snap)
		return 0, false
	}
}

// parsePseudoSelector parses a PseudoClassSelector/PseudoElementSelector
// starting from an already-consumed leading ':' token.
func (p *parser) parsePseudoSelector(colonTok Token, limit int) (uint32, bool) {
	isElement := false
	snap := p.tok.SavePosition()
	if p.tok.Pos() < limit && p.tok.Next(false) == TokenColon {
		isElement = true
	} else {
		p.tok.RestorePosition(snap)
	}

	nameSnap := p.tok.SavePosition()
	kind := p.tok.Next(false)
	tok := p.tok.Token()
	if kind != TokenIdent && kind != TokenFunction {
		p.tok.RestorePosition(nameSnap)
		return 0, false
	}

	nodeKind := KindPseudoClassSelector
	if isElement {
		nodeKind = KindPseudoElementSelector
	}

	nameEnd := tok.End
	if kind == TokenFunction {
		nameEnd-- // exclude the trailing '('
	}
	name := p.source[tok.Start:nameEnd]

	idx := p.arena.CreateNode(nodeKind, colonTok.Start, nameEnd-colonTok.Start, colonTok.Line, colonTok.Column)
	p.arena.SetContentStartDelta(idx, tok.Start-colonTok.Start)
	p.arena.SetContentLength(idx, nameEnd-tok.Start)
	if isVendorPrefixName(name) {
		p.arena.SetFlags(idx, FlagVendorPrefixed)
	}

	if kind != TokenFunction {
		return idx, true
	}

	p.arena.SetFlags(idx, FlagHasParens)
	argsStart := p.tok.Pos()
	argsSnap := p.tok.SavePosition()
	argsStopOffset, argsStopKind := p.scanUnnested(TokenRightParen)
	p.tok.RestorePosition(argsSnap)

	children := p.parsePseudoArguments(name, argsStart, argsStopOffset)
	p.arena.AppendChildren(idx, children)
	// Argument dispatch (lang() in particular) may parse purely off source
	// text without moving the cursor; park it at the stop offset explicitly
	// rather than trusting every branch to leave it there.
	p.seekTo(argsStopOffset)

	end := argsStopOffset
	if argsStopKind == TokenRightParen {
		p.tok.Next(false)
		end = p.tok.Token().End
	} else {
		p.arena.SetFlags(idx, FlagHasError)
	}
	p.arena.SetLength(idx, end-colonTok.Start)
	return idx, true
}

// parsePseudoArguments dispatches a functional pseudo-class's argument
// span [start, end) by name, per spec §4.6.
func (p *parser) parsePseudoArguments(name string, start, end int) []uint32 {
	switch lowerASCII(name) {
	case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type", "nth-col", "nth-last-col":
		return p.parseNthArguments(start, end)
	case "lang":
		return p.parseLangArguments(start, end)
	case "is", "where", "not":
		return []uint32{p.parseSelectorList(end, false)}
	case "has":
		return []uint32{p.parseSelectorList(end, true)}
	default:
		return []uint32{p.parseSelectorList(end, false)}
	}
}

// parseNthArguments parses An+B, optionally followed by "of" and a nested
// SelectorList, wrapping both under an NthOfSelector when "of" is present.
func (p *parser) parseNthArguments(start, end int) []uint32 {
	ofStart, ofEnd, hasOf := p.scanForUnnestedIdent(start, end, "of")

	anbEnd := end
	if hasOf {
		anbEnd = ofStart
	}
	nthIdx := p.parseAnPlusB(start, anbEnd)

	if !hasOf {
		// scanForUnnestedIdent repositioned the cursor while searching;
		// parseAnPlusB itself works directly off source text and never
		// moves it. Restore the token-stream contract callers rely on:
		// cursor parked exactly at end.
		p.seekTo(end)
		return []uint32{nthIdx}
	}

	p.seekTo(ofEnd)
	p.skipTriviaInline()
	selIdx := p.parseSelectorList(end, false)
	p.seekTo(end)

	line, col := p.lineColAt(start)
	wrapIdx := p.arena.CreateNode(KindNthOfSelector, start, end-start, line, col)
	p.arena.AppendChildren(wrapIdx, []uint32{nthIdx, selIdx})
	return []uint32{wrapIdx}
}

// scanForUnnestedIdent scans the token stream in [start, end) (consuming
// as it goes) for an Ident token at paren/bracket depth zero whose text
// case-insensitively equals target, without requiring the caller to have
// pre-tokenized the span. The cursor is left wherever the scan stopped;
// callers that need to reparse the span afterward must seekTo(start)
// first.
func (p *parser) scanForUnnestedIdent(start, end int, target string) (foundStart, foundEnd int, ok bool) {
	p.seekTo(start)
	depth := 0
	for p.tok.Pos() < end {
		kind := p.tok.Next(false)
		if kind == TokenEOF {
			break
		}
		tok := p.tok.Token()
		if depth == 0 && kind == TokenIdent && isASCIICaseInsensitiveEqual(p.source[tok.Start:tok.End], target) {
			return tok.Start, tok.End, true
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
	return 0, 0, false
}

// seekTo repositions the tokenizer cursor to an arbitrary byte offset.
// Offsets used here always fall on a token boundary the caller already
// discovered by scanning, so line/column tracking resets cleanly via a
// fresh Tokenizer built over the same source.
func (p *parser) seekTo(offset int) {
	fresh := NewTokenizer(p.source)
	for fresh.Pos() < offset {
		if fresh.Next(false) == TokenEOF {
			break
		}
	}
	p.tok = fresh
}

// parseAnPlusB parses the trimmed span [start, end) as An+B grammar,
// storing the "a" coefficient (including any trailing "n") as the content
// sub-span and the "b" integer as the value sub-span. After an "n" the
// value sub-span holds the digits only (NthB reconstructs the sign by
// scanning backward); with no "n" it holds the whole integer, sign included.
func (p *parser) parseAnPlusB(start, end int) uint32 {
	trimStart, trimEnd := trimSpan(p.source, start, end)
	line, col := p.lineColAt(trimStart)
	idx := p.arena.CreateNode(KindNthSelector, trimStart, trimEnd-trimStart, line, col)
	if trimEnd <= trimStart {
		return idx
	}
	text := p.source[trimStart:trimEnd]

	if isASCIICaseInsensitiveEqual(text, "odd") || isASCIICaseInsensitiveEqual(text, "even") {
		p.arena.SetContentLength(idx, len(text))
		return idx
	}

	i := 0
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	hasN := i < len(text) && (text[i] == 'n' || text[i] == 'N')

	if !hasN {
		if i > 0 {
			p.arena.SetValueStartDelta(idx, 0)
			p.arena.SetValueLength(idx, i)
		}
		return idx
	}

	aLen := i + 1
	p.arena.SetContentLength(idx, aLen)

	rest := text[aLen:]
	j := 0
	for j < len(rest) && isWhitespace(rest[j]) {
		j++
	}
	if j >= len(rest) {
		return idx
	}
	if rest[j] == '+' || rest[j] == '-' {
		j++
	}
	for j < len(rest) && isWhitespace(rest[j]) {
		j++
	}
	digStart := j
	for j < len(rest) && isDigit(rest[j]) {
		j++
	}
	if j > digStart {
		p.arena.SetValueStartDelta(idx, aLen+digStart)
		p.arena.SetValueLength(idx, j-digStart)
	}
	return idx
}

// parseLangArguments parses lang()'s comma-separated string/ident list
// into LangSelector children, each spanning its (possibly quoted) argument
// text verbatim.
func (p *parser) parseLangArguments(start, end int) []uint32 {
	var out []uint32
	pos := start
	for pos < end {
		commaAt := indexUnescapedByte(p.source, pos, end, ',')
		segEnd := end
		if commaAt >= 0 {
			segEnd = commaAt
		}
		segStart, segStop := trimSpan(p.source, pos, segEnd)
		if segStop > segStart {
			line, col := p.lineColAt(segStart)
			idx := p.arena.CreateNode(KindLangSelector, segStart, segStop-segStart, line, col)
			p.arena.SetContentLength(idx, segStop-segStart)
			out = append(out, idx)
		}
		if commaAt < 0 {
			break
		}
		pos = commaAt + 1
	}
	return out
}

// indexUnescapedByte finds the first occurrence of target in
// [start, end) that is not inside a quoted string, or -1.
func indexUnescapedByte(source string, start, end int, target byte) int {
	inString := byte(0)
	for i := start; i < end; i++ {
		c := source[i]
		if inString != 0 {
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			inString = c
			continue
		}
		if c == target {
			return i
		}
	}
	return -1
}

// parseAttributeSelector parses "[" ... "]" starting from an
// already-consumed leading '[' token, per spec §4.6.
func (p *parser) parseAttributeSelector(openTok Token, limit int) (uint32, bool) {
	interiorSnap := p.tok.SavePosition()
	closeOffset, closeKind := p.scanUnnested(TokenRightBracket)
	p.tok.RestorePosition(interiorSnap)

	p.skipTriviaInline()
	hasError := closeKind != TokenRightBracket

	var nameTok Token
	haveName := false
	if p.tok.Pos() < closeOffset {
		snap := p.tok.SavePosition()
		if p.tok.Next(false) == TokenIdent {
			nameTok = p.tok.Token()
			haveName = true
		} else {
			p.tok.RestorePosition(snap)
			hasError = true
		}
	}
	p.skipTriviaInline()

	operator := AttrOperatorNone
	if p.tok.Pos() < closeOffset {
		if op, ok := p.tryParseAttrOperator(closeOffset); ok {
			operator = op
		}
	}

	var valTok Token
	haveValue := false
	caseFlag := AttrCaseNone
	if operator != AttrOperatorNone {
		p.skipTriviaInline()
		if p.tok.Pos() < closeOffset {
			snap := p.tok.SavePosition()
			kind := p.tok.Next(false)
			if kind == TokenString || kind == TokenIdent || kind == TokenNumber || kind == TokenDimension {
				valTok = p.tok.Token()
				haveValue = true
			} else {
				p.tok.RestorePosition(snap)
				hasError = true
			}
		}
		p.skipTriviaInline()
		if p.tok.Pos() < closeOffset {
			snap := p.tok.SavePosition()
			if p.tok.Next(false) == TokenIdent {
				tok := p.tok.Token()
				text := p.source[tok.Start:tok.End]
				switch text {
				case "i", "I":
					caseFlag = AttrCaseInsensitive
				case "s", "S":
					caseFlag = AttrCaseSensitive
				default:
					p.tok.RestorePosition(snap)
				}
			} else {
				p.tok.RestorePosition(snap)
			}
		}
	}
	p.skipTriviaInline()
	p.seekTo(closeOffset)

	end := closeOffset
	if closeKind == TokenRightBracket {
		p.tok.Next(false)
		end = p.tok.Token().End
	}

	idx := p.arena.CreateNode(KindAttributeSelector, openTok.Start, end-openTok.Start, openTok.Line, openTok.Column)
	if haveName {
		p.arena.SetContentStartDelta(idx, nameTok.Start-openTok.Start)
		p.arena.SetContentLength(idx, nameTok.End-nameTok.Start)
	}
	if haveValue {
		p.arena.SetValueStartDelta(idx, valTok.Start-openTok.Start)
		p.arena.SetValueLength(idx, valTok.End-valTok.Start)
	}
	p.arena.SetAttrOperator(idx, operator)
	p.arena.SetAttrFlags(idx, caseFlag)
	if hasError {
		p.arena.SetFlags(idx, FlagHasError)
	}
	return idx, true
}

// attrOperatorPrefixes maps the leading byte of a two-character attribute
// matcher to its operator tag; "=" alone is handled separately.
var attrOperatorPrefixes = map[string]AttrOperator{
	"~": AttrOperatorIncludes,
	"|": AttrOperatorDashMatch,
	"^": AttrOperatorPrefix,
	"$": AttrOperatorSuffix,
	"*": AttrOperatorSubstring,
}

// tryParseAttrOperator recognizes one of the six attribute comparison
// operators, built from one or two adjacent Delim tokens since the
// tokenizer itself only ever emits single-character delimiters.
func (p *parser) tryParseAttrOperator(limit int) (AttrOperator, bool) {
	snap := p.tok.SavePosition()
	if p.tok.Pos() >= limit || p.tok.Next(false) != TokenDelim {
		p.tok.RestorePosition(snap)
		return AttrOperatorNone, false
	}
	first := p.source[p.tok.Token().Start:p.tok.Token().End]

	if first == "=" {
		return AttrOperatorEquals, true
	}

	prefix, ok := attrOperatorPrefixes[first]
	if !ok {
		p.tok.RestorePosition(snap)
		return AttrOperatorNone, false
	}

	if p.tok.Pos() >= limit || p.tok.Next(false) != TokenDelim || p.source[p.tok.Token().Start:p.tok.Token().End] != "=" {
		p.tok.RestorePosition(snap)
		return AttrOperatorNone, false
	}
	return prefix, true
}

// lowerASCII lower-cases an ASCII string without allocating for inputs
// that are already lower-case (the common case for pseudo-class names).
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			b := []byte(s)
			for ; i < len(b); i++ {
				if b[i] >= 'A' && b[i] <= 'Z' {
					b[i] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
