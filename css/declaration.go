package css

// browserHackDelims is the set of delimiter bytes that, immediately
// followed by an identifier, mark a browser-hack property prefix (spec
// §4.5): `*`, `$`, `&`, `(`, `)`, `=`, `%`, `+`, `,`, `.`, `/`, backslash,
// `[`, `]`, `~`, `?`, `:`, `<`, `>`, `|`.
const browserHackDelims = `*$&()=%+,./\[]~?:<>|`

// tryParseDeclaration attempts to parse one declaration starting at the
// current cursor position. On success it returns the Declaration node's
// index and true, with the cursor positioned just past the declaration
// (after its trailing ';' if one was present). On failure it restores the
// cursor to its entry position and returns (0, false), letting the caller
// try a nested rule instead (spec §4.4/§4.5).
//
// Grounded on lukehoban-browser/css/parser.go's parseDeclaration (ident,
// colon, value-token-concatenation loop), generalized with browser-hack
// prefix detection, paren-depth-aware value capture, !important, and
// Value-subtree construction.
func (p *parser) tryParseDeclaration() (uint32, bool) {
	startSnap := p.tok.SavePosition()
	startOffset, startLine, startCol := p.peekStart()

	_, hasHack := p.consumeBrowserHackPrefix()
	if !p.atIdentStart() {
		p.tok.RestorePosition(startSnap)
		return 0, false
	}

	propStart := p.tok.Pos()
	kind := p.tok.Next(false)
	if kind != TokenIdent {
		p.tok.RestorePosition(startSnap)
		return 0, false
	}
	propEnd := p.tok.Token().End

	if k := p.peekSkipWS(); k != TokenColon {
		p.tok.RestorePosition(startSnap)
		return 0, false
	}
	p.skipTriviaInline()
	p.tok.Next(false) // ':'

	valueStart := p.tok.Pos()
	stopOffset, stopKind := p.scanUnnested(TokenSemicolon, TokenRightBrace, TokenLeftBrace)
	if stopKind == TokenLeftBrace {
		p.tok.RestorePosition(startSnap)
		return 0, false
	}

	rawValueEnd := stopOffset
	end := stopOffset
	if stopKind == TokenSemicolon {
		p.tok.Next(false)
		end = p.tok.Token().End
	}

	trimStart, trimEnd := trimSpan(p.source, valueStart, rawValueEnd)

	important := false
	if bangAt := lastUnescapedBang(p.source, trimStart, trimEnd); bangAt >= 0 {
		if isValidImportantSuffix(p.source, bangAt, trimEnd) {
			important = true
			trimEnd = bangAt
			_, trimEnd = trimSpanBack(p.source, trimStart, trimEnd)
		}
	}

	idx := p.arena.CreateNode(KindDeclaration, startOffset, end-startOffset, startLine, startCol)
	p.arena.SetContentStartDelta(idx, propStart-startOffset)
	p.arena.SetContentLength(idx, propEnd-propStart)

	if trimEnd > trimStart {
		p.arena.SetValueStartDelta(idx, trimStart-startOffset)
		p.arena.SetValueLength(idx, trimEnd-trimStart)
	}

	if important {
		p.arena.SetFlags(idx, FlagImportant)
	}
	if hasHack {
		p.arena.SetFlags(idx, FlagBrowserHack)
	}
	if isVendorPrefixName(p.source[propStart:propEnd]) {
		p.arena.SetFlags(idx, FlagVendorPrefixed)
	}

	if p.opts.parseValues {
		p.attachValueSubtree(idx, trimStart, trimEnd)
	}

	return idx, true
}

// attachValueSubtree parses [trimStart, trimEnd) as a value node sequence
// and wraps it in a single Value child, even when empty (spec §4.5). The
// value span lies behind the declaration's already-consumed trailing ';',
// so parseValueSpan's internal seekTo rebuilds the shared tokenizer over
// it; the outer cursor position is saved and restored around the call so
// the caller's walk through the rest of the stylesheet is unaffected.
func (p *parser) attachValueSubtree(declIdx uint32, trimStart, trimEnd int) {
	outerPos := p.tok.SavePosition()
	valueNodes := p.parseValueSpan(trimStart, trimEnd)
	p.tok.RestorePosition(outerPos)

	line, col := p.lineColAt(trimStart)
	valueIdx := p.arena.CreateNode(KindValue, trimStart, trimEnd-trimStart, line, col)
	p.arena.AppendChildren(valueIdx, valueNodes)
	p.arena.AppendChildren(declIdx, []uint32{valueIdx})
}

// consumeBrowserHackPrefix consumes exactly one browser-hack prefix
// character immediately preceding an identifier, per spec §4.5. It
// returns the prefix length (0 or 1) and whether a prefix was consumed.
func (p *parser) consumeBrowserHackPrefix() (int, bool) {
	if p.tok.AtEOF() {
		return 0, false
	}
	pos := p.tok.Pos()
	c := p.source[pos]

	isCandidate := c == '@' || c == '#' || c == '_' ||
		(c == '-' && !isVendorOrCustomPropertyHyphen(p.source, pos)) ||
		indexByteIn(browserHackDelims, c)
	if !isCandidate {
		return 0, false
	}

	// Only a genuine prefix if an identifier follows immediately.
	save := p.tok.SavePosition()
	p.tok.advance() // consume the candidate byte alone; Next would lex "_x"/"#x"/"-x" as one token
	if !p.atIdentStart() {
		p.tok.RestorePosition(save)
		return 0, false
	}
	return 1, true
}

// isVendorOrCustomPropertyHyphen reports whether the '-' at pos starts a
// vendor prefix (-webkit-, -moz-, ...) or a custom property (--foo), in
// which case it is NOT a browser-hack prefix candidate.
func isVendorOrCustomPropertyHyphen(source string, pos int) bool {
	if pos+1 < len(source) && source[pos+1] == '-' {
		return true // custom property
	}
	rest := pos + 1
	for i := rest; i < len(source); i++ {
		if source[i] == '-' {
			return true // a second hyphen later makes it a vendor prefix
		}
		if !isIdentChar(source[i]) {
			break
		}
	}
	return false
}

func indexByteIn(set string, c byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == c {
			return true
		}
	}
	return false
}

// atIdentStart reports whether the byte at the cursor would start an
// identifier, without consuming it.
func (p *parser) atIdentStart() bool {
	if p.tok.AtEOF() {
		return false
	}
	snap := p.tok.SavePosition()
	kind := p.tok.Next(false)
	p.tok.RestorePosition(snap)
	return kind == TokenIdent
}

// peekSkipWS returns the kind of the next non-whitespace token without
// consuming anything.
func (p *parser) peekSkipWS() TokenKind {
	snap := p.tok.SavePosition()
	kind := p.tok.Next(true)
	p.tok.RestorePosition(snap)
	return kind
}

// lastUnescapedBang finds the last '!' byte in [start, end) that is not
// inside a string, returning -1 if none. Declaration values rarely
// contain '!' outside of "!important", so a single forward scan that
// remembers the last '!' seen, with a light string-awareness check, is
// sufficient.
func lastUnescapedBang(source string, start, end int) int {
	last := -1
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
		if c == '!' {
			last = i
		}
	}
	return last
}

// isValidImportantSuffix reports whether the bytes after bangAt (up to
// end) form "!<ident>", with optional whitespace between '!' and the
// ident and nothing after the ident (callers pass an end already trimmed
// of trailing whitespace/comments) — the "!important"/"!ie" etc. suffix
// spec §4.5 describes.
func isValidImportantSuffix(source string, bangAt, end int) bool {
	pos := bangAt + 1
	for pos < end && isWhitespace(source[pos]) {
		pos++
	}
	if pos >= end || !isIdentStart(source[pos]) {
		return false
	}
	for pos < end {
		if !isIdentChar(source[pos]) {
			return false
		}
		pos++
	}
	return true
}

// trimSpanBack re-trims trailing whitespace/comments after removing the
// "!ident" suffix from a value span.
func trimSpanBack(source string, start, end int) (int, int) {
	return trimSpan(source, start, end)
}
