package css

import (
	"strings"

	"go.uber.org/zap"
)

// knownAtRuleNames lists the at-rule keywords spec §9 dispatches on by
// name, case-insensitively and after a vendor-prefix strip. Names absent
// from this table are left with their prelude span recorded raw and, if
// they carry a block, its contents parsed as generic nodes.
var knownAtRuleNames = map[string]bool{
	"media": true, "supports": true, "container": true, "document": true,
	"font-face": true, "page": true, "counter-style": true, "property": true, "viewport": true,
	"keyframes": true, "layer": true,
	"import": true, "charset": true, "namespace": true,
	"nest": true,
}

// parseAtRule parses "@name prelude { ... }" or "@name prelude ;" from an
// already-positioned cursor at the AtKeyword token, per spec §4.7. The
// prelude span runs up to the first unnested '{'/';'/EOF; body content is
// dispatched by at-rule category once the name is resolved.
//
// Grounded on lukehoban-browser/css/parser.go's block-vs-statement dispatch
// in parseStylesheet's switch over leading tokens, generalized from the
// teacher's single @import/@media-only handling into the full category
// table spec §4.7 lists.
func (p *parser) parseAtRule() uint32 {
	startOffset, startLine, startCol := p.peekStart()

	p.tok.Next(false) // '@name'
	atTok := p.tok.Token()
	rawName := p.source[atTok.Start+1 : atTok.End]
	name, vendorPrefixed := stripVendorPrefix(rawName)
	category := lowerASCII(name)

	preludeStart := p.tok.Pos()
	stopOffset, stopKind := p.scanUnnested(TokenLeftBrace, TokenSemicolon)

	idx := p.arena.CreateNode(KindAtRule, startOffset, 0, startLine, startCol)
	p.arena.SetContentStartDelta(idx, atTok.Start+1-startOffset)
	p.arena.SetContentLength(idx, atTok.End-(atTok.Start+1))
	if vendorPrefixed {
		p.arena.SetFlags(idx, FlagVendorPrefixed)
	}

	preludeTrimStart, preludeTrimEnd := trimSpan(p.source, preludeStart, stopOffset)
	if preludeTrimEnd > preludeTrimStart {
		p.arena.SetValueStartDelta(idx, preludeTrimStart-startOffset)
		p.arena.SetValueLength(idx, preludeTrimEnd-preludeTrimStart)
	}

	var preludeChildren []uint32
	if p.opts.parseAtrulePreludes && knownAtRuleNames[category] {
		preludeChildren = p.parseAtRulePrelude(category, preludeTrimStart, preludeTrimEnd)
	} else if preludeTrimEnd > preludeTrimStart {
		p.opts.log.Debug("unparsed at-rule prelude",
			zap.String("name", category),
			zap.Bool("known_name", knownAtRuleNames[category]),
			zap.Int("offset", preludeTrimStart),
		)
	}

	var bodyChildren []uint32
	var end int
	hasBlock := stopKind == TokenLeftBrace

	if !hasBlock {
		end = stopOffset
		if stopKind == TokenSemicolon {
			p.tok.Next(false)
			end = p.tok.Token().End
		}
	} else {
		// scanUnnested already left the cursor parked exactly at stopOffset
		// (the '{' token start); no repositioning needed before consuming it.
		p.tok.Next(false) // '{'
		blockTok := p.tok.Token()
		blockIdx := p.arena.CreateNode(KindBlock, blockTok.Start, 0, blockTok.Line, blockTok.Column)

		bodyChildren = p.parseAtRuleBody(category)
		p.arena.AppendChildren(blockIdx, bodyChildren)

		closeKind := p.tok.Next(false)
		blockEnd := p.tok.Token().End
		p.arena.SetLength(blockIdx, blockEnd-blockTok.Start)
		if closeKind != TokenRightBrace {
			p.arena.SetFlags(blockIdx, FlagHasError)
			p.arena.SetFlags(idx, FlagHasError)
		}
		p.arena.SetFlags(idx, FlagHasBlock)
		end = blockEnd
		preludeChildren = append(preludeChildren, blockIdx)
	}

	p.arena.SetLength(idx, end-startOffset)
	p.arena.AppendChildren(idx, preludeChildren)
	return idx
}

// parseAtRuleBody parses an at-rule's brace-delimited body, dispatched by
// category per spec §4.7's body-content column. The cursor enters just
// past the '{' and must exit at the (unconsumed) matching '}'.
func (p *parser) parseAtRuleBody(category string) []uint32 {
	switch category {
	case "media", "supports", "container", "document", "layer":
		return p.parseNodes(true)
	case "font-face", "page", "counter-style", "property", "viewport":
		return p.parseDeclarationBlock()
	case "keyframes":
		return p.parseKeyframesBody()
	default:
		return p.parseNodes(true)
	}
}

// parseDeclarationBlock parses a brace body that only ever contains
// declarations (font-face, page, counter-style, property, viewport): it
// runs the same trivia/declaration loop as parseNodes(true) but never
// falls back to nested-rule parsing on a declaration miss, resynchronizing
// to the next ';' instead.
func (p *parser) parseDeclarationBlock() []uint32 {
	var out []uint32
	for {
		switch kind := p.skipTrivia(true, &out); kind {
		case TokenEOF, TokenRightBrace:
			return out
		default:
			if idx, ok := p.tryParseDeclaration(); ok {
				out = append(out, idx)
				continue
			}
			stopOffset, stopKind := p.scanUnnested(TokenSemicolon, TokenRightBrace)
			end := stopOffset
			if stopKind == TokenSemicolon {
				p.tok.Next(false)
				end = p.tok.Token().End
			}
			tok := p.tok.Token()
			errIdx := p.arena.CreateNode(KindDeclaration, tok.Start, end-tok.Start, tok.Line, tok.Column)
			p.arena.SetFlags(errIdx, FlagHasError)
			out = append(out, errIdx)
			p.logResync(stopKind, end)
		}
	}
}

// parseKeyframesBody parses @keyframes's body as a sequence of style
// rules whose selector list is a comma-separated list of keyframe
// selectors ("from", "to", or a percentage) rather than the full
// selector grammar.
func (p *parser) parseKeyframesBody() []uint32 {
	var out []uint32
	for {
		switch kind := p.skipTrivia(true, &out); kind {
		case TokenEOF, TokenRightBrace:
			return out
		case TokenAtKeyword:
			out = append(out, p.parseAtRule())
		default:
			out = append(out, p.parseKeyframeRule())
		}
	}
}

// parseKeyframeRule parses one "<keyframe-selector-list> { declarations }"
// entry, reusing parseStyleRule's boundary-scan shape but with a
// keyframe-selector-list in place of the full selector grammar.
func (p *parser) parseKeyframeRule() uint32 {
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
	selList := p.parseKeyframeSelectorList(stopOffset)

	p.tok.Next(false) // '{'
	blockTok := p.tok.Token()
	blockIdx := p.arena.CreateNode(KindBlock, blockTok.Start, 0, blockTok.Line, blockTok.Column)
	children := p.parseNodes(true)
	p.arena.AppendChildren(blockIdx, children)

	closeKind := p.tok.Next(false)
	blockEnd := p.tok.Token().End
	p.arena.SetLength(blockIdx, blockEnd-blockTok.Start)
	if closeKind != TokenRightBrace {
		p.arena.SetFlags(blockIdx, FlagHasError)
	}

	idx := p.arena.CreateNode(KindStyleRule, startOffset, blockEnd-startOffset, startLine, startCol)
	p.arena.AppendChildren(idx, []uint32{selList, blockIdx})
	p.arena.SetFlags(idx, FlagHasBlock)
	for _, c := range children {
		if p.arena.Kind(c) == KindDeclaration {
			p.arena.SetFlags(idx, FlagHasDeclarations)
			break
		}
	}
	return idx
}

// parseKeyframeSelectorList parses a comma-separated list of "from"/"to"/
// percentage keyframe selectors, each recorded as a Selector wrapping a
// single Identifier or Dimension child so the façade's generic selector
// walk still applies.
func (p *parser) parseKeyframeSelectorList(limit int) uint32 {
	startOffset, startLine, startCol := p.peekStart()
	var children []uint32
	for {
		p.skipTriviaInline()
		if p.tok.Pos() >= limit {
			break
		}
		children = append(children, p.parseKeyframeSelector(limit))
		p.skipTriviaInline()
		if p.tok.Pos() >= limit {
			break
		}
		snap := p.tok.SavePosition()
		if p.tok.Next(false) == TokenComma {
			continue
		}
		p.tok.RestorePosition(snap)
		break
	}
	p.seekTo(limit)
	idx := p.arena.CreateNode(KindSelectorList, startOffset, limit-startOffset, startLine, startCol)
	p.arena.AppendChildren(idx, children)
	return idx
}

func (p *parser) parseKeyframeSelector(limit int) uint32 {
	snap := p.tok.SavePosition()
	kind := p.tok.Next(false)
	tok := p.tok.Token()

	var child uint32
	hasError := false
	switch kind {
	case TokenIdent:
		child = p.arena.CreateNode(KindIdentifier, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
	case TokenPercentage:
		child = p.makeDimension(tok, tok.End-1)
	default:
		p.tok.RestorePosition(snap)
		hasError = true
		if p.tok.Pos() < limit {
			p.tok.Next(false)
			tok = p.tok.Token()
		}
		child = p.arena.CreateNode(KindIdentifier, tok.Start, tok.End-tok.Start, tok.Line, tok.Column)
	}

	selTok := newNode(p.arena, p.source, child)
	idx := p.arena.CreateNode(KindSelector, selTok.Offset(), selTok.Length(), selTok.Line(), selTok.Column())
	p.arena.AppendChildren(idx, []uint32{child})
	if hasError {
		p.arena.SetFlags(idx, FlagHasError)
	}
	return idx
}

// stripVendorPrefix reports whether name matches the vendor-prefix pattern
// (isVendorPrefixName) and, if so, returns the name with its leading
// "-vendor-" segment removed so callers can dispatch @-webkit-keyframes
// the same as @keyframes (spec §9).
func stripVendorPrefix(name string) (stripped string, hadPrefix bool) {
	if !isVendorPrefixName(name) {
		return name, false
	}
	rest := name[1:]
	dash := strings.IndexByte(rest, '-')
	return rest[dash+1:], true
}

// parseAtRulePrelude dispatches a known at-rule's prelude span [start, end)
// by category, producing the typed prelude node set spec §4.7 lists.
func (p *parser) parseAtRulePrelude(category string, start, end int) []uint32 {
	switch category {
	case "media":
		return p.parseMediaQueryList(start, end)
	case "supports":
		return []uint32{p.parseSupportsCondition(start, end)}
	case "container":
		return p.parseContainerPrelude(start, end)
	case "document":
		return p.parseMediaQueryList(start, end)
	case "layer":
		return p.parseLayerNames(start, end)
	case "keyframes", "property":
		return p.parseSingleIdentPrelude(start, end)
	case "import":
		return p.parseImportPrelude(start, end)
	case "charset":
		return p.parseCharsetPrelude(start, end)
	case "nest":
		return p.parseNestPrelude(start, end)
	default:
		return nil
	}
}

// parseNestPrelude parses @nest's prelude as a full selector list (spec
// §4.7's "nest" row). Selector parsing walks the shared tokenizer cursor
// rather than raw text, so the cursor is repositioned to the prelude's
// start and the caller's position (parked at the at-rule's '{'/';'
// boundary) is restored afterward, exactly as declaration.go's
// attachValueSubtree does for value spans.
func (p *parser) parseNestPrelude(start, end int) []uint32 {
	if end <= start {
		return nil
	}
	outerPos := p.tok.SavePosition()
	p.seekTo(start)
	selIdx := p.parseSelectorList(end, true)
	p.tok.RestorePosition(outerPos)
	return []uint32{selIdx}
}

func (p *parser) parseSingleIdentPrelude(start, end int) []uint32 {
	trimStart, trimEnd := trimSpan(p.source, start, end)
	if trimEnd <= trimStart {
		return nil
	}
	line, col := p.lineColAt(trimStart)
	idx := p.arena.CreateNode(KindIdentifier, trimStart, trimEnd-trimStart, line, col)
	return []uint32{idx}
}

// parseMediaQueryList parses a comma-separated media-query-list (also
// reused for @document's url-match-function list, which shares the same
// top-level comma/keyword shape at this level of detail) into MediaQuery
// nodes, each wrapping an optional MediaType node and any number of
// MediaFeature/FeatureRange children, with "and"/"or" recorded as
// PreludeOperator nodes. A leading "only"/"not" keyword is skipped and
// gets no node of its own.
func (p *parser) parseMediaQueryList(start, end int) []uint32 {
	var out []uint32
	pos := start
	for pos < end {
		commaAt := topLevelCommaIndex(p.source, pos, end)
		segEnd := end
		if commaAt >= 0 {
			segEnd = commaAt
		}
		segStart, segStop := trimSpan(p.source, pos, segEnd)
		if segStop > segStart {
			out = append(out, p.parseMediaQuery(segStart, segStop))
		}
		if commaAt < 0 {
			break
		}
		pos = commaAt + 1
	}
	return out
}

// parseMediaQuery parses one query out of a media-query-list: an optional
// "only"/"not" keyword (skipped, not recorded) and type identifier, then
// zero or more "and"-joined features.
func (p *parser) parseMediaQuery(start, end int) uint32 {
	line, col := p.lineColAt(start)
	idx := p.arena.CreateNode(KindMediaQuery, start, end-start, line, col)
	var children []uint32
	pos := start

	pos = p.skipMediaKeyword(pos, end, "only")
	pos = p.skipMediaKeyword(pos, end, "not")

	if typeEnd, ok := p.scanLeadingIdent(pos, end); ok {
		tline, tcol := p.lineColAt(pos)
		typeIdx := p.arena.CreateNode(KindMediaType, pos, typeEnd-pos, tline, tcol)
		p.arena.SetContentLength(typeIdx, typeEnd-pos)
		children = append(children, typeIdx)
		pos = typeEnd
	}

	for pos < end {
		ws := skipWSForward(p.source, pos, end)
		pos = ws
		if pos >= end {
			break
		}
		if p.source[pos] == '(' {
			close := matchingParen(p.source, pos, end)
			featIdx := p.parseMediaFeature(pos+1, close)
			children = append(children, featIdx)
			pos = close + 1
			continue
		}
		identEnd, ok := p.scanLeadingIdent(pos, end)
		if !ok {
			break
		}
		word := lowerASCII(p.source[pos:identEnd])
		if word == "and" || word == "or" {
			oline, ocol := p.lineColAt(pos)
			opIdx := p.arena.CreateNode(KindPreludeOperator, pos, identEnd-pos, oline, ocol)
			children = append(children, opIdx)
		}
		pos = identEnd
	}

	p.arena.AppendChildren(idx, children)
	return idx
}

// skipMediaKeyword advances past a leading case-insensitive keyword (plus
// following whitespace) if present, else returns pos unchanged.
func (p *parser) skipMediaKeyword(pos, end int, keyword string) int {
	identEnd, ok := p.scanLeadingIdent(pos, end)
	if !ok || !isASCIICaseInsensitiveEqual(p.source[pos:identEnd], keyword) {
		return pos
	}
	return skipWSForward(p.source, identEnd, end)
}

// scanLeadingIdent reports the end offset of an identifier-shaped run of
// bytes starting at pos, without tokenizing (media-query preludes mix
// plain text and parenthesized features in a way that is simpler to scan
// by byte than to re-tokenize).
func (p *parser) scanLeadingIdent(pos, end int) (int, bool) {
	if pos >= end || !isIdentStart(p.source[pos]) {
		return pos, false
	}
	i := pos + 1
	for i < end && isIdentChar(p.source[i]) {
		i++
	}
	return i, true
}

// isIdentSpan reports whether [start, end) is entirely an identifier (as
// opposed to a numeric/dimension range operand like "100px"), mirroring
// the check makeRangeOperand uses to choose between an Identifier and a
// parsed value node.
func (p *parser) isIdentSpan(start, end int) bool {
	identEnd, ok := p.scanLeadingIdent(start, end)
	return ok && identEnd == end
}

// parseMediaFeature parses the interior of one "(...)" feature, producing
// a Boolean MediaFeature ("(name)"), a Plain MediaFeature ("(name: value)"),
// or a Range FeatureRange ("(value op name op value)" / "(name op value)").
func (p *parser) parseMediaFeature(start, end int) uint32 {
	trimStart, trimEnd := trimSpan(p.source, start, end)
	line, col := p.lineColAt(trimStart)

	colonAt := topLevelByteIndex(p.source, trimStart, trimEnd, ':')
	if colonAt >= 0 {
		nameStart, nameStop := trimSpan(p.source, trimStart, colonAt)
		idx := p.arena.CreateNode(KindMediaFeature, trimStart, trimEnd-trimStart, line, col)
		p.arena.SetContentLength(idx, nameStop-nameStart)
		valStart, valStop := trimSpan(p.source, colonAt+1, trimEnd)
		if valStop > valStart {
			valueNodes := p.parseValueSpanForMediaFeature(valStart, valStop)
			p.arena.AppendChildren(idx, valueNodes)
		}
		return idx
	}

	if opAt, opLen, ok := findComparisonOperator(p.source, trimStart, trimEnd); ok {
		idx := p.arena.CreateNode(KindFeatureRange, trimStart, trimEnd-trimStart, line, col)
		var children []uint32
		nameStart, nameStop := -1, -1

		lhsStart, lhsStop := trimSpan(p.source, trimStart, opAt)
		if p.isIdentSpan(lhsStart, lhsStop) && nameStart < 0 {
			nameStart, nameStop = lhsStart, lhsStop
		}
		children = append(children, p.makeRangeOperand(lhsStart, lhsStop))

		oline, ocol := p.lineColAt(opAt)
		opIdx := p.arena.CreateNode(KindPreludeOperator, opAt, opLen, oline, ocol)
		children = append(children, opIdx)

		rest := opAt + opLen
		if opAt2, opLen2, ok2 := findComparisonOperator(p.source, rest, trimEnd); ok2 {
			midStart, midStop := trimSpan(p.source, rest, opAt2)
			if p.isIdentSpan(midStart, midStop) && nameStart < 0 {
				nameStart, nameStop = midStart, midStop
			}
			children = append(children, p.makeRangeOperand(midStart, midStop))
			o2line, o2col := p.lineColAt(opAt2)
			op2Idx := p.arena.CreateNode(KindPreludeOperator, opAt2, opLen2, o2line, o2col)
			children = append(children, op2Idx)
			rhsStart, rhsStop := trimSpan(p.source, opAt2+opLen2, trimEnd)
			if p.isIdentSpan(rhsStart, rhsStop) && nameStart < 0 {
				nameStart, nameStop = rhsStart, rhsStop
			}
			children = append(children, p.makeRangeOperand(rhsStart, rhsStop))
		} else {
			rhsStart, rhsStop := trimSpan(p.source, rest, trimEnd)
			if p.isIdentSpan(rhsStart, rhsStop) && nameStart < 0 {
				nameStart, nameStop = rhsStart, rhsStop
			}
			children = append(children, p.makeRangeOperand(rhsStart, rhsStop))
		}

		if nameStart >= 0 {
			p.arena.SetContentStartDelta(idx, nameStart-trimStart)
			p.arena.SetContentLength(idx, nameStop-nameStart)
		}
		p.arena.AppendChildren(idx, children)
		return idx
	}

	idx := p.arena.CreateNode(KindMediaFeature, trimStart, trimEnd-trimStart, line, col)
	p.arena.SetContentLength(idx, trimEnd-trimStart)
	return idx
}

// makeRangeOperand builds an Identifier node when the operand span is
// entirely identifier-shaped (the feature name) and a value node
// (Number/Dimension) otherwise, whichever side of the operator it is on.
func (p *parser) makeRangeOperand(start, end int) uint32 {
	if end <= start {
		line, col := p.lineColAt(start)
		return p.arena.CreateNode(KindIdentifier, start, 0, line, col)
	}
	if identEnd, ok := p.scanLeadingIdent(start, end); ok && identEnd == end {
		line, col := p.lineColAt(start)
		idx := p.arena.CreateNode(KindIdentifier, start, end-start, line, col)
		p.arena.SetContentLength(idx, end-start)
		return idx
	}
	nodes := p.parseValueSpanForMediaFeature(start, end)
	if len(nodes) > 0 {
		return nodes[0]
	}
	line, col := p.lineColAt(start)
	return p.arena.CreateNode(KindIdentifier, start, end-start, line, col)
}

// parseValueSpanForMediaFeature reuses the value parser for a media
// feature's value, saving/restoring the outer cursor exactly as
// declaration.go's attachValueSubtree does, since this is invoked while
// scanning the prelude text ahead of the at-rule's own cursor position.
func (p *parser) parseValueSpanForMediaFeature(start, end int) []uint32 {
	outerPos := p.tok.SavePosition()
	nodes := p.parseValueSpan(start, end)
	p.tok.RestorePosition(outerPos)
	return nodes
}

// parseSupportsCondition parses a (possibly and/or/not-combined) supports
// condition into a single SupportsQuery node whose value sub-span is the
// full condition text (spec §4.7: "the inner span is stored on each
// SupportsQuery node's value sub-span" — sub-condition detail is left to
// the stored span rather than a recursive node tree, since supports()
// conditions are evaluated by a cascade engine this parser does not
// implement).
func (p *parser) parseSupportsCondition(start, end int) uint32 {
	trimStart, trimEnd := trimSpan(p.source, start, end)
	line, col := p.lineColAt(trimStart)
	idx := p.arena.CreateNode(KindSupportsQuery, trimStart, trimEnd-trimStart, line, col)
	if trimEnd > trimStart {
		p.arena.SetValueStartDelta(idx, 0)
		p.arena.SetValueLength(idx, trimEnd-trimStart)
	}
	return idx
}

// parseContainerPrelude parses an optional leading container-name
// identifier into a ContainerQuery node, followed by the condition
// ("(...)" feature tests, "style(...)" functions, and/or/not combinations),
// per spec §4.7. The condition is recorded as one SupportsQuery node whose
// value sub-span is the condition text; it is not broken down into
// MediaFeature or function nodes.
func (p *parser) parseContainerPrelude(start, end int) []uint32 {
	trimStart, trimEnd := trimSpan(p.source, start, end)
	if trimEnd <= trimStart {
		return nil
	}
	var out []uint32
	pos := trimStart
	if identEnd, ok := p.scanLeadingIdent(pos, trimEnd); ok {
		word := lowerASCII(p.source[pos:identEnd])
		if word != "not" && (identEnd >= trimEnd || p.source[identEnd] != '(') {
			line, col := p.lineColAt(pos)
			nameIdx := p.arena.CreateNode(KindContainerQuery, pos, identEnd-pos, line, col)
			p.arena.SetContentLength(nameIdx, identEnd-pos)
			out = append(out, nameIdx)
			pos = skipWSForward(p.source, identEnd, trimEnd)
		}
	}
	if pos < trimEnd {
		line, col := p.lineColAt(pos)
		condIdx := p.arena.CreateNode(KindSupportsQuery, pos, trimEnd-pos, line, col)
		p.arena.SetValueStartDelta(condIdx, 0)
		p.arena.SetValueLength(condIdx, trimEnd-pos)
		out = append(out, condIdx)
	}
	return out
}

// parseLayerNames parses @layer's comma-separated list of dotted layer
// names into LayerName nodes whose value span is the full dotted name.
func (p *parser) parseLayerNames(start, end int) []uint32 {
	var out []uint32
	pos := start
	for pos < end {
		commaAt := topLevelCommaIndex(p.source, pos, end)
		segEnd := end
		if commaAt >= 0 {
			segEnd = commaAt
		}
		segStart, segStop := trimSpan(p.source, pos, segEnd)
		if segStop > segStart {
			line, col := p.lineColAt(segStart)
			idx := p.arena.CreateNode(KindLayerName, segStart, segStop-segStart, line, col)
			p.arena.SetValueStartDelta(idx, 0)
			p.arena.SetValueLength(idx, segStop-segStart)
			out = append(out, idx)
		}
		if commaAt < 0 {
			break
		}
		pos = commaAt + 1
	}
	return out
}

// parseImportPrelude parses @import's ordered optional pieces: a required
// URL (String or Url), then optional layer/layer(name), then optional
// supports(condition), then an optional trailing media-query-list.
func (p *parser) parseImportPrelude(start, end int) []uint32 {
	trimStart, trimEnd := trimSpan(p.source, start, end)
	if trimEnd <= trimStart {
		return nil
	}
	var out []uint32
	pos := trimStart

	urlNodes := p.parseValueSpanForMediaFeature(pos, trimEnd)
	if len(urlNodes) == 0 {
		return nil
	}
	out = append(out, urlNodes[0])
	pos = newNode(p.arena, p.source, urlNodes[0]).End()
	pos = skipWSForward(p.source, pos, trimEnd)

	if identEnd, ok := p.scanLeadingIdent(pos, trimEnd); ok &&
		isASCIICaseInsensitiveEqual(p.source[pos:identEnd], "layer") {
		if identEnd < trimEnd && p.source[identEnd] == '(' {
			close := matchingParen(p.source, identEnd, trimEnd)
			nameStart, nameStop := trimSpan(p.source, identEnd+1, close)
			line, col := p.lineColAt(pos)
			idx := p.arena.CreateNode(KindLayerName, pos, close+1-pos, line, col)
			if nameStop > nameStart {
				p.arena.SetValueStartDelta(idx, nameStart-pos)
				p.arena.SetValueLength(idx, nameStop-nameStart)
			}
			out = append(out, idx)
			pos = skipWSForward(p.source, close+1, trimEnd)
		} else {
			line, col := p.lineColAt(pos)
			idx := p.arena.CreateNode(KindLayerName, pos, identEnd-pos, line, col)
			out = append(out, idx)
			pos = skipWSForward(p.source, identEnd, trimEnd)
		}
	}

	if identEnd, ok := p.scanLeadingIdent(pos, trimEnd); ok &&
		isASCIICaseInsensitiveEqual(p.source[pos:identEnd], "supports") &&
		identEnd < trimEnd && p.source[identEnd] == '(' {
		close := matchingParen(p.source, identEnd, trimEnd)
		out = append(out, p.parseSupportsCondition(identEnd+1, close))
		pos = skipWSForward(p.source, close+1, trimEnd)
	}

	if pos < trimEnd {
		out = append(out, p.parseMediaQueryList(pos, trimEnd)...)
	}

	return out
}

// parseCharsetPrelude parses @charset's single required string argument.
func (p *parser) parseCharsetPrelude(start, end int) []uint32 {
	trimStart, trimEnd := trimSpan(p.source, start, end)
	if trimEnd <= trimStart || p.source[trimStart] != '"' {
		return nil
	}
	nodes := p.parseValueSpanForMediaFeature(trimStart, trimEnd)
	return nodes
}

// topLevelCommaIndex finds the first ',' in [start, end) that is not
// nested inside parens/brackets/strings.
func topLevelCommaIndex(source string, start, end int) int {
	return topLevelByteIndex(source, start, end, ',')
}

// topLevelByteIndex finds the first occurrence of target in [start, end)
// that is not nested inside parens/brackets or a quoted string.
func topLevelByteIndex(source string, start, end int, target byte) int {
	depth := 0
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
		switch c {
		case '"', '\'':
			inString = c
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 && c == target {
				return i
			}
		}
	}
	return -1
}

// findComparisonOperator finds the first range-comparison operator
// (<=, >=, <, >, =) in [start, end), returning its offset and byte length.
func findComparisonOperator(source string, start, end int) (int, int, bool) {
	for i := start; i < end; i++ {
		switch source[i] {
		case '<', '>':
			if i+1 < end && source[i+1] == '=' {
				return i, 2, true
			}
			return i, 1, true
		case '=':
			return i, 1, true
		}
	}
	return 0, 0, false
}

// matchingParen returns the offset of the ')' matching the '(' at pos,
// tracking nested parens, or end if unmatched.
func matchingParen(source string, pos, end int) int {
	depth := 0
	for i := pos; i < end; i++ {
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return end
}

// skipWSForward advances pos past whitespace bytes, stopping at end.
func skipWSForward(source string, pos, end int) int {
	for pos < end && isWhitespace(source[pos]) {
		pos++
	}
	return pos
}
