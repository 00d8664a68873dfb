package css

// Parse parses source as a complete stylesheet and returns its Stylesheet
// root node (spec §6.1). The returned Node's Text() always equals source.
func Parse(source string, opts ...Option) Node {
	p := newParser(source, resolveOptions(opts))
	idx := p.parseStylesheet()
	return newNode(p.arena, p.source, idx)
}

// ParseDeclaration parses source as a single declaration, returning an
// empty Declaration node flagged HAS_ERROR at offset 0 if source does not
// begin with one (spec §6.1).
func ParseDeclaration(source string, opts ...Option) Node {
	p := newParser(source, resolveOptions(opts))
	if idx, ok := p.tryParseDeclaration(); ok {
		return newNode(p.arena, p.source, idx)
	}
	idx := p.arena.CreateNode(KindDeclaration, 0, 0, 1, 1)
	p.arena.SetFlags(idx, FlagHasError)
	return newNode(p.arena, p.source, idx)
}

// ParseValue parses source as a declaration-value node sequence (spec
// §6.1), independent of any surrounding declaration or Value wrapper.
func ParseValue(source string, opts ...Option) []Node {
	p := newParser(source, resolveOptions(opts))
	idxs := p.parseValueSpan(0, len(source))
	out := make([]Node, len(idxs))
	for i, idx := range idxs {
		out[i] = newNode(p.arena, p.source, idx)
	}
	return out
}

// ParseAtRulePrelude parses source as the prelude of an at-rule named
// name, dispatched by the same lowercased, vendor-prefix-stripped category
// table parseAtRule uses (spec §6.1). An unrecognized name returns an
// empty slice.
func ParseAtRulePrelude(name, source string, opts ...Option) []Node {
	p := newParser(source, resolveOptions(opts))
	strippedName, _ := stripVendorPrefix(name)
	category := lowerASCII(strippedName)
	idxs := p.parseAtRulePrelude(category, 0, len(source))
	out := make([]Node, len(idxs))
	for i, idx := range idxs {
		out[i] = newNode(p.arena, p.source, idx)
	}
	return out
}
