package css

import "strconv"

// Node is a cheap, read-only value type wrapping an arena index. It never
// exposes the arena's write interface (spec §4.9): every accessor reads
// the arena on demand and returns the documented zero value when a
// semantic projection does not apply to the node's kind.
//
// Grounded on rupor-github-fb2cng/css/types.go's map-based Stylesheet/Rule
// value types, reshaped from owned maps into an arena-index façade per
// spec §4.9 — there is no teacher precedent for an index-based façade.
type Node struct {
	arena  *Arena
	source string
	index  uint32
}

// newNode wraps index. index 0 (the null sentinel) produces a Node whose
// IsValid reports false and whose accessors all return zero values.
func newNode(arena *Arena, source string, index uint32) Node {
	return Node{arena: arena, source: source, index: index}
}

// IsValid reports whether the node refers to a real arena entry rather
// than the index-0 null sentinel.
func (n Node) IsValid() bool { return n.arena != nil && n.index != 0 }

// Kind returns the node's syntactic kind, or KindNone for an invalid node.
func (n Node) Kind() Kind {
	if !n.IsValid() {
		return KindNone
	}
	return n.arena.Kind(n.index)
}

// KindName returns the debug/interchange name of the node's kind.
func (n Node) KindName() string { return n.Kind().String() }

// Offset returns the node's absolute start byte offset in source.
func (n Node) Offset() int {
	if !n.IsValid() {
		return 0
	}
	return n.arena.StartOffset(n.index)
}

// Length returns the node's byte length in source.
func (n Node) Length() int {
	if !n.IsValid() {
		return 0
	}
	return n.arena.Length(n.index)
}

// End returns Offset() + Length().
func (n Node) End() int { return n.Offset() + n.Length() }

// Line returns the 1-based source line of the node's first byte.
func (n Node) Line() int {
	if !n.IsValid() {
		return 0
	}
	return n.arena.StartLine(n.index)
}

// Column returns the 1-based source column of the node's first byte.
func (n Node) Column() int {
	if !n.IsValid() {
		return 0
	}
	return n.arena.StartColumn(n.index)
}

// Text returns the node's full source slice.
func (n Node) Text() string {
	if !n.IsValid() {
		return ""
	}
	return n.source[n.Offset():n.End()]
}

func (n Node) flags() Flags {
	if !n.IsValid() {
		return 0
	}
	return n.arena.Flags(n.index)
}

// IsImportant reports the IMPORTANT flag (Declaration).
func (n Node) IsImportant() bool { return n.flags().Has(FlagImportant) }

// HasError reports the HAS_ERROR flag.
func (n Node) HasError() bool { return n.flags().Has(FlagHasError) }

// HasBlock reports the HAS_BLOCK flag (StyleRule/AtRule).
func (n Node) HasBlock() bool { return n.flags().Has(FlagHasBlock) }

// HasDeclarations reports the HAS_DECLARATIONS flag (StyleRule).
func (n Node) HasDeclarations() bool { return n.flags().Has(FlagHasDeclarations) }

// HasParens reports the HAS_PARENS flag (functional pseudo-class).
func (n Node) HasParens() bool { return n.flags().Has(FlagHasParens) }

// IsBrowserHack reports the BROWSERHACK flag (Declaration).
func (n Node) IsBrowserHack() bool { return n.flags().Has(FlagBrowserHack) }

// IsVendorPrefixed reports the VENDOR_PREFIXED flag, computed by the
// parser for Declaration properties and pseudo-selector names that match
// the vendor-prefix pattern (-webkit-, -moz-, ...).
func (n Node) IsVendorPrefixed() bool { return n.flags().Has(FlagVendorPrefixed) }

// HasChildren reports whether the node has at least one child.
func (n Node) HasChildren() bool {
	if !n.IsValid() {
		return false
	}
	return n.arena.HasChildren(n.index)
}

// HasNext reports whether the node has a following sibling.
func (n Node) HasNext() bool {
	if !n.IsValid() {
		return false
	}
	return n.arena.HasNextSibling(n.index)
}

// HasPrelude reports whether an AtRule recorded a non-empty prelude span.
func (n Node) HasPrelude() bool {
	if n.Kind() != KindAtRule {
		return false
	}
	return n.arena.ValueLength(n.index) > 0
}

// preludeHolder is a placeholder that currently resolves to the node
// itself; prelude children hang directly off the AtRule node (see
// atrule.go) rather than off a wrapper, so HasPrelude only needs the
// value span check in practice. Kept as a method so future prelude-child
// relocation is a one-line change.
func (n Node) preludeHolder() uint32 { return n.index }

// FirstChild returns the node's first child, or the invalid zero Node.
func (n Node) FirstChild() Node {
	if !n.IsValid() {
		return Node{}
	}
	return newNode(n.arena, n.source, n.arena.FirstChild(n.index))
}

// NextSibling returns the node's following sibling, or the invalid zero
// Node.
func (n Node) NextSibling() Node {
	if !n.IsValid() {
		return Node{}
	}
	return newNode(n.arena, n.source, n.arena.NextSibling(n.index))
}

// Children materializes the node's children in source order.
func (n Node) Children() []Node {
	if !n.IsValid() {
		return nil
	}
	idxs := n.arena.Children(n.index)
	out := make([]Node, len(idxs))
	for i, idx := range idxs {
		out[i] = newNode(n.arena, n.source, idx)
	}
	return out
}

// ChildAt returns the i-th child (0-based), or the invalid zero Node if
// out of range.
func (n Node) ChildAt(i int) Node {
	c := n.FirstChild()
	for ; i > 0 && c.IsValid(); i-- {
		c = c.NextSibling()
	}
	return c
}

func (n Node) contentSpan() (start, length int) {
	if !n.IsValid() {
		return 0, 0
	}
	return n.Offset() + n.arena.ContentStartDelta(n.index), n.arena.ContentLength(n.index)
}

func (n Node) contentText() string {
	start, length := n.contentSpan()
	return n.source[start : start+length]
}

func (n Node) valueSpan() (start, length int) {
	if !n.IsValid() {
		return 0, 0
	}
	return n.Offset() + n.arena.ValueStartDelta(n.index), n.arena.ValueLength(n.index)
}

func (n Node) valueText() string {
	start, length := n.valueSpan()
	return n.source[start : start+length]
}

// Name returns the content sub-span: a selector's tag/class/id name, an
// at-rule's keyword name, a function's name, a pseudo-selector's name.
// Returns "" for kinds without a content sub-span.
func (n Node) Name() string {
	if !n.IsValid() {
		return ""
	}
	switch n.Kind() {
	case KindTypeSelector, KindClassSelector, KindIDSelector, KindUniversalSelector,
		KindNestingSelector, KindPseudoClassSelector, KindPseudoElementSelector,
		KindAtRule, KindFunction, KindAttributeSelector, KindMediaType, KindMediaFeature,
		KindFeatureRange, KindContainerQuery, KindSupportsQuery, KindLangSelector:
		return n.contentText()
	default:
		return ""
	}
}

// Property returns a Declaration's property name (the content sub-span).
func (n Node) Property() string {
	if n.Kind() != KindDeclaration {
		return ""
	}
	return n.contentText()
}

// Value returns a Declaration's Value child if one was parsed, otherwise
// the trimmed raw value text, or "" if the value was empty.
func (n Node) Value() string {
	switch n.Kind() {
	case KindDeclaration:
		if v := n.valueChild(); v.IsValid() {
			return v.Text()
		}
		_, length := n.valueSpan()
		if length == 0 {
			return ""
		}
		return n.valueText()
	case KindDimension:
		return n.contentText()
	case KindURL:
		if s := n.stringChild(); s.IsValid() {
			text := s.Text()
			if len(text) >= 2 {
				return text[1 : len(text)-1]
			}
			return text
		}
		_, length := n.valueSpan()
		if length == 0 {
			return ""
		}
		return n.valueText()
	case KindAttributeSelector:
		_, length := n.valueSpan()
		if length == 0 {
			return ""
		}
		return n.valueText()
	default:
		return ""
	}
}

func (n Node) stringChild() Node {
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == KindString {
			return c
		}
	}
	return Node{}
}

func (n Node) valueChild() Node {
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == KindValue {
			return c
		}
	}
	return Node{}
}

// Unit returns a Dimension's unit suffix (the ident-chars after the
// numeric prefix).
func (n Node) Unit() string {
	if n.Kind() != KindDimension {
		return ""
	}
	start, length := n.valueSpan()
	return n.source[start : start+length]
}

// NumericValue parses a Number or Dimension's leading numeric prefix,
// returning 0 and false if the node is not numeric or the prefix does not
// parse.
func (n Node) NumericValue() (float64, bool) {
	switch n.Kind() {
	case KindNumber:
		f, err := strconv.ParseFloat(n.Text(), 64)
		return f, err == nil
	case KindDimension:
		f, err := strconv.ParseFloat(n.contentText(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// AttrOperator returns an AttributeSelector's comparison operator tag.
func (n Node) AttrOperator() AttrOperator {
	if !n.IsValid() || n.Kind() != KindAttributeSelector {
		return AttrOperatorNone
	}
	return n.arena.AttrOperator(n.index)
}

// AttrCaseFlag returns an AttributeSelector's case-sensitivity tag.
func (n Node) AttrCaseFlag() AttrCase {
	if !n.IsValid() || n.Kind() != KindAttributeSelector {
		return AttrCaseNone
	}
	return n.arena.AttrFlags(n.index)
}

// NthA returns an NthSelector's "a" portion text (the content sub-span,
// including the "n" or a keyword like "odd"/"even").
func (n Node) NthA() string {
	if n.Kind() != KindNthSelector {
		return ""
	}
	return n.contentText()
}

// NthB returns an NthSelector's "b" portion text, reconstructing a sign
// that was separated from the digits by whitespace (e.g. "2n - 1") by
// scanning backward from the value sub-span to the nearest non-whitespace
// byte.
func (n Node) NthB() string {
	if n.Kind() != KindNthSelector {
		return ""
	}
	start, length := n.valueSpan()
	if length == 0 {
		return ""
	}
	text := n.source[start : start+length]
	if text[0] == '+' || text[0] == '-' {
		return text
	}
	i := start - 1
	for i > n.Offset() && isWhitespace(n.source[i]) {
		i--
	}
	if i >= n.Offset() && (n.source[i] == '+' || n.source[i] == '-') {
		return n.source[i:start] + text
	}
	return text
}

// Nth returns an NthOfSelector's wrapped NthSelector child.
func (n Node) Nth() Node {
	if n.Kind() != KindNthOfSelector {
		return Node{}
	}
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == KindNthSelector {
			return c
		}
	}
	return Node{}
}

// Selector returns an NthOfSelector's trailing SelectorList child (the
// selectors following the "of" keyword).
func (n Node) Selector() Node {
	if n.Kind() != KindNthOfSelector {
		return Node{}
	}
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == KindSelectorList {
			return c
		}
	}
	return Node{}
}

// SelectorList returns a functional pseudo-class's argument SelectorList
// child (is(), where(), not(), has(), ...).
func (n Node) SelectorList() Node {
	if n.Kind() != KindPseudoClassSelector {
		return Node{}
	}
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == KindSelectorList {
			return c
		}
	}
	return Node{}
}
