package css

// Kind identifies the syntactic role of a node stored in an Arena. The
// numeric values are part of the contract, not an implementation detail:
// sub-parsers use range checks over them (e.g. "kind in [10..18]" selects a
// value-content node), so the ordering below must stay stable.
type Kind uint8

const (
	// KindNone is the null-node sentinel. Index 0 in every Arena is
	// reserved for it; no real node ever carries this kind.
	KindNone Kind = 0

	KindStylesheet  Kind = 1
	KindStyleRule   Kind = 2
	KindAtRule      Kind = 3
	KindDeclaration Kind = 4
	KindSelector    Kind = 5
	KindComment     Kind = 6
	KindBlock       Kind = 7

	// Value-content kinds, 10-18.
	KindIdentifier  Kind = 10
	KindNumber      Kind = 11
	KindDimension   Kind = 12
	KindString      Kind = 13
	KindHash        Kind = 14
	KindFunction    Kind = 15
	KindOperator    Kind = 16
	KindParenthesis Kind = 17
	KindURL         Kind = 18

	// KindValue wraps a Declaration's parsed value nodes.
	KindValue Kind = 19

	// Selector components, 20-31.
	KindSelectorList          Kind = 20
	KindTypeSelector          Kind = 21
	KindClassSelector         Kind = 22
	KindIDSelector            Kind = 23
	KindAttributeSelector     Kind = 24
	KindPseudoClassSelector   Kind = 25
	KindPseudoElementSelector Kind = 26
	KindCombinator            Kind = 27
	KindUniversalSelector     Kind = 28
	KindNestingSelector       Kind = 29
	KindNthSelector           Kind = 30
	KindNthOfSelector         Kind = 31

	// Prelude kinds, 32-39.
	KindMediaQuery      Kind = 32
	KindMediaFeature    Kind = 33
	KindMediaType       Kind = 34
	KindContainerQuery  Kind = 35
	KindSupportsQuery   Kind = 36
	KindLayerName       Kind = 37
	KindPreludeOperator Kind = 38
	KindFeatureRange    Kind = 39

	KindLangSelector Kind = 56
)

// IsValueContent reports whether k is one of the value-node kinds produced
// by the value parser (§4.8): identifiers, numbers, dimensions, strings,
// hashes, functions, operators, parenthesized groups, and URLs.
func (k Kind) IsValueContent() bool { return k >= KindIdentifier && k <= KindURL }

// IsSelectorComponent reports whether k is one of the selector-tree kinds
// produced by the selector parser (§4.6).
func (k Kind) IsSelectorComponent() bool { return k >= KindSelectorList && k <= KindNthOfSelector }

// IsPreludeComponent reports whether k is one of the at-rule prelude kinds
// produced by the prelude parser (§4.7).
func (k Kind) IsPreludeComponent() bool { return k >= KindMediaQuery && k <= KindFeatureRange }

var kindNames = [...]struct {
	kind Kind
	name string
}{
	{KindNone, "None"},
	{KindStylesheet, "Stylesheet"},
	{KindStyleRule, "StyleRule"},
	{KindAtRule, "AtRule"},
	{KindDeclaration, "Declaration"},
	{KindSelector, "Selector"},
	{KindComment, "Comment"},
	{KindBlock, "Block"},
	{KindIdentifier, "Identifier"},
	{KindNumber, "Number"},
	{KindDimension, "Dimension"},
	{KindString, "String"},
	{KindHash, "Hash"},
	{KindFunction, "Function"},
	{KindOperator, "Operator"},
	{KindParenthesis, "Parenthesis"},
	{KindURL, "Url"},
	{KindValue, "Value"},
	{KindSelectorList, "SelectorList"},
	{KindTypeSelector, "TypeSelector"},
	{KindClassSelector, "ClassSelector"},
	{KindIDSelector, "IdSelector"},
	{KindAttributeSelector, "AttributeSelector"},
	{KindPseudoClassSelector, "PseudoClassSelector"},
	{KindPseudoElementSelector, "PseudoElementSelector"},
	{KindCombinator, "Combinator"},
	{KindUniversalSelector, "UniversalSelector"},
	{KindNestingSelector, "NestingSelector"},
	{KindNthSelector, "NthSelector"},
	{KindNthOfSelector, "NthOfSelector"},
	{KindMediaQuery, "MediaQuery"},
	{KindMediaFeature, "MediaFeature"},
	{KindMediaType, "MediaType"},
	{KindContainerQuery, "ContainerQuery"},
	{KindSupportsQuery, "SupportsQuery"},
	{KindLayerName, "LayerName"},
	{KindPreludeOperator, "PreludeOperator"},
	{KindFeatureRange, "FeatureRange"},
	{KindLangSelector, "LangSelector"},
}

// String returns the debug/interchange name of k, e.g. "StyleRule". It is
// not a CSSTree-compatible name table (that string-naming surface is an
// external collaborator concern, out of scope here) — just enough for
// tests and Node.Dump to be readable.
func (k Kind) String() string {
	for _, e := range kindNames {
		if e.kind == k {
			return e.name
		}
	}
	return "Unknown"
}
