package css

// Flags is the per-node bit set described in spec §3.3. All bits are clear
// on creation; they are set via OR and cleared via AND-NOT.
type Flags uint8

const (
	// FlagImportant marks a Declaration whose value was followed by
	// "!<ident>" — "important" is conventional, but any ident counts.
	FlagImportant Flags = 1 << iota
	// FlagHasError marks a node a sub-parser could not finish coherently;
	// its span still covers the source it was meant to describe.
	FlagHasError
	// FlagLengthOverflow marks a node whose true length exceeds the 16-bit
	// inline length field; the true length lives in the arena's sidecar map.
	FlagLengthOverflow
	// FlagHasBlock marks a StyleRule or AtRule with a brace-delimited Block
	// child.
	FlagHasBlock
	// FlagVendorPrefixed marks a Declaration property or pseudo-selector
	// name matching the vendor-prefix pattern (-webkit-, -moz-, ...).
	FlagVendorPrefixed
	// FlagHasDeclarations marks a StyleRule whose Block has at least one
	// direct Declaration child.
	FlagHasDeclarations
	// FlagHasParens marks a functional pseudo-class that has "()" even when
	// its argument list produced no children.
	FlagHasParens
	// FlagBrowserHack marks a Declaration whose property name carried a
	// recognized browser-hack prefix.
	FlagBrowserHack
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// AttrOperator tags the comparison operator of an AttributeSelector.
type AttrOperator uint8

const (
	AttrOperatorNone      AttrOperator = 0 // [name]
	AttrOperatorEquals    AttrOperator = 1 // [name=value]
	AttrOperatorIncludes  AttrOperator = 2 // [name~=value]
	AttrOperatorDashMatch AttrOperator = 3 // [name|=value]
	AttrOperatorPrefix    AttrOperator = 4 // [name^=value]
	AttrOperatorSuffix    AttrOperator = 5 // [name$=value]
	AttrOperatorSubstring AttrOperator = 6 // [name*=value]
)

// AttrCase tags the case-sensitivity modifier of an AttributeSelector.
type AttrCase uint8

const (
	AttrCaseNone        AttrCase = 0 // no modifier
	AttrCaseInsensitive AttrCase = 1 // trailing "i"/"I"
	AttrCaseSensitive   AttrCase = 2 // trailing "s"/"S"
)
