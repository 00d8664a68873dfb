package css

// Character classification is the leaf component of the parsing pipeline:
// a 128-entry table of bit flags keyed by ASCII byte, so every predicate
// below costs one cache-line lookup plus a bounds check instead of a chain
// of comparisons. Code points at or above 0x80 are always ident-start and
// ident-char per CSS Syntax Level 3, and are handled by the bounds check
// rather than a table entry (UTF-8 continuation and lead bytes are always
// >= 0x80, so byte-wise scanning consumes a whole multi-byte run correctly
// without decoding runes).
//
// Grounded on lukehoban-browser/css/tokenizer.go's isNameStart/isNameChar,
// generalized from unicode.IsLetter/IsDigit calls into the table form spec
// requires.
type charFlag uint8

const (
	flagDigit charFlag = 1 << iota
	flagHexDigit
	flagAlpha
	flagWhitespace
	flagNewline
	flagIdentStart
	flagIdentChar
)

var charTable [128]charFlag

func init() {
	for c := 0; c < 128; c++ {
		var f charFlag
		switch {
		case c >= '0' && c <= '9':
			f |= flagDigit | flagHexDigit | flagIdentChar
		}
		switch {
		case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			f |= flagHexDigit
		}
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			f |= flagAlpha | flagIdentStart | flagIdentChar
		}
		switch c {
		case ' ', '\t':
			f |= flagWhitespace
		case '\n', '\r', '\f':
			f |= flagWhitespace | flagNewline
		case '_', '-':
			f |= flagIdentStart | flagIdentChar
		}
		charTable[c] = f
	}
}

func isDigit(c byte) bool      { return c < 0x80 && charTable[c]&flagDigit != 0 }
func isHexDigit(c byte) bool   { return c < 0x80 && charTable[c]&flagHexDigit != 0 }
func isAlpha(c byte) bool      { return c < 0x80 && charTable[c]&flagAlpha != 0 }
func isWhitespace(c byte) bool { return c < 0x80 && charTable[c]&flagWhitespace != 0 }
func isNewline(c byte) bool    { return c < 0x80 && charTable[c]&flagNewline != 0 }

// isIdentStart reports whether c alone can begin an identifier. Note that
// '-' is ident-start here (CSS custom properties and vendor prefixes begin
// with one or two hyphens); callers that need the full three-code-point
// "would start an identifier" rule use Tokenizer.wouldStartIdentifierAt
// instead.
func isIdentStart(c byte) bool {
	if c >= 0x80 {
		return true
	}
	return charTable[c]&flagIdentStart != 0
}

func isIdentChar(c byte) bool {
	if c >= 0x80 {
		return true
	}
	return charTable[c]&flagIdentChar != 0
}
