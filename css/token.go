package css

// TokenKind enumerates the CSS Syntax Level 3 token types. Grounded on
// lukehoban-browser/css/tokenizer.go's TokenType, extended from that
// teacher's CSS 2.1 subset (18 kinds, no Function/AtKeyword-with-span,
// Percentage, Dimension, Url, UnicodeRange, CDO/CDC) to the full set
// spec §4.2 requires.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenFunction
	TokenAtKeyword
	TokenHash
	TokenString
	TokenBadString
	TokenURL
	TokenBadURL
	TokenDelim
	TokenNumber
	TokenPercentage
	TokenDimension
	TokenWhitespace
	TokenCDO
	TokenCDC
	TokenColon
	TokenSemicolon
	TokenComma
	TokenLeftBracket
	TokenRightBracket
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenComment
	TokenUnicodeRange
)

var tokenKindNames = [...]string{
	TokenEOF:          "EOF",
	TokenIdent:        "Ident",
	TokenFunction:     "Function",
	TokenAtKeyword:    "AtKeyword",
	TokenHash:         "Hash",
	TokenString:       "String",
	TokenBadString:    "BadString",
	TokenURL:          "Url",
	TokenBadURL:       "BadUrl",
	TokenDelim:        "Delim",
	TokenNumber:       "Number",
	TokenPercentage:   "Percentage",
	TokenDimension:    "Dimension",
	TokenWhitespace:   "Whitespace",
	TokenCDO:          "CDO",
	TokenCDC:          "CDC",
	TokenColon:        "Colon",
	TokenSemicolon:    "Semicolon",
	TokenComma:        "Comma",
	TokenLeftBracket:  "LeftBracket",
	TokenRightBracket: "RightBracket",
	TokenLeftParen:    "LeftParen",
	TokenRightParen:   "RightParen",
	TokenLeftBrace:    "LeftBrace",
	TokenRightBrace:   "RightBrace",
	TokenComment:      "Comment",
	TokenUnicodeRange: "UnicodeRange",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// Token is a lexical token over the source. It carries only its kind and
// byte span plus the line/column of its first byte — no allocated text, by
// design (spec §2 component 2): callers slice the source directly when
// they need the token's text.
type Token struct {
	Kind   TokenKind
	Start  int
	End    int
	Line   int
	Column int
}

// Text returns the token's source slice.
func (t Token) Text(source string) string { return source[t.Start:t.End] }
