// Package css is a tolerant, location-preserving parser for Cascading Style
// Sheets. It accepts arbitrary input — including malformed, vendor-prefixed,
// browser-hack-laden, and deeply nested modern CSS (nesting, @layer,
// @container, @supports, range media features) — and always produces a
// syntax tree; structural errors are recorded on the affected node instead
// of aborting the parse.
//
// Spec references:
//   - CSS Syntax Level 3 §4 Tokenization: https://www.w3.org/TR/css-syntax-3/#tokenization
//   - CSS Syntax Level 3 §5 Parsing: https://www.w3.org/TR/css-syntax-3/#parsing
//   - CSS Selectors Level 4: https://www.w3.org/TR/selectors-4/
//   - CSS Nesting: https://www.w3.org/TR/css-nesting-1/
//   - Media Queries Level 4: https://www.w3.org/TR/mediaqueries-4/
//
// Every node produced by a parse lives in one [Arena], addressed by a
// 32-bit index rather than a pointer, so a megabyte-scale stylesheet parses
// with near-zero per-node allocation. [Node] is a cheap, read-only façade
// over an arena index; it never exposes the arena's write interface, so
// callers cannot forge an index into a tree they did not parse.
//
// The parser is single-threaded and strictly synchronous: no operation
// suspends, awaits, or yields, and the arena is immutable once Parse
// returns.
package css
