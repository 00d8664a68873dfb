package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes an indented tree listing of n and its descendants to w, one
// line per node: kind, byte span, line:column, and (for kinds that carry
// one) a quoted content or value excerpt.
//
// Grounded on rupor-github-fb2cng/utils/debug/treewriter.go's
// TreeWriter.Line/TextBlock, adapted from a strings.Builder accumulator
// into a direct io.Writer sink.
func (n Node) Dump(w io.Writer) {
	dumpNode(w, n, 0)
}

func dumpNode(w io.Writer, n Node, depth int) {
	if !n.IsValid() {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s [%d:%d) line %d col %d", indent, n.KindName(), n.Offset(), n.End(), n.Line(), n.Column())

	if excerpt := dumpExcerpt(n); excerpt != "" {
		fmt.Fprintf(w, " %s", excerpt)
	}
	if n.HasError() {
		io.WriteString(w, " ERROR")
	}
	io.WriteString(w, "\n")

	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		dumpNode(w, c, depth+1)
	}
}

func dumpExcerpt(n Node) string {
	switch n.Kind() {
	case KindDeclaration:
		return fmt.Sprintf("property=%s value=%s", strconv.Quote(n.Property()), strconv.Quote(n.Value()))
	case KindIdentifier, KindHash, KindString, KindOperator:
		return strconv.Quote(n.Text())
	case KindDimension:
		return fmt.Sprintf("%s unit=%s", strconv.Quote(n.contentText()), strconv.Quote(n.Unit()))
	case KindFunction, KindAtRule, KindTypeSelector, KindClassSelector, KindIDSelector,
		KindPseudoClassSelector, KindPseudoElementSelector, KindAttributeSelector:
		return fmt.Sprintf("name=%s", strconv.Quote(n.Name()))
	case KindURL:
		return fmt.Sprintf("value=%s", strconv.Quote(n.Value()))
	default:
		return ""
	}
}
