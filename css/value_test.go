package css

import "testing"

func TestParseValueSimpleTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
	}{
		{"ident", "red", KindIdentifier},
		{"number", "42", KindNumber},
		{"string", `"hi"`, KindString},
		{"hash", "#fff", KindHash},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := ParseValue(tt.in)
			if len(nodes) != 1 {
				t.Fatalf("expected 1 node, got %d", len(nodes))
			}
			if nodes[0].Kind() != tt.kind {
				t.Errorf("expected %v, got %v", tt.kind, nodes[0].KindName())
			}
		})
	}
}

func TestParseValueHashStripsLeadingOctothorpe(t *testing.T) {
	nodes := ParseValue("#ffcc00")
	if len(nodes) != 1 || nodes[0].Kind() != KindHash {
		t.Fatalf("expected a single Hash node, got %v", nodes)
	}
	if got := nodes[0].contentText(); got != "ffcc00" {
		t.Errorf("expected content 'ffcc00' (no '#'), got %q", got)
	}
}

func TestParseValueDimension(t *testing.T) {
	nodes := ParseValue("10px")
	if len(nodes) != 1 || nodes[0].Kind() != KindDimension {
		t.Fatalf("expected a single Dimension node, got %v", nodes)
	}
	if nodes[0].Unit() != "px" {
		t.Errorf("expected unit 'px', got %q", nodes[0].Unit())
	}
	f, ok := nodes[0].NumericValue()
	if !ok || f != 10 {
		t.Errorf("expected numeric value 10, got %v (ok=%v)", f, ok)
	}
}

func TestParseValuePercentage(t *testing.T) {
	nodes := ParseValue("50%")
	if len(nodes) != 1 || nodes[0].Kind() != KindDimension {
		t.Fatalf("expected a single Dimension node, got %v", nodes)
	}
	if nodes[0].Unit() != "%" {
		t.Errorf("expected unit '%%', got %q", nodes[0].Unit())
	}
	f, ok := nodes[0].NumericValue()
	if !ok || f != 50 {
		t.Errorf("expected numeric value 50, got %v (ok=%v)", f, ok)
	}
}

func TestParseValueNegativeAndExponentDimensions(t *testing.T) {
	tests := []struct {
		in   string
		num  float64
		unit string
	}{
		{"-10px", -10, "px"},
		{"1.5em", 1.5, "em"},
		{"1e3deg", 1e3, "deg"},
		{"-1.2e-2rad", -1.2e-2, "rad"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			nodes := ParseValue(tt.in)
			if len(nodes) != 1 || nodes[0].Kind() != KindDimension {
				t.Fatalf("expected a single Dimension node, got %v", nodes)
			}
			if nodes[0].Unit() != tt.unit {
				t.Errorf("expected unit %q, got %q", tt.unit, nodes[0].Unit())
			}
			f, ok := nodes[0].NumericValue()
			if !ok || f != tt.num {
				t.Errorf("expected numeric value %v, got %v (ok=%v)", tt.num, f, ok)
			}
		})
	}
}

func TestParseValueFunctionArgs(t *testing.T) {
	nodes := ParseValue("rgba(0, 0, 0, .5)")
	if len(nodes) != 1 || nodes[0].Kind() != KindFunction {
		t.Fatalf("expected a single Function node, got %v", nodes)
	}
	fn := nodes[0]
	if fn.Name() != "rgba" {
		t.Errorf("expected function name 'rgba', got %q", fn.Name())
	}
	if !fn.HasParens() {
		t.Errorf("expected HasParens on a Function node")
	}
	args := fn.Children()
	if len(args) != 7 { // 0, ',' 0, ',' 0, ',' .5
		t.Fatalf("expected 7 comma-interleaved args, got %d: %v", len(args), args)
	}
}

func TestParseValueCalcExpression(t *testing.T) {
	nodes := ParseValue("calc(1px + 2px)")
	if len(nodes) != 1 || nodes[0].Kind() != KindFunction {
		t.Fatalf("expected a single Function node, got %v", nodes)
	}
	args := nodes[0].Children()
	if len(args) != 3 {
		t.Fatalf("expected [Dimension, Operator, Dimension], got %d children", len(args))
	}
	if args[0].Kind() != KindDimension || args[2].Kind() != KindDimension {
		t.Errorf("expected Dimension operands, got %v and %v", args[0].KindName(), args[2].KindName())
	}
	if args[1].Kind() != KindOperator || args[1].Text() != "+" {
		t.Errorf("expected '+' Operator, got %v %q", args[1].KindName(), args[1].Text())
	}
}

func TestParseValueNestedParenthesis(t *testing.T) {
	nodes := ParseValue("calc((1px + 2px) * 2)")
	fn := nodes[0]
	args := fn.Children()
	if len(args) != 3 || args[0].Kind() != KindParenthesis {
		t.Fatalf("expected a nested Parenthesis as calc()'s first arg, got %v", args)
	}
	inner := args[0].Children()
	if len(inner) != 3 || inner[0].Kind() != KindDimension {
		t.Errorf("expected the parenthesis interior to parse as value nodes too, got %v", inner)
	}
}

func TestParseValueUnquotedURL(t *testing.T) {
	nodes := ParseValue("url(./a.png)")
	if len(nodes) != 1 || nodes[0].Kind() != KindURL {
		t.Fatalf("expected a single Url node, got %v", nodes)
	}
	if nodes[0].Value() != "./a.png" {
		t.Errorf("expected Value() './a.png', got %q", nodes[0].Value())
	}
}

func TestParseValueQuotedURLIsURL(t *testing.T) {
	nodes := ParseValue(`url("./a.png")`)
	if len(nodes) != 1 || nodes[0].Kind() != KindURL {
		t.Fatalf("expected a quoted url() to still parse as a Url node, got %v", nodes)
	}
	args := nodes[0].Children()
	if len(args) != 1 || args[0].Kind() != KindString {
		t.Fatalf("expected a single String child, got %v", args)
	}
	if nodes[0].Value() != "./a.png" {
		t.Errorf("expected Value() to unquote the String child to './a.png', got %q", nodes[0].Value())
	}
}

func TestParseValueUnquotedSrcBehavesLikeURL(t *testing.T) {
	nodes := ParseValue("src(foo.woff2)")
	if len(nodes) != 1 || nodes[0].Kind() != KindURL {
		t.Fatalf("expected an unquoted src() to parse as a Url node, got %v", nodes)
	}
	if nodes[0].Value() != "foo.woff2" {
		t.Errorf("expected Value() 'foo.woff2', got %q", nodes[0].Value())
	}
}

func TestParseValueQuotedSrcIsOrdinaryFunction(t *testing.T) {
	nodes := ParseValue(`src("foo.woff2")`)
	if len(nodes) != 1 || nodes[0].Kind() != KindFunction {
		t.Fatalf("expected a quoted src() to parse as an ordinary Function, got %v", nodes)
	}
	args := nodes[0].Children()
	if len(args) != 1 || args[0].Kind() != KindString {
		t.Fatalf("expected a single String argument, got %v", args)
	}
}

func TestParseValueVendorPrefixedFunctionIsFlagged(t *testing.T) {
	nodes := ParseValue("-webkit-linear-gradient(red, blue)")
	if len(nodes) != 1 || !nodes[0].IsVendorPrefixed() {
		t.Fatalf("expected a vendor-prefixed Function, got %v", nodes)
	}
}

func TestParseValueUnclosedFunctionFlagsError(t *testing.T) {
	nodes := ParseValue("rgb(0, 0, 0")
	if len(nodes) != 1 || !nodes[0].HasError() {
		t.Fatalf("expected HasError on an unclosed function, got %v", nodes)
	}
}

func TestParseValueMultipleTokensWithWhitespace(t *testing.T) {
	nodes := ParseValue("1px solid black")
	if len(nodes) != 3 {
		t.Fatalf("expected 3 value nodes, got %d", len(nodes))
	}
	if nodes[0].Kind() != KindDimension || nodes[1].Kind() != KindIdentifier || nodes[2].Kind() != KindIdentifier {
		t.Errorf("expected [Dimension Identifier Identifier], got %v %v %v",
			nodes[0].KindName(), nodes[1].KindName(), nodes[2].KindName())
	}
}
