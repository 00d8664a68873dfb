package css

import "testing"

func firstAtRule(t *testing.T, source string) Node {
	t.Helper()
	sheet := Parse(source)
	node := sheet.FirstChild()
	if node.Kind() != KindAtRule {
		t.Fatalf("expected an AtRule, got %v", node.KindName())
	}
	return node
}

func TestAtRuleSupportsCondition(t *testing.T) {
	at := firstAtRule(t, `@supports (display: grid) and (gap: 1px) { div { color: red; } }`)
	cond := firstOfKind(at, KindSupportsQuery)
	if !cond.IsValid() {
		t.Fatalf("expected a SupportsQuery prelude child")
	}
	if cond.Text() == "" {
		t.Errorf("expected the condition text recorded on the node span")
	}
}

func TestAtRuleContainerPrelude(t *testing.T) {
	at := firstAtRule(t, `@container sidebar (min-width: 400px) { div { color: red; } }`)
	name := firstOfKind(at, KindContainerQuery)
	if !name.IsValid() || name.Name() != "sidebar" {
		t.Fatalf("expected a ContainerQuery name 'sidebar', got %v %q", name.KindName(), name.Name())
	}
	cond := firstOfKind(at, KindSupportsQuery)
	if !cond.IsValid() {
		t.Fatalf("expected a condition child following the container name")
	}
}

func TestAtRuleLayerNames(t *testing.T) {
	at := firstAtRule(t, `@layer base, components.buttons;`)
	var names []string
	for c := at.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == KindLayerName {
			names = append(names, c.Text())
		}
	}
	if len(names) != 2 || names[0] != "base" || names[1] != "components.buttons" {
		t.Fatalf("expected layer names [base components.buttons], got %v", names)
	}
	if at.HasBlock() {
		t.Errorf("expected a statement-form @layer (no block)")
	}
}

func TestAtRuleImportPrelude(t *testing.T) {
	at := firstAtRule(t, `@import url("theme.css") layer(base) supports(display: grid) screen;`)
	children := at.Children()
	if len(children) < 3 {
		t.Fatalf("expected the URL, layer, and trailing media-query pieces, got %v", children)
	}
	if children[0].Kind() != KindFunction && children[0].Kind() != KindURL && children[0].Kind() != KindString {
		t.Errorf("expected the first child to be the import URL, got %v", children[0].KindName())
	}

	var sawLayer, sawSupports, sawMediaQuery bool
	for _, c := range children {
		switch c.Kind() {
		case KindLayerName:
			sawLayer = true
		case KindSupportsQuery:
			sawSupports = true
		case KindMediaQuery:
			sawMediaQuery = true
		}
	}
	if !sawLayer {
		t.Errorf("expected a LayerName piece")
	}
	if !sawSupports {
		t.Errorf("expected a SupportsQuery piece")
	}
	if !sawMediaQuery {
		t.Errorf("expected a trailing MediaQuery piece")
	}
}

func TestAtRuleImportSimple(t *testing.T) {
	at := firstAtRule(t, `@import "base.css";`)
	if at.Name() != "import" {
		t.Fatalf("expected AtRule name 'import', got %q", at.Name())
	}
	children := at.Children()
	if len(children) != 1 || children[0].Kind() != KindString {
		t.Fatalf("expected a single String URL piece, got %v", children)
	}
}

func TestAtRuleCharset(t *testing.T) {
	at := firstAtRule(t, `@charset "UTF-8";`)
	children := at.Children()
	if len(children) != 1 || children[0].Kind() != KindString {
		t.Fatalf("expected a single String child, got %v", children)
	}
	if children[0].Text() != `"UTF-8"` {
		t.Errorf("expected the quoted charset text, got %q", children[0].Text())
	}
}

func TestAtRuleFontFaceIsDeclarationOnly(t *testing.T) {
	at := firstAtRule(t, `@font-face { font-family: "Custom"; src: url(custom.woff2); }`)
	block := firstOfKind(at, KindBlock)
	decls := declarations(block)
	if len(decls) != 2 {
		t.Fatalf("expected 2 declarations in @font-face's body, got %d", len(decls))
	}
	if decls[1].Property() != "src" {
		t.Errorf("expected second declaration property 'src', got %q", decls[1].Property())
	}
}

func TestAtRuleKeyframes(t *testing.T) {
	at := firstAtRule(t, `@keyframes spin { from { opacity: 0; } 50% { opacity: .5; } to { opacity: 1; } }`)
	if at.Name() != "keyframes" {
		t.Fatalf("expected AtRule name 'keyframes', got %q", at.Name())
	}
	preludeIdent := firstOfKind(at, KindIdentifier)
	if !preludeIdent.IsValid() || preludeIdent.Text() != "spin" {
		t.Fatalf("expected the animation-name prelude 'spin', got %q", preludeIdent.Text())
	}

	block := firstOfKind(at, KindBlock)
	rules := block.Children()
	if len(rules) != 3 {
		t.Fatalf("expected 3 keyframe rules, got %d", len(rules))
	}
	selLists := rules[1].ChildAt(0).Children()
	if len(selLists) != 1 || selLists[0].FirstChild().Kind() != KindDimension {
		t.Fatalf("expected the '50%%' keyframe selector to be a Dimension, got %v", selLists)
	}
}

func TestAtRuleVendorPrefixedKeyframesDispatchesUnprefixed(t *testing.T) {
	at := firstAtRule(t, `@-webkit-keyframes spin { from { opacity: 0; } to { opacity: 1; } }`)
	if !at.IsVendorPrefixed() {
		t.Errorf("expected VENDOR_PREFIXED on @-webkit-keyframes")
	}
	block := firstOfKind(at, KindBlock)
	if len(block.Children()) != 2 {
		t.Errorf("expected the vendor-prefixed form to still dispatch to keyframes body parsing")
	}
}

func TestAtRuleNestPrelude(t *testing.T) {
	sheet := Parse(`div { @nest & > p { color: blue; } }`)
	nestAt := firstOfKind(sheet.FirstChild().ChildAt(1), KindAtRule)
	if !nestAt.IsValid() || nestAt.Name() != "nest" {
		t.Fatalf("expected a nest AtRule inside the block, got %v", nestAt)
	}
	selList := firstOfKind(nestAt, KindSelectorList)
	if !selList.IsValid() {
		t.Fatalf("expected @nest's prelude to be parsed as a SelectorList")
	}
	comps := selList.FirstChild().Children()
	if len(comps) != 3 || comps[0].Kind() != KindNestingSelector || comps[1].Kind() != KindCombinator {
		t.Fatalf("expected [NestingSelector, Combinator, TypeSelector], got %v", comps)
	}
}

func TestAtRuleUnknownNameKeepsRawPreludeOnly(t *testing.T) {
	at := firstAtRule(t, `@future-rule some prelude text { div { color: red; } }`)
	if at.Name() != "future-rule" {
		t.Fatalf("expected AtRule name 'future-rule', got %q", at.Name())
	}
	if !at.HasPrelude() {
		t.Errorf("expected the raw prelude span still recorded for an unrecognized at-rule")
	}
	if firstOfKind(at, KindMediaQuery).IsValid() {
		t.Errorf("expected no typed prelude children for an unrecognized at-rule name")
	}
}

func TestAtRuleStatementFormToleratesMissingSemicolon(t *testing.T) {
	sheet := Parse(`@charset "UTF-8"`)
	at := sheet.FirstChild()
	if at.Kind() != KindAtRule {
		t.Fatalf("expected an AtRule, got %v", at.KindName())
	}
	// EOF in place of ';' is tolerated by scanUnnested's EOF stop case.
	if at.HasError() {
		t.Errorf("expected no HasError on a statement at-rule ended by EOF")
	}
}

func TestAtRuleMediaFeatureRange(t *testing.T) {
	at := firstAtRule(t, `@media (400px <= width <= 700px) { div { color: red; } }`)
	mq := firstOfKind(at, KindMediaQuery)
	rng := firstOfKind(mq, KindFeatureRange)
	if !rng.IsValid() {
		t.Fatalf("expected a FeatureRange prelude node for the two-operator range form")
	}
	children := rng.Children()
	if len(children) != 5 {
		t.Fatalf("expected [operand, op, operand, op, operand], got %d children", len(children))
	}
	if children[1].Kind() != KindPreludeOperator || children[1].Text() != "<=" {
		t.Errorf("expected first operator '<=', got %v %q", children[1].KindName(), children[1].Text())
	}
	if rng.Name() != "width" {
		t.Errorf("expected FeatureRange.Name() 'width', got %q", rng.Name())
	}
}
