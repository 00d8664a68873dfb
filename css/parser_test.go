package css

import "testing"

// childKinds returns the Kind of each of n's children, for compact
// assertions about tree shape.
func childKinds(n Node) []Kind {
	out := make([]Kind, 0)
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		out = append(out, c.Kind())
	}
	return out
}

func firstOfKind(n Node, kind Kind) Node {
	for c := n.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == kind {
			return c
		}
	}
	return Node{}
}

func declarations(block Node) []Node {
	var out []Node
	for c := block.FirstChild(); c.IsValid(); c = c.NextSibling() {
		if c.Kind() == KindDeclaration {
			out = append(out, c)
		}
	}
	return out
}

func TestParseSimpleRule(t *testing.T) {
	sheet := Parse("div { color: red; }")

	if sheet.Kind() != KindStylesheet {
		t.Fatalf("expected Stylesheet root, got %v", sheet.KindName())
	}
	rules := sheet.Children()
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	rule := rules[0]
	if rule.Kind() != KindStyleRule || !rule.HasBlock() || !rule.HasDeclarations() {
		t.Fatalf("expected a StyleRule with block and declarations, got %v (block=%v decls=%v)",
			rule.KindName(), rule.HasBlock(), rule.HasDeclarations())
	}

	selList := rule.ChildAt(0)
	if selList.Kind() != KindSelectorList {
		t.Fatalf("expected SelectorList, got %v", selList.KindName())
	}
	sel := selList.FirstChild()
	simple := sel.FirstChild()
	if simple.Kind() != KindTypeSelector || simple.Name() != "div" {
		t.Errorf("expected TypeSelector %q, got %v %q", "div", simple.KindName(), simple.Name())
	}

	block := rule.ChildAt(1)
	decls := declarations(block)
	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(decls))
	}
	decl := decls[0]
	if decl.Property() != "color" {
		t.Errorf("expected property %q, got %q", "color", decl.Property())
	}
	if decl.Value() != "red" {
		t.Errorf("expected value %q, got %q", "red", decl.Value())
	}
}

func TestParseIDSelector(t *testing.T) {
	sheet := Parse("#header { font-size: 20px; }")
	rule := sheet.FirstChild()
	simple := rule.ChildAt(0).FirstChild().FirstChild()
	if simple.Kind() != KindIDSelector || simple.Name() != "header" {
		t.Errorf("expected IDSelector %q, got %v %q", "header", simple.KindName(), simple.Name())
	}
}

func TestParseClassSelector(t *testing.T) {
	sheet := Parse(".container { width: 100px; }")
	rule := sheet.FirstChild()
	simple := rule.ChildAt(0).FirstChild().FirstChild()
	if simple.Kind() != KindClassSelector || simple.Name() != "container" {
		t.Errorf("expected ClassSelector %q, got %v %q", "container", simple.KindName(), simple.Name())
	}
}

func TestParseCombinedSelector(t *testing.T) {
	sheet := Parse("div#main.container { margin: 10px; }")
	sel := sheet.FirstChild().ChildAt(0).FirstChild()
	comps := sel.Children()
	if len(comps) != 3 {
		t.Fatalf("expected 3 compound components (no Combinator between them), got %d", len(comps))
	}
	if comps[0].Kind() != KindTypeSelector || comps[0].Name() != "div" {
		t.Errorf("expected TypeSelector 'div', got %v %q", comps[0].KindName(), comps[0].Name())
	}
	if comps[1].Kind() != KindIDSelector || comps[1].Name() != "main" {
		t.Errorf("expected IDSelector 'main', got %v %q", comps[1].KindName(), comps[1].Name())
	}
	if comps[2].Kind() != KindClassSelector || comps[2].Name() != "container" {
		t.Errorf("expected ClassSelector 'container', got %v %q", comps[2].KindName(), comps[2].Name())
	}
}

func TestParseMultipleClasses(t *testing.T) {
	sheet := Parse(".container.active { display: block; }")
	sel := sheet.FirstChild().ChildAt(0).FirstChild()
	comps := sel.Children()
	if len(comps) != 2 {
		t.Fatalf("expected 2 class components, got %d", len(comps))
	}
	if comps[0].Name() != "container" || comps[1].Name() != "active" {
		t.Errorf("expected [container active], got [%q %q]", comps[0].Name(), comps[1].Name())
	}
}

func TestParseDescendantSelector(t *testing.T) {
	sheet := Parse("div p { color: blue; }")
	sel := sheet.FirstChild().ChildAt(0).FirstChild()
	comps := sel.Children()
	if len(comps) != 3 {
		t.Fatalf("expected TypeSelector, Combinator, TypeSelector, got %d children", len(comps))
	}
	if comps[0].Name() != "div" || comps[2].Name() != "p" {
		t.Errorf("expected div ... p, got %q ... %q", comps[0].Name(), comps[2].Name())
	}
	if comps[1].Kind() != KindCombinator || comps[1].Text() == "" {
		t.Errorf("expected an implicit descendant Combinator between them, got %v %q", comps[1].KindName(), comps[1].Text())
	}
}

func TestParseExplicitCombinators(t *testing.T) {
	tests := []struct {
		name string
		op   string
	}{
		{"child", ">"},
		{"adjacent sibling", "+"},
		{"general sibling", "~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "div " + tt.op + " p { color: blue; }"
			sheet := Parse(input)
			sel := sheet.FirstChild().ChildAt(0).FirstChild()
			comps := sel.Children()
			if len(comps) != 3 || comps[1].Kind() != KindCombinator || comps[1].Text() != tt.op {
				t.Fatalf("expected explicit %q combinator, got children %v", tt.op, comps)
			}
		})
	}
}

func TestParseMultipleSelectors(t *testing.T) {
	sheet := Parse("h1, h2, h3 { font-weight: bold; }")
	selList := sheet.FirstChild().ChildAt(0)
	sels := selList.Children()
	if len(sels) != 3 {
		t.Fatalf("expected 3 selectors, got %d", len(sels))
	}
	tags := []string{"h1", "h2", "h3"}
	for i, tag := range tags {
		got := sels[i].FirstChild().Name()
		if got != tag {
			t.Errorf("selector %d: expected %q, got %q", i, tag, got)
		}
	}
}

func TestParseMultipleDeclarations(t *testing.T) {
	sheet := Parse("div { color: red; background: blue; margin: 10px; }")
	block := sheet.FirstChild().ChildAt(1)
	decls := declarations(block)
	if len(decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(decls))
	}
	expected := map[string]string{"color": "red", "background": "blue", "margin": "10px"}
	for _, decl := range decls {
		want, ok := expected[decl.Property()]
		if !ok {
			t.Errorf("unexpected property: %v", decl.Property())
			continue
		}
		if decl.Value() != want {
			t.Errorf("property %v: expected value %v, got %v", decl.Property(), want, decl.Value())
		}
	}
}

func TestParseMultipleRules(t *testing.T) {
	input := `
		div { color: red; }
		p { font-size: 14px; }
		.container { width: 100%; }
	`
	sheet := Parse(input)
	rules := sheet.Children()
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
}

func TestParseComplexValue(t *testing.T) {
	sheet := Parse("div { border: 1px solid black; }")
	decl := declarations(sheet.FirstChild().ChildAt(1))[0]
	if decl.Property() != "border" {
		t.Errorf("expected property 'border', got %v", decl.Property())
	}
	if decl.Value() != "1px solid black" {
		t.Errorf("expected value '1px solid black', got %v", decl.Value())
	}
	valueKids := decl.valueChild().Children()
	if len(valueKids) != 3 {
		t.Fatalf("expected 3 value nodes (Dimension, Identifier, Identifier), got %d", len(valueKids))
	}
	if valueKids[0].Kind() != KindDimension || valueKids[0].Unit() != "px" {
		t.Errorf("expected a px Dimension first, got %v %q", valueKids[0].KindName(), valueKids[0].Unit())
	}
}

func TestParseAttributeSelector(t *testing.T) {
	sheet := Parse(`input[type='submit'] { font-family: Verdana; } .class { color: red; }`)
	rules := sheet.Children()
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(rules))
	}

	attrSel := rules[0].ChildAt(0).FirstChild().ChildAt(1)
	if attrSel.Kind() != KindAttributeSelector {
		t.Fatalf("expected AttributeSelector, got %v", attrSel.KindName())
	}
	if attrSel.Name() != "type" {
		t.Errorf("expected attribute name 'type', got %q", attrSel.Name())
	}
	if attrSel.AttrOperator() != AttrOperatorEquals {
		t.Errorf("expected '=' operator, got %v", attrSel.AttrOperator())
	}
	if attrSel.Value() != "'submit'" {
		t.Errorf("expected quoted value text, got %q", attrSel.Value())
	}

	classRule := rules[1]
	simple := classRule.ChildAt(0).FirstChild().FirstChild()
	if simple.Kind() != KindClassSelector || simple.Name() != "class" {
		t.Errorf("expected .class rule, got %v %q", simple.KindName(), simple.Name())
	}
}

func TestParseAtRuleWithMediaQuery(t *testing.T) {
	input := `
body { color: black; }
@media screen and (max-width: 600px) {
body { color: blue; }
}
.test { color: red; }
`
	sheet := Parse(input)
	rules := sheet.Children()
	if len(rules) != 3 {
		t.Fatalf("expected 3 top-level rules, got %d", len(rules))
	}

	atRule := rules[1]
	if atRule.Kind() != KindAtRule || atRule.Name() != "media" || !atRule.HasBlock() {
		t.Fatalf("expected a media AtRule with a block, got %v %q block=%v",
			atRule.KindName(), atRule.Name(), atRule.HasBlock())
	}

	mediaQuery := firstOfKind(atRule, KindMediaQuery)
	if !mediaQuery.IsValid() {
		t.Fatalf("expected a MediaQuery prelude child")
	}
	mediaType := firstOfKind(mediaQuery, KindMediaType)
	if !mediaType.IsValid() || mediaType.Name() != "screen" {
		t.Errorf("expected MediaType 'screen', got %q", mediaType.Name())
	}
	feature := firstOfKind(mediaQuery, KindMediaFeature)
	if !feature.IsValid() || feature.Name() != "max-width" {
		t.Errorf("expected MediaFeature 'max-width', got %q", feature.Name())
	}

	block := firstOfKind(atRule, KindBlock)
	nested := firstOfKind(block, KindStyleRule)
	if !nested.IsValid() {
		t.Fatalf("expected a nested StyleRule inside the media block")
	}
}

func TestParseNestedRuleIsSiblingOfDeclaration(t *testing.T) {
	sheet := Parse("div { color: red; & > p { color: blue; } }")
	block := sheet.FirstChild().ChildAt(1)
	kinds := childKinds(block)
	if len(kinds) != 2 || kinds[0] != KindDeclaration || kinds[1] != KindStyleRule {
		t.Fatalf("expected [Declaration, StyleRule], got %v", kinds)
	}
}

func TestParseCommentsInsideBlockAreRecorded(t *testing.T) {
	sheet := Parse("div { /* note */ color: red; }")
	block := sheet.FirstChild().ChildAt(1)
	kinds := childKinds(block)
	if len(kinds) != 2 || kinds[0] != KindComment || kinds[1] != KindDeclaration {
		t.Fatalf("expected [Comment, Declaration], got %v", kinds)
	}
}

func TestParseMalformedRuleIsFlaggedHasError(t *testing.T) {
	sheet := Parse("div { color ; }")
	kids := sheet.FirstChild().ChildAt(1).Children()
	if len(kids) == 0 {
		t.Fatalf("expected the malformed entry to be recorded in the block")
	}
	if kids[0].Kind() != KindStyleRule || !kids[0].HasError() {
		t.Errorf("expected a StyleRule flagged HasError, got %v (error=%v)", kids[0].KindName(), kids[0].HasError())
	}
}

func TestParseUnterminatedBlockFlagsError(t *testing.T) {
	sheet := Parse("div { color: red;")
	rule := sheet.FirstChild()
	if !rule.HasError() {
		t.Errorf("expected HasError on a rule whose block never closes")
	}
}

func TestParseWithParseValuesDisabled(t *testing.T) {
	sheet := Parse("div { color: red; }", WithParseValues(false))
	decl := declarations(sheet.FirstChild().ChildAt(1))[0]
	if decl.valueChild().IsValid() {
		t.Errorf("expected no Value subtree when WithParseValues(false)")
	}
	if decl.Value() != "red" {
		t.Errorf("expected the raw trimmed value text 'red' to still be available, got %q", decl.Value())
	}
}

func TestParseWithParseSelectorsDisabled(t *testing.T) {
	sheet := Parse("div#x.y { color: red; }", WithParseSelectors(false))
	selList := sheet.FirstChild().ChildAt(0)
	if selList.Kind() != KindSelectorList {
		t.Fatalf("expected SelectorList, got %v", selList.KindName())
	}
	if selList.HasChildren() {
		t.Errorf("expected a childless leaf SelectorList when WithParseSelectors(false)")
	}
	if selList.Text() != "div#x.y " {
		t.Errorf("expected the raw selector text to still be recoverable via Text(), got %q", selList.Text())
	}
}

func TestParseWithParseAtRulePreludesDisabled(t *testing.T) {
	sheet := Parse("@media screen { div { color: red; } }", WithParseAtRulePreludes(false))
	atRule := sheet.FirstChild()
	if firstOfKind(atRule, KindMediaQuery).IsValid() {
		t.Errorf("expected no MediaQuery prelude children when WithParseAtRulePreludes(false)")
	}
	if !atRule.HasPrelude() {
		t.Errorf("expected the raw prelude span to still be recorded")
	}
}

func TestParseWithCommentCallback(t *testing.T) {
	var spans [][2]int
	sheet := Parse("/* a */ div { /* b */ color: red; }", WithCommentCallback(func(start, end, length, line, column int) {
		spans = append(spans, [2]int{start, end})
	}))
	if len(spans) != 2 {
		t.Fatalf("expected the comment callback to fire twice, got %d", len(spans))
	}
	_ = sheet
}

func TestParseTextRoundTrips(t *testing.T) {
	inputs := []string{
		"div { color: red; }",
		"@media screen { a { color: blue; } }",
		".a, .b { margin: 0 auto; }",
	}
	for _, input := range inputs {
		sheet := Parse(input)
		if sheet.Text() != input {
			t.Errorf("expected Stylesheet.Text() to round-trip %q, got %q", input, sheet.Text())
		}
	}
}
