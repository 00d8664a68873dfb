package css

import "testing"

func firstDeclaration(t *testing.T, source string) Node {
	t.Helper()
	sheet := Parse(source)
	decls := declarations(sheet.FirstChild().ChildAt(1))
	if len(decls) == 0 {
		t.Fatalf("expected at least one declaration in %q", source)
	}
	return decls[0]
}

func TestDeclarationImportant(t *testing.T) {
	decl := firstDeclaration(t, "div { color: red !important; }")
	if !decl.IsImportant() {
		t.Errorf("expected IsImportant true")
	}
	if decl.Value() != "red" {
		t.Errorf("expected the !important suffix stripped from Value(), got %q", decl.Value())
	}
}

func TestDeclarationImportantCaseAndSpacing(t *testing.T) {
	decl := firstDeclaration(t, "div { color: red !  IMPORTANT; }")
	if !decl.IsImportant() {
		t.Errorf("expected IsImportant true with whitespace and mixed case")
	}
}

func TestDeclarationNotImportantLookAlike(t *testing.T) {
	decl := firstDeclaration(t, `div { content: "a!b"; }`)
	if decl.IsImportant() {
		t.Errorf("expected a '!' inside a string not to be treated as !important")
	}
}

func TestDeclarationCustomProperty(t *testing.T) {
	decl := firstDeclaration(t, "div { --main-color: #336699; }")
	if decl.Property() != "--main-color" {
		t.Errorf("expected custom property name '--main-color', got %q", decl.Property())
	}
	if decl.IsBrowserHack() {
		t.Errorf("a custom property is not a browser hack")
	}
}

func TestDeclarationVendorPrefixedProperty(t *testing.T) {
	decl := firstDeclaration(t, "div { -webkit-transform: none; }")
	if !decl.IsVendorPrefixed() {
		t.Errorf("expected -webkit-transform to be flagged VENDOR_PREFIXED")
	}
}

func TestDeclarationBrowserHackPrefix(t *testing.T) {
	decl := firstDeclaration(t, "div { *zoom: 1; }")
	if !decl.IsBrowserHack() {
		t.Errorf("expected a leading '*' before the property to be flagged BROWSERHACK")
	}
	if decl.Property() != "zoom" {
		t.Errorf("expected property name 'zoom' with the hack prefix excluded, got %q", decl.Property())
	}
}

func TestDeclarationUnderscoreBrowserHack(t *testing.T) {
	decl := firstDeclaration(t, "div { _display: inline; }")
	if !decl.IsBrowserHack() {
		t.Errorf("expected a leading '_' to be flagged BROWSERHACK")
	}
	if decl.Property() != "display" {
		t.Errorf("expected property name 'display', got %q", decl.Property())
	}
}

func TestDeclarationEmptyValue(t *testing.T) {
	decl := firstDeclaration(t, "div { color: ; }")
	if decl.Value() != "" {
		t.Errorf("expected an empty value, got %q", decl.Value())
	}
}

func TestDeclarationWhitespaceIsTrimmed(t *testing.T) {
	decl := firstDeclaration(t, "div {   color  :   red  ; }")
	if decl.Property() != "color" {
		t.Errorf("expected property 'color', got %q", decl.Property())
	}
	if decl.Value() != "red" {
		t.Errorf("expected trimmed value 'red', got %q", decl.Value())
	}
}

func TestDeclarationWithoutTrailingSemicolon(t *testing.T) {
	decl := firstDeclaration(t, "div { color: red }")
	if decl.Property() != "color" || decl.Value() != "red" {
		t.Errorf("expected a declaration with no trailing ';' to still parse, got %q: %q",
			decl.Property(), decl.Value())
	}
}
