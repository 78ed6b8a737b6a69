package grammar

import (
	"strings"
	"testing"

	"github.com/normanking/gbnfschema/internal/schema"
)

// ═══════════════════════════════════════════════════════════════════════════════
// STRUCTURAL INVARIANTS
// ═══════════════════════════════════════════════════════════════════════════════

func mustComposite(t *testing.T, name string, fields ...schema.Field) *schema.Composite {
	t.Helper()
	c, err := schema.NewComposite(name, fields...)
	if err != nil {
		t.Fatalf("NewComposite(%q): %v", name, err)
	}
	return c
}

func TestCompile_RootRuleIsFirst(t *testing.T) {
	str, _ := schema.NewString("name", 1, 10)
	root := mustComposite(t, "character", str)

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := strings.SplitN(out, "\n", 2)[0]
	if !strings.HasPrefix(first, "root ::=") {
		t.Errorf("expected first line to define root, got %q", first)
	}
}

func TestCompile_ExactlyOneRootDefinition(t *testing.T) {
	str, _ := schema.NewString("name", 1, 10)
	age, _ := schema.NewInt("age", 0, 120)
	root := mustComposite(t, "person", str, age)

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count := strings.Count(out, "\nroot ::=") + boolToInt(strings.HasPrefix(out, "root ::="))
	if count != 1 {
		t.Errorf("expected exactly one root rule, found %d", count)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestCompile_NoDuplicateRuleNames(t *testing.T) {
	a, _ := schema.NewString("name", 1, 10)
	b, _ := schema.NewInt("level", 1, 99)
	root := mustComposite(t, "character", a, b)

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		name := strings.SplitN(line, " ::= ", 2)[0]
		if seen[name] {
			t.Errorf("duplicate rule name %q", name)
		}
		seen[name] = true
	}
}

func TestCompile_IsDeterministic(t *testing.T) {
	str, _ := schema.NewString("name", 1, 10)
	choice, _ := schema.NewChoiceString("class", "warrior", "mage", "rogue")
	root := mustComposite(t, "character", str, choice)

	out1, err1 := Compile(root)
	out2, err2 := Compile(root)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if out1 != out2 {
		t.Errorf("compilation is not deterministic:\n%s\n---\n%s", out1, out2)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// LEAF KIND LOWERING
// ═══════════════════════════════════════════════════════════════════════════════

func TestCompile_BoolEmitsTrueFalse(t *testing.T) {
	b := schema.NewBool("active")
	out, err := Compile(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"true" | "false"`) {
		t.Errorf("expected true/false alternation, got %q", out)
	}
}

func TestCompile_ConstantIntEmitsLiteral(t *testing.T) {
	c := schema.NewConstantInt("version", 3)
	out, err := Compile(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"3"`) {
		t.Errorf("expected literal \"3\", got %q", out)
	}
}

func TestCompile_DigitPreservesWidth(t *testing.T) {
	d, _ := schema.NewDigit("pin", 4)
	out, err := Compile(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "[0-9]") != 4 {
		t.Errorf("expected exactly 4 digit classes, got:\n%s", out)
	}
}

func TestCompile_StringBeforeDigitStillDefinesStringChar(t *testing.T) {
	name, _ := schema.NewString("name", 1, 5)
	pin, _ := schema.NewDigit("pin", 4)
	c, _ := schema.NewComposite("c", name, pin)
	out, err := Compile(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "string-char ::=") {
		t.Errorf("expected string-char helper to be defined, got:\n%s", out)
	}
	if strings.Count(out, "string-char") < 2 {
		t.Errorf("expected string-char to be both referenced and defined, got:\n%s", out)
	}
}

func TestCompile_ChoiceIntEmitsEachOption(t *testing.T) {
	c, _ := schema.NewChoiceInt("level", 1, 5, 10)
	out, err := Compile(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`"1"`, `"5"`, `"10"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got:\n%s", want, out)
		}
	}
}

func TestCompile_FloatEmitsDecimalPoint(t *testing.T) {
	f, _ := schema.NewFloat("score", 0, 1)
	out, err := Compile(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"." [0-9]+`) {
		t.Errorf("expected fractional part, got:\n%s", out)
	}
}

func TestCompile_ConstantFloatIncludesDecimalPoint(t *testing.T) {
	c := schema.NewConstantFloat("pi", 3)
	out, err := Compile(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"3.0"`) {
		t.Errorf("expected \"3.0\" (decimal point forced), got:\n%s", out)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// COMPOSITE / OPTIONAL LOWERING
// ═══════════════════════════════════════════════════════════════════════════════

func TestCompile_AllRequiredFieldsUseHardComma(t *testing.T) {
	a, _ := schema.NewString("first", 1, 5)
	b, _ := schema.NewString("second", 1, 5)
	root := mustComposite(t, "pair", a, b)

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `","`) {
		t.Errorf("expected a hard comma between two required fields, got:\n%s", out)
	}
}

func TestCompile_TrailingOptionalIsSkippable(t *testing.T) {
	name, _ := schema.NewString("name", 1, 10)
	bio, _ := schema.NewString("bio", 0, 200)
	root := mustComposite(t, "profile", name, schema.NewOptional(bio))

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "?") {
		t.Errorf("expected an optional group, got:\n%s", out)
	}
}

func TestCompile_LeadingOptionalStillAllowsBareObject(t *testing.T) {
	nickname, _ := schema.NewString("nickname", 0, 10)
	name, _ := schema.NewString("name", 1, 10)
	root := mustComposite(t, "profile", schema.NewOptional(nickname), name)

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"name"`) {
		t.Errorf("required field after a leading optional must still appear, got:\n%s", out)
	}
}

func TestCompile_AllFieldsOptionalAllowsEmptyObject(t *testing.T) {
	a, _ := schema.NewString("a", 0, 5)
	b, _ := schema.NewString("b", 0, 5)
	root := mustComposite(t, "sparse", schema.NewOptional(a), schema.NewOptional(b))

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"{" ws ( `) && !strings.Contains(out, `ws "}"`) {
		t.Errorf("expected object wrapper tolerant of an empty body, got:\n%s", out)
	}
}

func TestCompile_EmptyCompositeIsJustBraces(t *testing.T) {
	root := mustComposite(t, "empty")
	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"{" ws "}"`) {
		t.Errorf("expected bare empty object, got:\n%s", out)
	}
}

func TestCompile_VariantProducesNamedAlternatives(t *testing.T) {
	kind, _ := schema.NewChoiceString("kind", "combat")
	dmg, _ := schema.NewInt("damage", 1, 10)
	combat, _ := schema.NewComposite("combat", kind, dmg)

	kind2, _ := schema.NewChoiceString("kind", "dialogue")
	text, _ := schema.NewString("text", 1, 100)
	dialogue, _ := schema.NewComposite("dialogue", kind2, text)

	variant, _ := schema.NewVariant("event", combat, dialogue)

	out, err := Compile(variant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "combat") || !strings.Contains(out, "dialogue") {
		t.Errorf("expected both alternative rule names present, got:\n%s", out)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// ARRAYS AND TEMPLATE STRINGS
// ═══════════════════════════════════════════════════════════════════════════════

func TestCompile_ArrayWithZeroMaxIsEmptyOnly(t *testing.T) {
	elem, _ := schema.NewString("item", 1, 5)
	arr, _ := schema.NewArray("tags", elem, 0, 0)
	out, err := Compile(arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != `root ::= "[" ws "]"`+"\n"+`ws ::= [ \t\n]*` {
		t.Errorf("expected empty-array-only grammar, got:\n%s", out)
	}
}

func TestCompile_ArrayElementsSeparatedByComma(t *testing.T) {
	elem, _ := schema.NewInt("item", 0, 9)
	arr, _ := schema.NewArray("scores", elem, 2, 4)
	out, err := Compile(arr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `","`) {
		t.Errorf("expected comma-separated elements, got:\n%s", out)
	}
}

func TestCompile_TemplateStringWithoutMarkerIsLiteral(t *testing.T) {
	ts, _ := schema.NewTemplateString("greeting", "fixed text", 0, 0)
	out, err := Compile(ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"fixed text"`) {
		t.Errorf("expected literal template text, got:\n%s", out)
	}
}

func TestCompile_TemplateStringWithMarkerSplitsPrefixSuffix(t *testing.T) {
	ts, _ := schema.NewTemplateString("greeting", "Hello, <generated>!", 1, 20)
	out, err := Compile(ts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"Hello, "`) || !strings.Contains(out, `"!"`) {
		t.Errorf("expected prefix and suffix literals, got:\n%s", out)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// INTEGER RANGE DECOMPOSITION
// ═══════════════════════════════════════════════════════════════════════════════

func TestIntRangeAlternatives_SingleValue(t *testing.T) {
	alts := intRangeAlternatives(7, 7)
	if len(alts) != 1 || alts[0] != `"7"` {
		t.Errorf("expected single literal \"7\", got %v", alts)
	}
}

func TestIntRangeAlternatives_CoversNegativeSpan(t *testing.T) {
	alts := intRangeAlternatives(-3, 2)
	joined := strings.Join(alts, " | ")
	for _, want := range []string{`"-"`, `[0-2]`} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected %s in %q", want, joined)
		}
	}
}

func TestIntRangeAlternatives_CrossesDigitWidthBoundary(t *testing.T) {
	alts := intRangeAlternatives(8, 12)
	if len(alts) == 0 {
		t.Fatal("expected at least one alternative")
	}
	// every alternative must be a plausible GBNF fragment, not empty
	for _, a := range alts {
		if strings.TrimSpace(a) == "" {
			t.Error("got an empty alternative")
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// RULE NAMING
// ═══════════════════════════════════════════════════════════════════════════════

func TestCompile_SanitizesRuleNames(t *testing.T) {
	inner, _ := schema.NewString("value", 1, 5)
	weird, _ := schema.NewComposite("Strange Name!", inner)
	root := mustComposite(t, "wrapper", weird)

	out, err := Compile(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "Strange Name! ::=") || !strings.Contains(out, "strange-name- ::=") {
		t.Errorf("expected sanitized rule name, got:\n%s", out)
	}
}

func TestCompile_CollidingNamesGetDistinctRules(t *testing.T) {
	a, _ := schema.NewString("value", 1, 5)
	dupA, _ := schema.NewComposite("slot", a)
	b, _ := schema.NewInt("value", 0, 9)
	dupB, _ := schema.NewComposite("slot", b)

	variant, _ := schema.NewVariant("pick", dupA, dupB)
	out, err := Compile(variant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "slot-2") {
		t.Errorf("expected a collision-resolved rule name, got:\n%s", out)
	}
}
