package hints

import (
	"strings"
	"testing"

	"github.com/normanking/gbnfschema/internal/schema"
)

func TestRender_IntHintUsesBracketRange(t *testing.T) {
	f, _ := schema.NewInt("level", 1, 20)
	c, _ := schema.NewComposite("character", f)

	out := Render(c)
	if !strings.Contains(out, "character.level: integer in [1,20]") {
		t.Errorf("unexpected hint: %q", out)
	}
}

func TestRender_ChoiceHintListsOptions(t *testing.T) {
	f, _ := schema.NewChoiceString("class", "warrior", "mage", "rogue")
	c, _ := schema.NewComposite("character", f)

	out := Render(c)
	if !strings.Contains(out, `one of "warrior"|"mage"|"rogue"`) {
		t.Errorf("expected options listed, got:\n%s", out)
	}
}

func TestRender_OptionalFieldIsAnnotated(t *testing.T) {
	name, _ := schema.NewString("username", 3, 20)
	bio, _ := schema.NewString("bio", 0, 200)
	c, _ := schema.NewComposite("profile", name, schema.NewOptional(bio))

	out := Render(c)
	if !strings.Contains(out, "profile.bio (optional):") {
		t.Errorf("expected optional annotation, got:\n%s", out)
	}
}

func TestRender_OneLinePerField(t *testing.T) {
	a, _ := schema.NewString("a", 1, 5)
	b, _ := schema.NewInt("b", 0, 9)
	c, _ := schema.NewComposite("pair", a, b)

	lines := strings.Split(Render(c), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d: %v", len(lines), lines)
	}
}

func TestRender_NestedArrayDescribesElement(t *testing.T) {
	elem, _ := schema.NewInt("score", 0, 9)
	arr, _ := schema.NewArray("scores", elem, 1, 5)
	c, _ := schema.NewComposite("report", arr)

	out := Render(c)
	if !strings.Contains(out, "integer in [0,9]") {
		t.Errorf("expected element constraint surfaced, got:\n%s", out)
	}
}
