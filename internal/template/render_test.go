package template

import (
	"strings"
	"testing"

	"github.com/normanking/gbnfschema/internal/schema"
)

func TestRender_IntPlaceholder(t *testing.T) {
	f, _ := schema.NewInt("level", 1, 20)
	out := Render(f)
	if out != "<int 1..20>" {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestRender_ConstantIntIsBareLiteral(t *testing.T) {
	f := schema.NewConstantInt("version", 3)
	if out := Render(f); out != "3" {
		t.Errorf("expected bare literal, got %q", out)
	}
}

func TestRender_StringPlaceholder(t *testing.T) {
	f, _ := schema.NewString("name", 3, 15)
	out := Render(f)
	if out != `"<string 3..15 chars>"` {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestRender_ChoiceStringQuotesOptions(t *testing.T) {
	f, _ := schema.NewChoiceString("class", "warrior", "mage")
	out := Render(f)
	if out != `<"warrior"|"mage">` {
		t.Errorf("unexpected render: %q", out)
	}
}

func TestRender_OptionalFieldSuffixesKey(t *testing.T) {
	name, _ := schema.NewString("username", 3, 20)
	bio, _ := schema.NewString("bio", 0, 200)
	c, _ := schema.NewComposite("profile", name, schema.NewOptional(bio))

	out := Render(c)
	if !strings.Contains(out, `"bio"?:`) {
		t.Errorf("expected suffixed optional key, got:\n%s", out)
	}
}

func TestRender_CompositeIsTwoSpaceIndented(t *testing.T) {
	name, _ := schema.NewString("name", 1, 10)
	c, _ := schema.NewComposite("character", name)

	out := Render(c)
	if !strings.Contains(out, "\n  \"name\":") {
		t.Errorf("expected two-space indented field, got:\n%s", out)
	}
}

func TestRender_ArrayShowsEllipsisWhenMaxAboveOne(t *testing.T) {
	elem, _ := schema.NewString("tag", 1, 5)
	arr, _ := schema.NewArray("tags", elem, 0, 3)
	out := Render(arr)
	if !strings.Contains(out, "...") {
		t.Errorf("expected ellipsis for max > 1, got %q", out)
	}
}

func TestRender_ArrayOmitsEllipsisWhenMaxIsOne(t *testing.T) {
	elem, _ := schema.NewString("tag", 1, 5)
	arr, _ := schema.NewArray("tags", elem, 0, 1)
	out := Render(arr)
	if strings.Contains(out, "...") {
		t.Errorf("did not expect ellipsis for max == 1, got %q", out)
	}
}

func TestRender_VariantJoinsAlternativesWithOR(t *testing.T) {
	kind, _ := schema.NewString("enemy", 3, 20)
	combat, _ := schema.NewComposite("combat", kind)
	npc, _ := schema.NewString("npc", 3, 20)
	dialogue, _ := schema.NewComposite("dialogue", npc)
	v, _ := schema.NewVariant("data", combat, dialogue)

	out := Render(v)
	if !strings.Contains(out, " OR ") {
		t.Errorf("expected OR-joined alternatives, got:\n%s", out)
	}
}

func TestRender_EmptyCompositeIsBareBraces(t *testing.T) {
	c, _ := schema.NewComposite("empty")
	if out := Render(c); out != "{}" {
		t.Errorf("expected bare braces, got %q", out)
	}
}
