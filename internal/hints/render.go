// Package hints produces a compact English-like textual summary of a
// schema's constraints, intended for inclusion in a prompt alongside the
// template from internal/template. It carries no functional weight of its
// own: dropping it changes nothing about what compile_grammar or validate
// accept.
package hints

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/normanking/gbnfschema/internal/logging"
	"github.com/normanking/gbnfschema/internal/schema"
)

// Renderer produces bullet-list constraint summaries from a schema.
type Renderer struct {
	log    *logging.Logger
	bullet string
}

// NewRenderer creates a hint Renderer using a "- " Markdown bullet prefix.
func NewRenderer() *Renderer {
	return NewRendererWithBullet("- ")
}

// NewRendererWithBullet creates a hint Renderer using bullet as the line
// prefix, per internal/schemaconfig's hints.markdown setting ("- " when
// true, "* " when false).
func NewRendererWithBullet(bullet string) *Renderer {
	return &Renderer{
		log:    logging.Global().WithComponent("hints"),
		bullet: bullet,
	}
}

// Render is a convenience wrapper around NewRenderer().Render.
func Render(root schema.Field) string {
	return NewRenderer().Render(root)
}

// RenderWithBullet is a convenience wrapper around
// NewRendererWithBullet(bullet).Render.
func RenderWithBullet(root schema.Field, bullet string) string {
	return NewRendererWithBullet(bullet).Render(root)
}

// Render produces the newline-separated hint text for root.
func (r *Renderer) Render(root schema.Field) string {
	var lines []string
	r.collect(root, root.FieldName(), &lines)
	out := strings.Join(lines, "\n")
	r.log.Debug("rendered %d hint lines", len(lines))
	return out
}

func (r *Renderer) collect(f schema.Field, path string, lines *[]string) {
	switch v := f.(type) {
	case *schema.Composite:
		for _, child := range v.Fields {
			name := child.FieldName()
			childPath := joinPath(path, name)
			r.collect(child, childPath, lines)
		}
	case *schema.Variant:
		*lines = append(*lines, r.bullet+path+": one of "+strconv.Itoa(len(v.Alternatives))+" shapes")
		for _, alt := range v.Alternatives {
			r.collect(alt, path, lines)
		}
	case *schema.Optional:
		*lines = append(*lines, r.bullet+path+" (optional): "+describe(v.Inner))
	default:
		*lines = append(*lines, r.bullet+path+": "+describe(f))
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// describe renders the single-line constraint description for a leaf field,
// shared between the top-level bullet and the optional-field bullet.
func describe(f schema.Field) string {
	switch v := f.(type) {
	case *schema.Int:
		return fmt.Sprintf("integer in [%d,%d]", v.Min, v.Max)
	case *schema.ConstantInt:
		return fmt.Sprintf("must be exactly %d", v.Value)
	case *schema.Float:
		return fmt.Sprintf("decimal in [%v,%v]", v.Min, v.Max)
	case *schema.ConstantFloat:
		return fmt.Sprintf("must be exactly %v", v.Value)
	case *schema.Digit:
		return fmt.Sprintf("string of exactly %d digits", v.Count)
	case *schema.String:
		return fmt.Sprintf("string of length [%d,%d]", v.MinLen, v.MaxLen)
	case *schema.Bool:
		return "true or false"
	case *schema.ChoiceString:
		return "one of " + strings.Join(quoteAll(v.Options), "|")
	case *schema.ChoiceInt:
		return "one of " + strings.Join(intsToStrings(v.Options), "|")
	case *schema.TemplateString:
		if !v.HasMarker {
			return fmt.Sprintf("fixed text %q", v.Template)
		}
		return fmt.Sprintf("templated text with %d..%d generated characters", v.MinGen, v.MaxGen)
	case *schema.Array:
		return fmt.Sprintf("array of length [%d,%d] where each element is %s", v.MinLen, v.MaxLen, describe(v.Element))
	case *schema.Composite:
		return "object"
	default:
		return "unconstrained"
	}
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strconv.Quote(s)
	}
	return out
}

func intsToStrings(is []int) []string {
	out := make([]string, len(is))
	for i, v := range is {
		out[i] = strconv.Itoa(v)
	}
	return out
}
