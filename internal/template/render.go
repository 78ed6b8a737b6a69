// Package template renders a schema into a JSON-shaped prompt fragment:
// valid-looking JSON punctuation with placeholder tokens standing in for
// each field's constraint, meant to show a model the intended document
// shape. The output is not itself valid JSON.
package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/normanking/gbnfschema/internal/logging"
	"github.com/normanking/gbnfschema/internal/schema"
)

const indentUnit = "  "

// Renderer produces placeholder-annotated JSON templates from a schema.
type Renderer struct {
	log *logging.Logger
}

// NewRenderer creates a template Renderer.
func NewRenderer() *Renderer {
	return &Renderer{log: logging.Global().WithComponent("template")}
}

// Render is a convenience wrapper around NewRenderer().Render.
func Render(root schema.Field) string {
	return NewRenderer().Render(root)
}

// Render produces the placeholder-annotated template text for root.
func (r *Renderer) Render(root schema.Field) string {
	out := r.renderValue(root, 0)
	r.log.Debug("rendered template (%d bytes)", len(out))
	return out
}

func (r *Renderer) renderValue(f schema.Field, depth int) string {
	switch v := f.(type) {
	case *schema.Int:
		return fmt.Sprintf("<int %d..%d>", v.Min, v.Max)
	case *schema.ConstantInt:
		return strconv.Itoa(v.Value)
	case *schema.Float:
		return fmt.Sprintf("<float %v..%v>", v.Min, v.Max)
	case *schema.ConstantFloat:
		return formatFloatLiteral(v.Value)
	case *schema.Digit:
		return fmt.Sprintf(`"<%d digits>"`, v.Count)
	case *schema.String:
		return fmt.Sprintf(`"<string %d..%d chars>"`, v.MinLen, v.MaxLen)
	case *schema.Bool:
		return "<true|false>"
	case *schema.ChoiceString:
		opts := make([]string, len(v.Options))
		for i, o := range v.Options {
			opts[i] = `"` + o + `"`
		}
		return "<" + strings.Join(opts, "|") + ">"
	case *schema.ChoiceInt:
		opts := make([]string, len(v.Options))
		for i, o := range v.Options {
			opts[i] = strconv.Itoa(o)
		}
		return "<" + strings.Join(opts, "|") + ">"
	case *schema.TemplateString:
		if !v.HasMarker {
			return `"` + v.Template + `"`
		}
		return `"` + v.Prefix + fmt.Sprintf("<%d..%d chars>", v.MinGen, v.MaxGen) + v.Suffix + `"`
	case *schema.Array:
		return r.renderArray(v, depth)
	case *schema.Composite:
		return r.renderComposite(v, depth)
	case *schema.Variant:
		alts := make([]string, len(v.Alternatives))
		for i, alt := range v.Alternatives {
			alts[i] = r.renderComposite(alt, depth)
		}
		return strings.Join(alts, " OR ")
	case *schema.Optional:
		return r.renderValue(v.Inner, depth)
	default:
		return "<?>"
	}
}

func (r *Renderer) renderArray(v *schema.Array, depth int) string {
	elem := r.renderValue(v.Element, depth)
	if v.MaxLen > 1 {
		return "[ " + elem + ", ... ]"
	}
	return "[ " + elem + " ]"
}

func (r *Renderer) renderComposite(v *schema.Composite, depth int) string {
	if len(v.Fields) == 0 {
		return "{}"
	}

	inner := strings.Repeat(indentUnit, depth+1)
	closing := strings.Repeat(indentUnit, depth)

	lines := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		key := f.FieldName()
		opt, isOptional := f.(*schema.Optional)
		child := f
		suffix := ""
		if isOptional {
			suffix = "?"
			child = opt
		}
		lines[i] = inner + `"` + key + `"` + suffix + `: ` + r.renderValue(child, depth+1)
	}

	return "{\n" + strings.Join(lines, ",\n") + "\n" + closing + "}"
}

func formatFloatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
