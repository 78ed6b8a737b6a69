// Package grammar lowers a schema tree (internal/schema) into a GBNF
// document — the grammar format consumed by llama.cpp-family inference
// servers to constrain token sampling. Compilation is total (every valid
// schema compiles) and deterministic (identical input yields byte-identical
// output); see Compile.
package grammar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/normanking/gbnfschema/internal/logging"
	"github.com/normanking/gbnfschema/internal/schema"
)

// CompilationError is the single defensive error path for conditions a
// correct schema should never trigger (an unrecognised Field
// implementation reaching the compiler). It exists because Go's type
// system, unlike a closed sum type with exhaustiveness checking, cannot
// prove every switch is total at compile time.
type CompilationError struct {
	Path   string
	Reason string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("grammar compilation failed at %q: %s", e.Path, e.Reason)
}

var ruleNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

type ruleEntry struct {
	name string
	def  string
}

// Compiler lowers a schema tree into a GBNF document. A Compiler is not
// reusable across concurrent Compile calls on different schemas; construct
// a fresh one (or use the package-level Compile) per invocation.
type Compiler struct {
	rules           []ruleEntry
	usedNames       map[string]bool
	wantsWS         bool
	wantsChars      bool
	collisionSuffix string
	log             *logging.Logger
}

// NewCompiler creates a Compiler with no accumulated state, using "-" as the
// separator between a rule's base name and the numeric suffix appended on a
// naming collision (e.g. "slot-2").
func NewCompiler() *Compiler {
	return NewCompilerWithCollisionSuffix("-")
}

// NewCompilerWithCollisionSuffix is like NewCompiler but lets the caller
// override the collision separator, per internal/schemaconfig's
// grammar.collision_suffix setting.
func NewCompilerWithCollisionSuffix(suffix string) *Compiler {
	return &Compiler{
		usedNames:       make(map[string]bool),
		collisionSuffix: suffix,
		log:             logging.Global().WithComponent("grammar"),
	}
}

// Compile is a convenience wrapper around NewCompiler().Compile.
func Compile(root schema.Field) (string, error) {
	return NewCompiler().Compile(root)
}

// CompileWithCollisionSuffix is a convenience wrapper around
// NewCompilerWithCollisionSuffix(suffix).Compile.
func CompileWithCollisionSuffix(root schema.Field, suffix string) (string, error) {
	return NewCompilerWithCollisionSuffix(suffix).Compile(root)
}

// Compile lowers root into a complete GBNF document whose first rule is
// named "root".
func (c *Compiler) Compile(root schema.Field) (string, error) {
	c.rules = nil
	c.usedNames = make(map[string]bool)
	c.wantsWS = false
	c.wantsChars = false

	c.usedNames["root"] = true

	var rootDef string
	var err error

	switch v := root.(type) {
	case *schema.Composite:
		rootDef, err = c.compositeBody(v)
	case *schema.Variant:
		rootDef, err = c.variantDef(v)
	case *schema.Optional:
		rootDef, err = c.compileValue(v)
	default:
		rootDef, err = c.compileValue(root)
	}
	if err != nil {
		return "", err
	}

	c.rules = append(c.rules, ruleEntry{"root", rootDef})
	if c.wantsWS {
		c.addHelper("ws", `[ \t\n]*`)
	}
	if c.wantsChars {
		c.addHelper("string-char", `[^"\\] | "\\" (["\\/bfnrt] | "u" [0-9a-fA-F] [0-9a-fA-F] [0-9a-fA-F] [0-9a-fA-F])`)
	}

	c.log.Debug("compiled grammar with %d rules", len(c.rules))
	return c.render(), nil
}

func (c *Compiler) addHelper(name, def string) {
	if c.usedNames[name] {
		return
	}
	c.usedNames[name] = true
	c.rules = append(c.rules, ruleEntry{name, def})
}

// compileValue lowers a single field to the right-hand side used at its
// point of use: an inline expression for leaf variants, or a reference to a
// freshly generated named rule for Composite/Variant.
func (c *Compiler) compileValue(f schema.Field) (string, error) {
	switch v := f.(type) {
	case *schema.Int:
		return c.intExpr(v.Min, v.Max), nil
	case *schema.ConstantInt:
		return quoteGBNF(strconv.Itoa(v.Value)), nil
	case *schema.Float:
		return c.floatExpr(v.Min, v.Max), nil
	case *schema.ConstantFloat:
		return quoteGBNF(formatConstantFloat(v.Value)), nil
	case *schema.Digit:
		body := boundedRepeat("[0-9]", v.Count, v.Count)
		return joinNonEmpty(quoteChar, body, quoteChar), nil
	case *schema.String:
		c.wantsChars = true
		body := boundedRepeat("string-char", v.MinLen, v.MaxLen)
		return joinNonEmpty(quoteChar, body, quoteChar), nil
	case *schema.Bool:
		return `"true" | "false"`, nil
	case *schema.ChoiceString:
		return c.choiceStringExpr(v), nil
	case *schema.ChoiceInt:
		return c.choiceIntExpr(v), nil
	case *schema.TemplateString:
		return c.templateStringExpr(v), nil
	case *schema.Array:
		if v.MaxLen == 0 {
			c.wantsWS = true
			return arrayBody("", 0, 0), nil
		}
		elemRhs, err := c.compileValue(v.Element)
		if err != nil {
			return "", err
		}
		c.wantsWS = true
		return arrayBody(elemRhs, v.MinLen, v.MaxLen), nil
	case *schema.Composite:
		return c.defineComposite(v)
	case *schema.Variant:
		return c.defineVariant(v)
	case *schema.Optional:
		inner, err := c.compileValue(v.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")?", nil
	default:
		return "", &CompilationError{Path: f.FieldName(), Reason: fmt.Sprintf("unsupported field kind %q", f.Kind())}
	}
}

func (c *Compiler) intExpr(min, max int) string {
	alts := intRangeAlternatives(min, max)
	return "(" + strings.Join(alts, " | ") + ")"
}

func (c *Compiler) floatExpr(min, max float64) string {
	lo := int(math.Floor(min))
	hi := int(math.Ceil(max))
	return c.intExpr(lo, hi) + ` "." [0-9]+`
}

func formatConstantFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (c *Compiler) choiceStringExpr(v *schema.ChoiceString) string {
	alts := make([]string, len(v.Options))
	for i, opt := range v.Options {
		alts[i] = quoteGBNF(`"` + opt + `"`)
	}
	return "(" + strings.Join(alts, " | ") + ")"
}

func (c *Compiler) choiceIntExpr(v *schema.ChoiceInt) string {
	alts := make([]string, len(v.Options))
	for i, opt := range v.Options {
		alts[i] = quoteGBNF(strconv.Itoa(opt))
	}
	return "(" + strings.Join(alts, " | ") + ")"
}

func (c *Compiler) templateStringExpr(v *schema.TemplateString) string {
	if !v.HasMarker {
		return joinNonEmpty(quoteChar, quoteGBNF(v.Template), quoteChar)
	}
	c.wantsChars = true
	mid := boundedRepeat("string-char", v.MinGen, v.MaxGen)
	return joinNonEmpty(quoteChar, quoteGBNF(v.Prefix), mid, quoteGBNF(v.Suffix), quoteChar)
}

func joinNonEmpty(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// compilePair renders the "key" ":" value fragment for a composite child
// that is always present (required fields, and the present-branch of an
// optional field).
func (c *Compiler) compilePair(f schema.Field) (string, error) {
	valueRhs, err := c.compileValue(f)
	if err != nil {
		return "", err
	}
	key := joinNonEmpty(quoteChar, quoteGBNF(f.FieldName()), quoteChar)
	return key + ` ws ":" ws ` + valueRhs, nil
}

// compositeBody builds the "{" ... "}" rhs for a Composite. Required and
// optional children are interleaved correctly via a two-state suffix
// recursion (see DESIGN.md): state "fresh" means nothing has been emitted
// for this object yet, state "cont" means at least one field already has.
// Each state is computed once per position, but an optional field's states
// embed the text of the following "cont" state in both branches, so the
// rendered rule roughly doubles in length with each optional field.
func (c *Compiler) compositeBody(v *schema.Composite) (string, error) {
	c.wantsWS = true
	n := len(v.Fields)

	pairs := make([]string, n)
	optional := make([]bool, n)
	for i, f := range v.Fields {
		if opt, ok := f.(*schema.Optional); ok {
			optional[i] = true
			p, err := c.compilePair(opt.Inner)
			if err != nil {
				return "", err
			}
			pairs[i] = p
		} else {
			p, err := c.compilePair(f)
			if err != nil {
				return "", err
			}
			pairs[i] = p
		}
	}

	fresh := make([]string, n+1)
	cont := make([]string, n+1)
	fresh[n], cont[n] = "", ""

	for i := n - 1; i >= 0; i-- {
		if !optional[i] {
			fresh[i] = joinNonEmpty(pairs[i], wsWrap(cont[i+1]))
			cont[i] = joinNonEmpty(`","`, "ws", pairs[i], wsWrap(cont[i+1]))
			continue
		}

		presentFresh := joinNonEmpty(pairs[i], wsWrap(cont[i+1]))
		if fresh[i+1] == "" {
			fresh[i] = "(" + presentFresh + ")?"
		} else {
			fresh[i] = "(" + presentFresh + " | " + fresh[i+1] + ")"
		}

		presentCont := joinNonEmpty(`","`, "ws", pairs[i], wsWrap(cont[i+1]))
		if cont[i+1] == "" {
			cont[i] = "(" + presentCont + ")?"
		} else {
			cont[i] = "(" + presentCont + " | " + cont[i+1] + ")"
		}
	}

	if fresh[0] == "" {
		return `"{" ws "}"`, nil
	}
	return joinNonEmpty(`"{"`, "ws", fresh[0], "ws", `"}"`), nil
}

func wsWrap(s string) string {
	if s == "" {
		return ""
	}
	return "ws " + s
}

func (c *Compiler) defineComposite(v *schema.Composite) (string, error) {
	name := c.nameFor(v.FieldName())
	def, err := c.compositeBody(v)
	if err != nil {
		return "", err
	}
	c.rules = append(c.rules, ruleEntry{name, def})
	return name, nil
}

func (c *Compiler) variantDef(v *schema.Variant) (string, error) {
	altNames := make([]string, len(v.Alternatives))
	for i, alt := range v.Alternatives {
		name, err := c.defineComposite(alt)
		if err != nil {
			return "", err
		}
		altNames[i] = name
	}
	return "(" + strings.Join(altNames, " | ") + ")", nil
}

func (c *Compiler) defineVariant(v *schema.Variant) (string, error) {
	name := c.nameFor(v.FieldName())
	def, err := c.variantDef(v)
	if err != nil {
		return "", err
	}
	c.rules = append(c.rules, ruleEntry{name, def})
	return name, nil
}

// nameFor sanitizes fieldName into a valid, unused GBNF rule name,
// appending a numeric suffix on collision.
func (c *Compiler) nameFor(fieldName string) string {
	base := sanitizeRuleName(fieldName)
	if !c.usedNames[base] {
		c.usedNames[base] = true
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%s%d", base, c.collisionSuffix, i)
		if !c.usedNames[candidate] {
			c.usedNames[candidate] = true
			return candidate
		}
	}
}

func sanitizeRuleName(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := b.String()
	if out == "" || !ruleNamePattern.MatchString(out) {
		out = "field-" + out
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "f-" + out
	}
	return out
}

// render emits the accumulated rules as a GBNF document with root first.
func (c *Compiler) render() string {
	var sb strings.Builder
	for _, r := range c.rules {
		if r.name == "root" {
			sb.WriteString(r.name + " ::= " + r.def + "\n")
			break
		}
	}
	for _, r := range c.rules {
		if r.name == "root" {
			continue
		}
		sb.WriteString(r.name + " ::= " + r.def + "\n")
	}
	return sb.String()
}
