// Package schemacompiler is the single entry point external callers use:
// construct a Facade over a schema once, then call its four pure
// operations. It holds no mutable state beyond the schema it was built
// with, and adds only correlation-ID stamping and telemetry around the
// internal grammar/template/hints/validate packages.
package schemacompiler

import (
	"time"

	"github.com/google/uuid"

	"github.com/normanking/gbnfschema/internal/grammar"
	"github.com/normanking/gbnfschema/internal/hints"
	"github.com/normanking/gbnfschema/internal/logging"
	"github.com/normanking/gbnfschema/internal/schema"
	"github.com/normanking/gbnfschema/internal/schemaconfig"
	"github.com/normanking/gbnfschema/internal/telemetry"
	"github.com/normanking/gbnfschema/internal/template"
	"github.com/normanking/gbnfschema/internal/validate"
)

// Facade exposes compile_grammar, render_template, render_hints, and
// validate over a single schema root.
type Facade struct {
	root schema.Field
	cfg  *schemaconfig.Config
	log  *logging.Logger
}

// New constructs a Facade over root using the built-in default
// configuration. root should already be a fully constructed,
// invariant-checked schema tree (i.e. every constructor along the way
// returned a nil error).
func New(root schema.Field) *Facade {
	return NewWithConfig(root, schemaconfig.Default())
}

// NewWithConfig constructs a Facade over root, driving the grammar
// compiler's collision suffix, the validator's float epsilon, and the hint
// renderer's bullet style from cfg instead of the built-in defaults.
func NewWithConfig(root schema.Field, cfg *schemaconfig.Config) *Facade {
	return &Facade{
		root: root,
		cfg:  cfg,
		log:  logging.Global().WithComponent("facade"),
	}
}

// CompileGrammar lowers the schema to a GBNF document.
func (f *Facade) CompileGrammar() (string, error) {
	id := "compile_" + uuid.New().String()
	start := time.Now()

	out, err := grammar.CompileWithCollisionSuffix(f.root, f.cfg.Grammar.CollisionSuffix)

	elapsed := time.Since(start)
	telemetry.RecordDuration(telemetry.EventCompileGrammar, id, elapsed)
	if err != nil {
		f.log.Error("[%s] grammar compilation failed: %v", id, err)
		return "", err
	}
	f.log.Debug("[%s] compiled grammar in %v", id, elapsed)
	return out, nil
}

// RenderTemplate produces the placeholder-annotated JSON template.
func (f *Facade) RenderTemplate() string {
	id := "compile_" + uuid.New().String()
	start := time.Now()

	out := template.Render(f.root)

	elapsed := time.Since(start)
	telemetry.RecordDuration(telemetry.EventRenderTemplate, id, elapsed)
	f.log.Debug("[%s] rendered template in %v", id, elapsed)
	return out
}

// RenderHints produces the bullet-list constraint summary.
func (f *Facade) RenderHints() string {
	id := "compile_" + uuid.New().String()
	start := time.Now()

	bullet := "* "
	if f.cfg.Hints.Markdown {
		bullet = "- "
	}
	out := hints.RenderWithBullet(f.root, bullet)

	elapsed := time.Since(start)
	telemetry.RecordDuration(telemetry.EventRenderHints, id, elapsed)
	f.log.Debug("[%s] rendered hints in %v", id, elapsed)
	return out
}

// Validate checks input against the schema, returning validity and a list
// of path-qualified diagnostics.
func (f *Facade) Validate(input string) (bool, []string) {
	id := "validate_" + uuid.New().String()
	start := time.Now()

	ok, errs := validate.ValidateWithEpsilon(f.root, input, f.cfg.Grammar.FloatEpsilon)

	elapsed := time.Since(start)
	telemetry.RecordValidation(id, ok, len(errs), elapsed)
	f.log.Debug("[%s] validated in %v: valid=%v diagnostics=%d", id, elapsed, ok, len(errs))
	return ok, errs
}
