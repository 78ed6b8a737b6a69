// Package schema defines the field algebra for the constrained-generation
// schema compiler: an immutable, recursive tagged sum describing the shape
// of a JSON document. Every variant is a concrete struct rather than a class
// hierarchy, matched exhaustively by the grammar, template, hint, and
// validator packages via a type switch — see DESIGN.md for the rationale.
package schema

// Kind identifies which field variant a Field implements. Visitors over the
// algebra dispatch with a type switch on the concrete Field type; Kind names
// the variant, e.g. in a grammar.CompilationError message.
type Kind string

const (
	KindInt            Kind = "int"
	KindConstantInt    Kind = "constant_int"
	KindFloat          Kind = "float"
	KindConstantFloat  Kind = "constant_float"
	KindDigit          Kind = "digit"
	KindString         Kind = "string"
	KindBool           Kind = "bool"
	KindChoiceString   Kind = "choice_string"
	KindChoiceInt      Kind = "choice_int"
	KindTemplateString Kind = "template_string"
	KindArray          Kind = "array"
	KindComposite      Kind = "composite"
	KindVariant        Kind = "variant"
	KindOptional       Kind = "optional"
)

// Field is the sealed interface implemented by every node in the schema
// tree. It carries only identity (name, kind); all behavior lives in the
// free functions of the grammar/template/hints/validate packages, not on
// the nodes themselves.
type Field interface {
	// FieldName returns the JSON object key used when this field appears
	// inside a Composite parent.
	FieldName() string
	// Kind reports which concrete variant this Field is.
	Kind() Kind

	sealed()
}

// Int is an integer field constrained to the inclusive range [Min, Max].
type Int struct {
	Name     string
	Min, Max int
}

func (f *Int) FieldName() string { return f.Name }
func (f *Int) Kind() Kind        { return KindInt }
func (f *Int) sealed()           {}

// NewInt constructs an Int field, rejecting an inverted range.
func NewInt(name string, min, max int) (*Int, error) {
	if min > max {
		return nil, invalid(name, "min must be <= max")
	}
	return &Int{Name: name, Min: min, Max: max}, nil
}

// ConstantInt must emit exactly Value.
type ConstantInt struct {
	Name  string
	Value int
}

func (f *ConstantInt) FieldName() string { return f.Name }
func (f *ConstantInt) Kind() Kind        { return KindConstantInt }
func (f *ConstantInt) sealed()           {}

// NewConstantInt constructs a ConstantInt field. No invariant can be
// violated by a bare integer constant.
func NewConstantInt(name string, value int) *ConstantInt {
	return &ConstantInt{Name: name, Value: value}
}

// Float is a decimal number constrained to the inclusive range [Min, Max].
type Float struct {
	Name     string
	Min, Max float64
}

func (f *Float) FieldName() string { return f.Name }
func (f *Float) Kind() Kind        { return KindFloat }
func (f *Float) sealed()           {}

// NewFloat constructs a Float field, rejecting an inverted range.
func NewFloat(name string, min, max float64) (*Float, error) {
	if min > max {
		return nil, invalid(name, "min must be <= max")
	}
	return &Float{Name: name, Min: min, Max: max}, nil
}

// ConstantFloatEpsilon is the tolerance used when comparing a decoded float
// against a ConstantFloat's declared value.
const ConstantFloatEpsilon = 1e-4

// ConstantFloat must emit exactly Value, within ConstantFloatEpsilon.
type ConstantFloat struct {
	Name  string
	Value float64
}

func (f *ConstantFloat) FieldName() string { return f.Name }
func (f *ConstantFloat) Kind() Kind        { return KindConstantFloat }
func (f *ConstantFloat) sealed()           {}

// NewConstantFloat constructs a ConstantFloat field.
func NewConstantFloat(name string, value float64) *ConstantFloat {
	return &ConstantFloat{Name: name, Value: value}
}

// Digit is a JSON string of exactly Count decimal digits, preserving
// leading zeros (a fixed-width numeric string, distinct from Int).
type Digit struct {
	Name  string
	Count int
}

func (f *Digit) FieldName() string { return f.Name }
func (f *Digit) Kind() Kind        { return KindDigit }
func (f *Digit) sealed()           {}

// NewDigit constructs a Digit field, rejecting a negative count.
func NewDigit(name string, count int) (*Digit, error) {
	if count < 0 {
		return nil, invalid(name, "count must be >= 0")
	}
	return &Digit{Name: name, Count: count}, nil
}

// String is a JSON string whose decoded length lies in [MinLen, MaxLen].
type String struct {
	Name           string
	MinLen, MaxLen int
}

func (f *String) FieldName() string { return f.Name }
func (f *String) Kind() Kind        { return KindString }
func (f *String) sealed()           {}

// NewString constructs a String field, rejecting a negative or inverted
// length range.
func NewString(name string, minLen, maxLen int) (*String, error) {
	if minLen < 0 {
		return nil, invalid(name, "min_len must be >= 0")
	}
	if minLen > maxLen {
		return nil, invalid(name, "min_len must be <= max_len")
	}
	return &String{Name: name, MinLen: minLen, MaxLen: maxLen}, nil
}

// Bool is a JSON true/false field.
type Bool struct {
	Name string
}

func (f *Bool) FieldName() string { return f.Name }
func (f *Bool) Kind() Kind        { return KindBool }
func (f *Bool) sealed()           {}

// NewBool constructs a Bool field.
func NewBool(name string) *Bool {
	return &Bool{Name: name}
}

// ChoiceString must equal one of Options. The parameterised Choice<string>
// variant of the spec is represented as its own concrete type rather than a
// Go generic, per the Design Notes: two constructors are an exhaustive,
// reflection-free stand-in for a closed generic over {string, int}.
type ChoiceString struct {
	Name    string
	Options []string
}

func (f *ChoiceString) FieldName() string { return f.Name }
func (f *ChoiceString) Kind() Kind        { return KindChoiceString }
func (f *ChoiceString) sealed()           {}

// NewChoiceString constructs a ChoiceString field, rejecting an empty
// option list.
func NewChoiceString(name string, options ...string) (*ChoiceString, error) {
	if len(options) == 0 {
		return nil, invalid(name, "options must be non-empty")
	}
	cp := make([]string, len(options))
	copy(cp, options)
	return &ChoiceString{Name: name, Options: cp}, nil
}

// ChoiceInt must equal one of Options.
type ChoiceInt struct {
	Name    string
	Options []int
}

func (f *ChoiceInt) FieldName() string { return f.Name }
func (f *ChoiceInt) Kind() Kind        { return KindChoiceInt }
func (f *ChoiceInt) sealed()           {}

// NewChoiceInt constructs a ChoiceInt field, rejecting an empty option
// list.
func NewChoiceInt(name string, options ...int) (*ChoiceInt, error) {
	if len(options) == 0 {
		return nil, invalid(name, "options must be non-empty")
	}
	cp := make([]int, len(options))
	copy(cp, options)
	return &ChoiceInt{Name: name, Options: cp}, nil
}
