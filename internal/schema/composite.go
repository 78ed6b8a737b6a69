package schema

import "strings"

// GeneratedMarker is the literal substring inside a TemplateString's
// Template that is replaced by a free-text region at generation time.
const GeneratedMarker = "<generated>"

// TemplateString is a JSON string equal to Template, with the literal
// substring GeneratedMarker (if present) replaced by a free-text region of
// length in [MinGen, MaxGen].
type TemplateString struct {
	Name        string
	Template    string
	MinGen      int
	MaxGen      int
	HasMarker   bool   // whether Template contains GeneratedMarker
	Prefix      string // text before the marker (or the whole template if HasMarker is false)
	Suffix      string // text after the marker (empty if HasMarker is false)
}

func (f *TemplateString) FieldName() string { return f.Name }
func (f *TemplateString) Kind() Kind        { return KindTemplateString }
func (f *TemplateString) sealed()           {}

// NewTemplateString constructs a TemplateString field. The template may
// contain at most one GeneratedMarker occurrence; if it contains none, the
// field must match the template exactly and MinGen/MaxGen are ignored.
func NewTemplateString(name, template string, minGen, maxGen int) (*TemplateString, error) {
	count := strings.Count(template, GeneratedMarker)
	if count > 1 {
		return nil, invalid(name, "template contains more than one <generated> marker")
	}

	t := &TemplateString{Name: name, Template: template, MinGen: minGen, MaxGen: maxGen}

	if count == 0 {
		t.HasMarker = false
		t.Prefix = template
		t.Suffix = ""
		return t, nil
	}

	if minGen < 0 {
		return nil, invalid(name, "min_gen must be >= 0")
	}
	if minGen > maxGen {
		return nil, invalid(name, "min_gen must be <= max_gen")
	}

	idx := strings.Index(template, GeneratedMarker)
	t.HasMarker = true
	t.Prefix = template[:idx]
	t.Suffix = template[idx+len(GeneratedMarker):]
	return t, nil
}

// Array is a JSON array of homogeneous Element values whose length lies in
// [MinLen, MaxLen].
type Array struct {
	Name           string
	Element        Field
	MinLen, MaxLen int
}

func (f *Array) FieldName() string { return f.Name }
func (f *Array) Kind() Kind        { return KindArray }
func (f *Array) sealed()           {}

// NewArray constructs an Array field, rejecting a negative or inverted
// length range.
func NewArray(name string, element Field, minLen, maxLen int) (*Array, error) {
	if minLen < 0 {
		return nil, invalid(name, "min_len must be >= 0")
	}
	if minLen > maxLen {
		return nil, invalid(name, "min_len must be <= max_len")
	}
	if element == nil {
		return nil, invalid(name, "element must not be nil")
	}
	return &Array{Name: name, Element: element, MinLen: minLen, MaxLen: maxLen}, nil
}

// Composite is a JSON object with exactly the named keys from Fields, in
// the declared order.
type Composite struct {
	Name   string
	Fields []Field
}

func (f *Composite) FieldName() string { return f.Name }
func (f *Composite) Kind() Kind        { return KindComposite }
func (f *Composite) sealed()           {}

// NewComposite constructs a Composite field, rejecting duplicate child
// names.
func NewComposite(name string, fields ...Field) (*Composite, error) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		n := f.FieldName()
		if seen[n] {
			return nil, invalid(name, "duplicate field name \""+n+"\"")
		}
		seen[n] = true
	}
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return &Composite{Name: name, Fields: cp}, nil
}

// Variant is a JSON object matching exactly one of Alternatives; each
// alternative is itself a named Composite.
type Variant struct {
	Name         string
	Alternatives []*Composite
}

func (f *Variant) FieldName() string { return f.Name }
func (f *Variant) Kind() Kind        { return KindVariant }
func (f *Variant) sealed()           {}

// NewVariant constructs a Variant field, rejecting an empty alternative
// list.
func NewVariant(name string, alternatives ...*Composite) (*Variant, error) {
	if len(alternatives) == 0 {
		return nil, invalid(name, "alternatives must be non-empty")
	}
	cp := make([]*Composite, len(alternatives))
	copy(cp, alternatives)
	return &Variant{Name: name, Alternatives: cp}, nil
}

// Optional marks a Composite child as omissible. At the grammar level the
// parent may skip emitting the field entirely; at the value level, when
// present, it must satisfy Inner.
type Optional struct {
	Inner Field
}

func (f *Optional) FieldName() string { return f.Inner.FieldName() }
func (f *Optional) Kind() Kind        { return KindOptional }
func (f *Optional) sealed()           {}

// NewOptional wraps inner as an omissible field.
func NewOptional(inner Field) *Optional {
	return &Optional{Inner: inner}
}
