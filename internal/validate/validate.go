// Package validate independently checks a raw JSON string against a schema
// tree, returning a boolean result and a list of path-qualified diagnostics.
// The validator never panics outward: construction problems are the schema
// package's concern, and anything unexpected encountered while walking a
// value is caught and reported as a diagnostic instead of propagating.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/normanking/gbnfschema/internal/logging"
	"github.com/normanking/gbnfschema/internal/schema"
)

var log = logging.Global().WithComponent("validate")

// Validator checks raw JSON against a schema tree using a configurable
// float comparison epsilon (internal/schemaconfig's grammar.float_epsilon).
type Validator struct {
	epsilon float64
}

// NewValidator creates a Validator using epsilon as the ConstantFloat
// comparison tolerance.
func NewValidator(epsilon float64) *Validator {
	return &Validator{epsilon: epsilon}
}

// Validate parses input as JSON and checks it against root, returning
// whether it is valid and, if not, at least one path-qualified diagnostic
// per violation. It uses schema.ConstantFloatEpsilon as the default
// tolerance; see ValidateWithEpsilon to override it.
func Validate(root schema.Field, input string) (bool, []string) {
	return NewValidator(schema.ConstantFloatEpsilon).Validate(root, input)
}

// ValidateWithEpsilon is a convenience wrapper around
// NewValidator(epsilon).Validate.
func ValidateWithEpsilon(root schema.Field, input string, epsilon float64) (bool, []string) {
	return NewValidator(epsilon).Validate(root, input)
}

// Validate parses input as JSON and checks it against root, returning
// whether it is valid and, if not, at least one path-qualified diagnostic
// per violation.
func (val *Validator) Validate(root schema.Field, input string) (bool, []string) {
	value, err := decodeStrict([]byte(input))
	if err != nil {
		log.Debug("rejected unparseable input: %v", err)
		return false, []string{fmt.Sprintf("invalid JSON format: %s", err)}
	}

	var errs []string
	val.check(root, value, root.FieldName(), &errs)
	return len(errs) == 0, errs
}

// check dispatches on the field kind, recovering from any panic raised
// during the comparison and reporting it as a diagnostic at path rather
// than letting it escape.
func (val *Validator) check(f schema.Field, value any, path string, errs *[]string) {
	defer func() {
		if r := recover(); r != nil {
			*errs = append(*errs, fmt.Sprintf("%s: validation exception: %v", path, r))
		}
	}()

	switch v := f.(type) {
	case *schema.Int:
		checkInt(v, value, path, errs)
	case *schema.ConstantInt:
		checkConstantInt(v, value, path, errs)
	case *schema.Float:
		checkFloat(v, value, path, errs)
	case *schema.ConstantFloat:
		val.checkConstantFloat(v, value, path, errs)
	case *schema.Digit:
		checkDigit(v, value, path, errs)
	case *schema.String:
		checkString(v, value, path, errs)
	case *schema.Bool:
		checkBool(v, value, path, errs)
	case *schema.ChoiceString:
		checkChoiceString(v, value, path, errs)
	case *schema.ChoiceInt:
		checkChoiceInt(v, value, path, errs)
	case *schema.TemplateString:
		checkTemplateString(v, value, path, errs)
	case *schema.Array:
		val.checkArray(v, value, path, errs)
	case *schema.Composite:
		val.checkComposite(v, value, path, errs)
	case *schema.Variant:
		val.checkVariant(v, value, path, errs)
	case *schema.Optional:
		if value == nil {
			return
		}
		val.check(v.Inner, value, path, errs)
	default:
		*errs = append(*errs, fmt.Sprintf("%s: unsupported field type", path))
	}
}

func asNumber(value any) (json.Number, bool) {
	n, ok := value.(json.Number)
	return n, ok
}

func checkInt(f *schema.Int, value any, path string, errs *[]string) {
	n, ok := asNumber(value)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected integer, got %s", path, typeName(value)))
		return
	}
	i, err := n.Int64()
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: expected integer, got %s", path, n.String()))
		return
	}
	if int(i) < f.Min || int(i) > f.Max {
		*errs = append(*errs, fmt.Sprintf("%s: value %d outside [%d,%d]", path, i, f.Min, f.Max))
	}
}

func checkConstantInt(f *schema.ConstantInt, value any, path string, errs *[]string) {
	n, ok := asNumber(value)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected integer, got %s", path, typeName(value)))
		return
	}
	i, err := n.Int64()
	if err != nil || int(i) != f.Value {
		*errs = append(*errs, fmt.Sprintf("%s: expected constant %d, got %s", path, f.Value, n.String()))
	}
}

func checkFloat(f *schema.Float, value any, path string, errs *[]string) {
	n, ok := asNumber(value)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected number, got %s", path, typeName(value)))
		return
	}
	x, err := n.Float64()
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: expected number, got %s", path, n.String()))
		return
	}
	if x < f.Min || x > f.Max {
		*errs = append(*errs, fmt.Sprintf("%s: value %v outside [%v,%v]", path, x, f.Min, f.Max))
	}
}

func (val *Validator) checkConstantFloat(f *schema.ConstantFloat, value any, path string, errs *[]string) {
	n, ok := asNumber(value)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected number, got %s", path, typeName(value)))
		return
	}
	x, err := n.Float64()
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: expected number, got %s", path, n.String()))
		return
	}
	if math.Abs(x-f.Value) > val.epsilon {
		*errs = append(*errs, fmt.Sprintf("%s: expected constant %v, got %v", path, f.Value, x))
	}
}

func checkDigit(f *schema.Digit, value any, path string, errs *[]string) {
	s, ok := value.(string)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected digit string, got %s", path, typeName(value)))
		return
	}
	if n := utf8.RuneCountInString(s); n != f.Count {
		*errs = append(*errs, fmt.Sprintf("%s: expected exactly %d digits, got %d characters", path, f.Count, n))
		return
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			*errs = append(*errs, fmt.Sprintf("%s: contains non-digit character %q", path, r))
			return
		}
	}
}

func checkString(f *schema.String, value any, path string, errs *[]string) {
	s, ok := value.(string)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected string, got %s", path, typeName(value)))
		return
	}
	n := utf8.RuneCountInString(s)
	if n < f.MinLen || n > f.MaxLen {
		*errs = append(*errs, fmt.Sprintf("%s: length %d outside [%d,%d]", path, n, f.MinLen, f.MaxLen))
	}
}

func checkBool(f *schema.Bool, value any, path string, errs *[]string) {
	if _, ok := value.(bool); !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected boolean, got %s", path, typeName(value)))
	}
}

func checkChoiceString(f *schema.ChoiceString, value any, path string, errs *[]string) {
	s, ok := value.(string)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected string, got %s", path, typeName(value)))
		return
	}
	for _, opt := range f.Options {
		if s == opt {
			return
		}
	}
	*errs = append(*errs, fmt.Sprintf("%s: %q not in allowed choices %s", path, s, strings.Join(f.Options, "|")))
}

func checkChoiceInt(f *schema.ChoiceInt, value any, path string, errs *[]string) {
	n, ok := asNumber(value)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected integer, got %s", path, typeName(value)))
		return
	}
	i, err := n.Int64()
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: expected integer, got %s", path, n.String()))
		return
	}
	for _, opt := range f.Options {
		if int(i) == opt {
			return
		}
	}
	*errs = append(*errs, fmt.Sprintf("%s: %d not in allowed choices", path, i))
}

func checkTemplateString(f *schema.TemplateString, value any, path string, errs *[]string) {
	s, ok := value.(string)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected string, got %s", path, typeName(value)))
		return
	}
	if !f.HasMarker {
		if s != f.Template {
			*errs = append(*errs, fmt.Sprintf("%s: expected fixed text %q, got %q", path, f.Template, s))
		}
		return
	}
	if !strings.HasPrefix(s, f.Prefix) || !strings.HasSuffix(s, f.Suffix) {
		*errs = append(*errs, fmt.Sprintf("%s: does not match template prefix/suffix", path))
		return
	}
	middle := s[len(f.Prefix) : len(s)-len(f.Suffix)]
	n := utf8.RuneCountInString(middle)
	if n < f.MinGen || n > f.MaxGen {
		*errs = append(*errs, fmt.Sprintf("%s: generated region length %d outside [%d,%d]", path, n, f.MinGen, f.MaxGen))
	}
}

func (val *Validator) checkArray(f *schema.Array, value any, path string, errs *[]string) {
	arr, ok := value.([]any)
	if !ok {
		if value == nil {
			arr = nil
		} else {
			*errs = append(*errs, fmt.Sprintf("%s: expected array, got %s", path, typeName(value)))
			return
		}
	}
	if len(arr) < f.MinLen || len(arr) > f.MaxLen {
		*errs = append(*errs, fmt.Sprintf("%s: length %d outside [%d,%d]", path, len(arr), f.MinLen, f.MaxLen))
	}
	for i, elem := range arr {
		val.check(f.Element, elem, fmt.Sprintf("%s[%d]", path, i), errs)
	}
}

func (val *Validator) checkComposite(f *schema.Composite, value any, path string, errs *[]string) {
	obj, ok := value.(map[string]any)
	if !ok {
		*errs = append(*errs, fmt.Sprintf("%s: expected object, got %s", path, typeName(value)))
		return
	}

	declared := make(map[string]bool, len(f.Fields))
	for _, child := range f.Fields {
		name := child.FieldName()
		declared[name] = true
		childPath := joinPath(path, name)

		v, present := obj[name]
		if opt, isOptional := child.(*schema.Optional); isOptional {
			if !present {
				continue
			}
			val.check(opt.Inner, v, childPath, errs)
			continue
		}

		if !present {
			*errs = append(*errs, fmt.Sprintf("%s: missing required field", childPath))
			continue
		}
		val.check(child, v, childPath, errs)
	}

	for key := range obj {
		if !declared[key] {
			*errs = append(*errs, fmt.Sprintf("%s: unexpected field %q", path, key))
		}
	}
}

func (val *Validator) checkVariant(f *schema.Variant, value any, path string, errs *[]string) {
	var allErrs []string
	for _, alt := range f.Alternatives {
		var altErrs []string
		val.check(alt, value, path, &altErrs)
		if len(altErrs) == 0 {
			return
		}
		allErrs = append(allErrs, altErrs...)
	}
	if len(allErrs) == 0 {
		allErrs = []string{fmt.Sprintf("%s: matched no alternative", path)}
	}
	*errs = append(*errs, allErrs...)
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
