// Package examples loads a small registry of named example schemas from
// YAML files, declared the way the teacher's config package declares
// structured YAML sections. It exists to exercise the full facade
// end-to-end against realistic schemas without requiring a caller to
// hand-write one in Go — a documentation and testing aid, not a new
// schema-algebra feature.
package examples

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/normanking/gbnfschema/internal/schema"
)

// Example is one named, loaded schema together with its source metadata.
type Example struct {
	Name        string
	Description string
	Root        schema.Field
}

// fieldDef is the YAML-facing description of a single schema.Field. Only
// the attributes relevant to Kind are populated; unused attributes are
// left at their zero value.
type fieldDef struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	Min int `yaml:"min"`
	Max int `yaml:"max"`

	MinFloat float64 `yaml:"min_float"`
	MaxFloat float64 `yaml:"max_float"`

	Value      int     `yaml:"value"`
	ValueFloat float64 `yaml:"value_float"`

	Count int `yaml:"count"`

	MinLen int `yaml:"min_len"`
	MaxLen int `yaml:"max_len"`

	Options    []string `yaml:"options"`
	OptionsInt []int    `yaml:"options_int"`

	Template string `yaml:"template"`
	MinGen   int    `yaml:"min_gen"`
	MaxGen   int    `yaml:"max_gen"`

	Element *fieldDef `yaml:"element"`

	Fields []fieldDef `yaml:"fields"`

	Alternatives []fieldDef `yaml:"alternatives"`

	Optional bool `yaml:"optional"`
}

type schemaFile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Root        fieldDef `yaml:"root"`
}

// build converts a fieldDef into the corresponding schema.Field, applying
// the same constructor-time invariant checks as hand-written Go code.
func build(def fieldDef) (schema.Field, error) {
	var f schema.Field
	var err error

	switch def.Kind {
	case "int":
		f, err = schema.NewInt(def.Name, def.Min, def.Max)
	case "constant_int":
		f = schema.NewConstantInt(def.Name, def.Value)
	case "float":
		f, err = schema.NewFloat(def.Name, def.MinFloat, def.MaxFloat)
	case "constant_float":
		f = schema.NewConstantFloat(def.Name, def.ValueFloat)
	case "digit":
		f, err = schema.NewDigit(def.Name, def.Count)
	case "string":
		f, err = schema.NewString(def.Name, def.MinLen, def.MaxLen)
	case "bool":
		f = schema.NewBool(def.Name)
	case "choice_string":
		f, err = schema.NewChoiceString(def.Name, def.Options...)
	case "choice_int":
		f, err = schema.NewChoiceInt(def.Name, def.OptionsInt...)
	case "template_string":
		f, err = schema.NewTemplateString(def.Name, def.Template, def.MinGen, def.MaxGen)
	case "array":
		if def.Element == nil {
			return nil, fmt.Errorf("array field %q: missing element", def.Name)
		}
		elem, elemErr := build(*def.Element)
		if elemErr != nil {
			return nil, elemErr
		}
		f, err = schema.NewArray(def.Name, elem, def.MinLen, def.MaxLen)
	case "composite":
		children := make([]schema.Field, 0, len(def.Fields))
		for _, childDef := range def.Fields {
			child, childErr := build(childDef)
			if childErr != nil {
				return nil, childErr
			}
			children = append(children, child)
		}
		f, err = schema.NewComposite(def.Name, children...)
	case "variant":
		alts := make([]*schema.Composite, 0, len(def.Alternatives))
		for _, altDef := range def.Alternatives {
			alt, altErr := build(altDef)
			if altErr != nil {
				return nil, altErr
			}
			composite, ok := alt.(*schema.Composite)
			if !ok {
				return nil, fmt.Errorf("variant %q: alternative %q is not a composite", def.Name, altDef.Name)
			}
			alts = append(alts, composite)
		}
		f, err = schema.NewVariant(def.Name, alts...)
	default:
		return nil, fmt.Errorf("field %q: unknown kind %q", def.Name, def.Kind)
	}
	if err != nil {
		return nil, err
	}
	if def.Optional {
		return schema.NewOptional(f), nil
	}
	return f, nil
}

// Load reads every *.schema.yaml file under the given search paths and
// returns the decoded examples keyed by name. Directories that do not
// exist are silently skipped, matching the teacher's tolerant treatment of
// optional config search paths.
func Load(searchPaths []string) (map[string]*Example, error) {
	registry := make(map[string]*Example)

	for _, dir := range searchPaths {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read examples directory %q: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".schema.yaml") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			ex, err := loadFile(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			registry[ex.Name] = ex
		}
	}

	return registry, nil
}

func loadFile(path string) (*Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sf schemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	root, err := build(sf.Root)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}

	return &Example{Name: sf.Name, Description: sf.Description, Root: root}, nil
}

// Names returns the sorted example names in registry, for stable listing.
func Names(registry map[string]*Example) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
