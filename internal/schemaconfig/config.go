// Package schemaconfig holds compiler-wide defaults that live outside any
// one schema: the float comparison epsilon, the rule-name collision
// strategy, hint-bullet style, and the search paths for the YAML example
// schema library in internal/examples. It is loaded from
// ~/.gbnfschema/config.yaml, merged with SCHEMACOMPILER_-prefixed
// environment variables, following the teacher's viper-based config
// loader.
package schemaconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the compiler-wide configuration, independent of any one schema.
type Config struct {
	Grammar  GrammarConfig  `mapstructure:"grammar" yaml:"grammar"`
	Hints    HintsConfig    `mapstructure:"hints" yaml:"hints"`
	Examples ExamplesConfig `mapstructure:"examples" yaml:"examples"`
}

// GrammarConfig configures the behavior of the grammar compiler that is not
// dictated by any single schema's shape.
type GrammarConfig struct {
	// FloatEpsilon is the tolerance used when the validator compares a
	// decoded float against a ConstantFloat's declared value.
	FloatEpsilon float64 `mapstructure:"float_epsilon" yaml:"float_epsilon"`
	// CollisionSuffix is the separator used between a rule's base name and
	// the numeric suffix appended on a naming collision (e.g. "-" in
	// "slot-2").
	CollisionSuffix string `mapstructure:"collision_suffix" yaml:"collision_suffix"`
}

// HintsConfig controls the textual style of the hint renderer's output.
type HintsConfig struct {
	// Markdown selects "- " Markdown bullets; when false, hints use an
	// "* " asterisk prefix instead.
	Markdown bool `mapstructure:"markdown" yaml:"markdown"`
}

// ExamplesConfig lists directories searched for *.schema.yaml example
// schema definitions (see internal/examples).
type ExamplesConfig struct {
	SearchPaths []string `mapstructure:"search_paths" yaml:"search_paths"`
}

// Default returns the built-in configuration used when no config file is
// present.
func Default() *Config {
	return &Config{
		Grammar: GrammarConfig{
			FloatEpsilon:    1e-4,
			CollisionSuffix: "-",
		},
		Hints: HintsConfig{
			Markdown: true,
		},
		Examples: ExamplesConfig{
			SearchPaths: []string{"examples"},
		},
	}
}

// Load reads configuration from ~/.gbnfschema/config.yaml, creating it with
// default values if absent, and applies SCHEMACOMPILER_-prefixed
// environment variable overrides.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determine home directory: %w", err)
	}
	return LoadFromPath(filepath.Join(home, ".gbnfschema", "config.yaml"))
}

// LoadFromPath reads configuration from a specific file path, creating it
// with default values if it does not yet exist.
func LoadFromPath(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfigFile(path, Default()); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SCHEMACOMPILER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func writeConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
