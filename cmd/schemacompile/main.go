// Command schemacompile drives the schema compiler facade from the shell:
// compile a schema to a GBNF grammar, render a prompt template or hint
// list, or validate a JSON witness against it.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/normanking/gbnfschema/internal/examples"
	"github.com/normanking/gbnfschema/internal/logging"
	"github.com/normanking/gbnfschema/internal/schemaconfig"
	"github.com/normanking/gbnfschema/internal/telemetry"
	"github.com/normanking/gbnfschema/pkg/schemacompiler"
)

var (
	verbose     bool
	examplePath []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "schemacompile",
		Short: "Compile declarative schemas into GBNF grammars, templates, hints, and validators",
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringSliceVar(&examplePath, "examples-dir", nil, "override example schema search paths")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.EnableVerbose()
			telemetry.SetLevel(zerolog.DebugLevel)
		}
	}

	rootCmd.AddCommand(examplesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func examplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Work with the built-in worked example schemas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the available example schema names",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			registry, err := examples.Load(cfg.Examples.SearchPaths)
			if err != nil {
				return err
			}
			for _, name := range examples.Names(registry) {
				fmt.Println(name, "-", registry[name].Description)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "run <name> <grammar|template|hints|validate> [json]",
		Short: "Run one facade operation against a named example schema",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, op := args[0], args[1]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			registry, err := examples.Load(cfg.Examples.SearchPaths)
			if err != nil {
				return err
			}
			ex, ok := registry[name]
			if !ok {
				return fmt.Errorf("unknown example schema %q", name)
			}

			facade := schemacompiler.NewWithConfig(ex.Root, cfg)

			switch op {
			case "grammar":
				out, err := facade.CompileGrammar()
				if err != nil {
					return err
				}
				fmt.Print(out)
			case "template":
				fmt.Println(facade.RenderTemplate())
			case "hints":
				fmt.Println(facade.RenderHints())
			case "validate":
				if len(args) != 3 {
					return fmt.Errorf("validate requires a JSON argument")
				}
				ok, errs := facade.Validate(args[2])
				fmt.Println("valid:", ok)
				for _, e := range errs {
					fmt.Println(" -", e)
				}
			default:
				return fmt.Errorf("unknown operation %q (want grammar|template|hints|validate)", op)
			}
			return nil
		},
	})

	return cmd
}

// loadConfig reads the persisted compiler configuration, overriding its
// example search paths with --examples-dir when given.
func loadConfig() (*schemaconfig.Config, error) {
	cfg, err := schemaconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(examplePath) > 0 {
		cfg.Examples.SearchPaths = examplePath
	}
	return cfg, nil
}
