// Package cmd implements minirustc's cobra command tree.
//
// Grounded on CWBudde-go-dws/cmd/dwscript/cmd (root.go's persistent-flag
// and version-template setup, lex.go/parse.go/compile.go's per-stage
// subcommands), adapted from DWScript's bytecode/.dwc pipeline to
// MiniRust's tokenize/parse/analyze/generateIr stages, and extended with
// --config/--json/--query/--patch per SPEC_FULL.md §6.2.
package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags; mirrors the teacher's version scheme.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Config is minirustc's on-disk configuration, loaded via --config and
// merged over these defaults.
type Config struct {
	CheckOwnership bool `yaml:"checkOwnership"`
	Optimize       bool `yaml:"optimize"`
	Color          bool `yaml:"color"`
}

var defaultConfig = Config{CheckOwnership: true, Optimize: false, Color: true}

var (
	configPath string
	jsonOutput bool
	queryPath  string
	patchOps   []string
)

var rootCmd = &cobra.Command{
	Use:   "minirustc",
	Short: "MiniRust teaching compiler",
	Long: `minirustc drives the MiniRust compiler pipeline: lexer, parser,
semantic analyzer (types + ownership/borrow checking), and a textual
LLVM-like IR generator.

Each subcommand runs the pipeline up to one stage and prints its product,
as text by default or as JSON with --json.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON instead of text")
	rootCmd.PersistentFlags().StringVar(&queryPath, "query", "", "gjson path applied to --json output")
	rootCmd.PersistentFlags().StringArrayVar(&patchOps, "patch", nil, "sjson 'path=value' pair applied to --json output before --query (repeatable)")
}

// loadConfig reads --config over defaultConfig. A missing --config flag
// keeps the defaults; a config file that fails to parse is a CLI error.
func loadConfig() (Config, error) {
	cfg := defaultConfig
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}
	return cfg, nil
}
