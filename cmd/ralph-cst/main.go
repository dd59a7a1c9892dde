package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/raymyers/ralph-cst/pkg/config"
	"github.com/raymyers/ralph-cst/pkg/cst"
	"github.com/raymyers/ralph-cst/pkg/diag"
	"github.com/raymyers/ralph-cst/pkg/lexer"
	"github.com/raymyers/ralph-cst/pkg/logging"
	"github.com/raymyers/ralph-cst/pkg/parser"
	"github.com/raymyers/ralph-cst/pkg/token"
)

var version = "0.1.0"

// Input and debug flags
var (
	tokensInput bool // --tokens: input is a token dump
	dTokens     bool // -dtokens: dump tokens and stop
	noColor     bool
	configPath  string
)

// Flags bound into config; their values are read back through config.Load
var (
	modeFlag     string
	formatFlag   string
	indentFlag   int
	colorFlag    bool
	logLevelFlag string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// singleDashFlags lists flags that also accept the single-dash spelling
var singleDashFlags = []string{"dtokens"}

// normalizeFlags converts single-dash debug flags like -dtokens to --dtokens
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		result[i] = arg
		for _, name := range singleDashFlags {
			if arg == "-"+name {
				result[i] = "--" + name
				break
			}
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ralph-cst [file]",
		Short: "ralph-cst parses a C subset into a concrete syntax tree",
		Long: `ralph-cst is a recursive descent parser for a small C subset:
structs, functions with typed parameters, if/for/return, declarations
and C expressions. It reads C source (or a token dump with --tokens)
and prints the concrete syntax tree.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}

			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				fmt.Fprintf(errOut, "ralph-cst: %v\n", err)
				return err
			}
			if tokensInput {
				cfg.Input.Mode = config.ModeTokens
			}
			if noColor {
				cfg.Output.Color = false
			}

			log, err := logging.New(cfg.Log.Level, errOut)
			if err != nil {
				fmt.Fprintf(errOut, "ralph-cst: %v\n", err)
				return err
			}
			defer log.Sync()

			// An explicit --color forces color on non-terminal output
			diagOpts := diag.Options{
				NoColor:    !cfg.Output.Color,
				ForceColor: cfg.Output.Color && cmd.Flags().Changed("color"),
			}
			return doParse(args[0], cfg, diagOpts, log, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&tokensInput, "tokens", false, "Input is a token dump (Line N : CATEGORY -> lexeme)")
	rootCmd.Flags().BoolVar(&dTokens, "dtokens", false, "Dump tokens in token-dump format and stop")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored diagnostics")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file (default ./ralph-cst.yaml)")

	rootCmd.Flags().StringVar(&modeFlag, "mode", config.ModeSource, "Input mode: source or tokens")
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", config.FormatText, "Output format: text, yaml or json")
	rootCmd.Flags().IntVar(&indentFlag, "indent", 2, "Spaces per tree level in text output")
	rootCmd.Flags().BoolVar(&colorFlag, "color", true, "Colored diagnostics; passing --color forces color when stderr is not a terminal")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "off", "Log level: off, debug, info, warn, error")

	return rootCmd
}

// readTokens loads the token sequence for filename according to the
// input mode. The returned source text is empty for token dumps.
func readTokens(filename string, cfg *config.Config, errOut io.Writer) ([]token.Token, string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "ralph-cst: error reading %s: %v\n", filename, err)
		return nil, "", err
	}

	if cfg.Input.Mode == config.ModeTokens {
		toks, err := token.ReadTokens(strings.NewReader(string(content)))
		if err != nil {
			fmt.Fprintf(errOut, "ralph-cst: %s: %v\n", filename, err)
			return nil, "", err
		}
		return toks, "", nil
	}

	toks, err := lexer.New(string(content)).Tokenize()
	if err != nil {
		fmt.Fprintf(errOut, "ralph-cst: %s: %v\n", filename, err)
		return nil, "", err
	}
	return toks, string(content), nil
}

// doParse reads, parses and prints the tree for filename
func doParse(filename string, cfg *config.Config, diagOpts diag.Options, log *zap.Logger, out, errOut io.Writer) error {
	start := time.Now()
	toks, source, err := readTokens(filename, cfg, errOut)
	if err != nil {
		return err
	}
	log.Info("tokenized", zap.String("file", filename), zap.String("mode", cfg.Input.Mode), zap.Int("tokens", len(toks)))

	// Handle -dtokens: dump the token sequence
	if dTokens {
		return token.WriteTokens(out, toks)
	}

	p := parser.New(token.Filter(toks), parser.WithLogger(log), parser.WithFile(filename))
	program, err := p.ParseProgram()
	if err != nil {
		diagOpts.Source = source
		fmt.Fprint(errOut, diag.Format(err, diagOpts))
		return err
	}
	log.Info("parsed",
		zap.String("file", filename),
		zap.Int("decls", len(program.Decls)),
		zap.Int("nodes", cst.Count(program)),
		zap.Duration("elapsed", time.Since(start)))

	return printTree(program, cfg, out)
}

func printTree(program *cst.Program, cfg *config.Config, out io.Writer) error {
	switch cfg.Output.Format {
	case config.FormatYAML:
		return cst.EncodeYAML(out, program)
	case config.FormatJSON:
		return cst.EncodeJSON(out, program)
	}
	cst.NewPrinter(out, cst.WithIndent(cfg.Output.Indent)).PrintProgram(program)
	return nil
}
