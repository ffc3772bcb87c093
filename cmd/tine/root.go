package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/syntax"
	"github.com/tine-lang/tine/pkg/tine"
)

// parseOnly runs the parser without evaluating, used by `tine check`.
func parseOnly(source, filename string) (model.Expr, error) {
	expr, errs := syntax.NewParser(source, filename).Parse()
	if len(errs) > 0 {
		return nil, &tine.ParseErrors{Errors: errs}
	}
	return expr, nil
}

// cliFlags holds the evaluator knobs every subcommand shares, bound once
// on the root command (grounded on cue-lang-cue/cmd/cue/cmd's one
// Command-per-subcommand, shared-persistent-flags style).
type cliFlags struct {
	maxCells    int
	strictArity bool
	noTrace     bool
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           "tine",
		Short:         "tine evaluates a small pattern-matched functional language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&flags.maxCells, "max-cells", 0, "abort evaluation after this many driver cells (0 = unlimited)")
	root.PersistentFlags().BoolVar(&flags.strictArity, "strict-arity", false, "treat under-application as an error instead of currying")
	root.PersistentFlags().BoolVar(&flags.noTrace, "no-trace", false, "discard `trace` built-in output instead of writing it to stderr")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newCheckCmd(flags))
	root.AddCommand(newReplCmd(flags))
	return root
}

func (f *cliFlags) newState() *tine.State {
	opts := []tine.StateOption{tine.WithMaxCells(f.maxCells)}
	if f.strictArity {
		opts = append(opts, tine.WithStrictArity())
	}
	if f.noTrace {
		opts = append(opts, tine.WithTrace(nullWriter{}))
	}
	return tine.NewState(opts...)
}

func newRunCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "evaluate a tine source file and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			state := flags.newState()
			defer state.Close()
			result, err := state.RunWithFilename(string(src), args[0])
			if err != nil {
				return err
			}
			fmt.Println(result.String())
			return nil
		},
	}
}

func newCheckCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "parse a tine source file without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if _, err := parseOnly(string(src), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, color.GreenString("ok"))
			return nil
		},
	}
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }
