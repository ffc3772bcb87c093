package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newReplCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "read tine expressions from stdin and evaluate them one at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(os.Stdin, os.Stdout, flags)
		},
	}
}

// runRepl evaluates one line at a time, each in its own top-level Run over
// a shared State so bindings from earlier lines are not retained (spec.md's
// evaluator has no top-level statement form, only `let ... in ...`
// expressions) but built-ins and any Register-ed natives persist.
//
// Interactivity (the colored ">" prompt) is only shown when stdin is a real
// terminal, checked via term.IsTerminal — piped/scripted input gets plain,
// prompt-free output instead.
func runRepl(in io.Reader, out io.Writer, flags *cliFlags) error {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	state := flags.newState()
	defer state.Close()

	prompt := color.New(color.FgCyan).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, prompt("tine> "))
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		result, err := state.Run(line)
		if err != nil {
			fmt.Fprintln(out, errColor(err.Error()))
			continue
		}
		fmt.Fprintln(out, result.String())
	}
	return scanner.Err()
}
