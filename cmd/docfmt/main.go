package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli := newDocfmtCLI(stdin, stdout, stderr)
	defer cli.close()

	cmd := newRootCommand(cli)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(stderr, statusLine(err))
		return 1
	}
	return 0
}

func newRootCommand(cli *docfmtCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "docfmt COMMAND",
		Short:         "Format, validate and convert JSON, XML, CSV and YAML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.opts.configPath, "config", "", "Settings database (default $XDG_CONFIG_HOME/docfmt/settings.db)")
	flags.StringVarP(&cli.opts.output, "output", "o", "", "Write the result to a file instead of stdout")
	flags.StringVar(&cli.opts.logLevel, "log-level", "warn", `Set the logging level ("debug"|"info"|"warn"|"error")`)

	cmd.AddCommand(
		newConvertCommand(cli),
		newFormatCommand(cli),
		newMinifyCommand(cli),
		newValidateCommand(cli),
		newHighlightCommand(cli),
		newDetectCommand(cli),
		newStatsCommand(cli),
		newConfigCommand(cli),
	)
	return cmd
}

// statusLine renders err the way the status bar shows it. Parse errors
// carry the offending line and a caret.
func statusLine(err error) string {
	var pe *docfmt.ParseError
	if errors.As(err, &pe) {
		msg := pe.Error()
		msg = strings.ToUpper(msg[:1]) + msg[1:]
		if pe.Snippet != "" {
			msg += "\n" + pe.Snippet
		}
		return msg
	}
	return "Error: " + err.Error()
}
