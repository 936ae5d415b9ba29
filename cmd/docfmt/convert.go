package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

type convertOptions struct {
	pair string
	args []string
}

func newConvertCommand(cli *docfmtCLI) *cobra.Command {
	opts := convertOptions{}

	names := make([]string, 0, len(docfmt.Pairs()))
	for _, p := range docfmt.Pairs() {
		names = append(names, p.String())
	}

	cmd := &cobra.Command{
		Use:   "convert PAIR [FILE]",
		Short: "Convert a document to another format",
		Long:  "Convert a document to another format.\n\nSupported pairs: " + strings.Join(names, ", "),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pair = args[0]
			opts.args = args[1:]
			return runConvert(cli, opts)
		},
	}
	return cmd
}

func runConvert(cli *docfmtCLI, opts convertOptions) error {
	pair, err := docfmt.ParsePair(opts.pair)
	if err != nil {
		return err
	}
	text, err := cli.readInput(opts.args)
	if err != nil {
		return err
	}
	out, err := docfmt.Convert(text, pair)
	if err != nil {
		return err
	}
	return cli.writeOutput(out)
}
