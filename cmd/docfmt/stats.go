package main

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

type statsOptions struct {
	typ string
}

func newStatsCommand(cli *docfmtCLI) *cobra.Command {
	opts := statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats [FILE]",
		Short: "Count keys, bytes and lines of a document",
		Long: "Count the keys of a document, the bytes of its minified JSON form, " +
			"and the lines of its formatted form.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, cli, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.typ, "type", "t", "", "Document type (json|xml|csv|yaml)")
	return cmd
}

func runStats(cmd *cobra.Command, cli *docfmtCLI, opts statsOptions, args []string) error {
	ctx := cmd.Context()
	text, err := cli.readInput(args)
	if err != nil {
		return err
	}
	s := cli.settings.Load(ctx)
	f, err := cli.documentFormat(ctx, cmd.Flags(), opts.typ, text, s)
	if err != nil {
		return err
	}

	v, err := docfmt.Parse(f, text)
	if err != nil {
		return err
	}
	out, err := docfmt.Marshal(docfmt.JSON, v, s.Formatter.Options())
	if err != nil {
		return err
	}
	return cli.writeOutput(docfmt.Measure(v, string(out)).String())
}
