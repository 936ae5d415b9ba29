package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

type formatOptions struct {
	typ      string
	indent   int
	sortKeys bool
	stats    bool
}

func newFormatCommand(cli *docfmtCLI) *cobra.Command {
	opts := formatOptions{}

	cmd := &cobra.Command{
		Use:   "format [FILE]",
		Short: "Pretty-print a JSON or XML document",
		Long: "Pretty-print a JSON or XML document.\n\n" +
			"Indentation and key sorting default to the stored settings.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, cli, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.typ, "type", "t", "", "Document type (json|xml)")
	flags.IntVar(&opts.indent, "indent", 2, "Spaces per indentation level for JSON, 0 to minify")
	flags.BoolVar(&opts.sortKeys, "sort-keys", false, "Sort JSON object keys")
	flags.BoolVar(&opts.stats, "stats", false, "Print document statistics to stderr")
	return cmd
}

func runFormat(cmd *cobra.Command, cli *docfmtCLI, opts formatOptions, args []string) error {
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

	fopts := s.Formatter.Options()
	if cmd.Flags().Changed("indent") {
		fopts.Indent = opts.indent
	}
	if cmd.Flags().Changed("sort-keys") {
		fopts.SortKeys = opts.sortKeys
	}
	out, err := pretty(f, text, fopts)
	if err != nil {
		return err
	}
	if opts.stats {
		v, err := docfmt.Parse(f, text)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.err, docfmt.Measure(v, out))
	}
	return cli.writeOutput(out)
}

type minifyOptions struct {
	typ string
}

func newMinifyCommand(cli *docfmtCLI) *cobra.Command {
	opts := minifyOptions{}

	cmd := &cobra.Command{
		Use:   "minify [FILE]",
		Short: "Remove insignificant whitespace from a JSON or XML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMinify(cmd, cli, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.typ, "type", "t", "", "Document type (json|xml)")
	return cmd
}

func runMinify(cmd *cobra.Command, cli *docfmtCLI, opts minifyOptions, args []string) error {
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

	var out string
	switch f {
	case docfmt.JSON:
		out, err = docfmt.MinifyJSON(text)
	case docfmt.XML:
		out, err = docfmt.MinifyXML(text)
	default:
		err = fmt.Errorf("%w: %s cannot be minified", docfmt.ErrUnsupportedFormat, f.Title())
	}
	if err != nil {
		return err
	}
	return cli.writeOutput(out)
}
