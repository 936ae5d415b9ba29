package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

type highlightOptions struct {
	typ    string
	markup string
	theme  string
	tree   bool
	css    bool
}

func newHighlightCommand(cli *docfmtCLI) *cobra.Command {
	opts := highlightOptions{}

	cmd := &cobra.Command{
		Use:   "highlight [FILE]",
		Short: "Format a JSON or XML document with syntax highlighting",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, cli, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.typ, "type", "t", "", "Document type (json|xml)")
	flags.StringVar(&opts.markup, "markup", "ansi", "Markup to emit (ansi|html)")
	flags.StringVar(&opts.theme, "theme", "", "Color theme (light|dark), defaults to the stored theme")
	flags.BoolVar(&opts.tree, "tree", false, "Render the parsed document as a JSON tree")
	flags.BoolVar(&opts.css, "css", false, "Prepend a <style> element for the theme (html markup only)")
	return cmd
}

func runHighlight(cmd *cobra.Command, cli *docfmtCLI, opts highlightOptions, args []string) error {
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

	theme := s.Extension.Theme
	if cmd.Flags().Changed("theme") {
		if theme, err = docfmt.ParseTheme(opts.theme); err != nil {
			return err
		}
	}
	var m docfmt.Markup
	switch opts.markup {
	case "ansi":
		m = docfmt.NewColorMarkup(theme)
	case "html":
		m = docfmt.HTMLMarkup{}
	default:
		return fmt.Errorf("unknown markup %q", opts.markup)
	}

	var out string
	if opts.tree {
		v, err := docfmt.Parse(f, text)
		if err != nil {
			return err
		}
		out = docfmt.Render(v, m)
	} else {
		formatted, err := pretty(f, text, s.Formatter.Options())
		if err != nil {
			return err
		}
		if out, err = docfmt.Highlight(formatted, f, m); err != nil {
			return err
		}
	}
	if opts.css && opts.markup == "html" {
		out = "<style>\n" + docfmt.Stylesheet(theme) + "</style>\n" + out
	}
	return cli.writeOutput(out)
}
