package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

var errNotDetected = errors.New("no JSON or XML document detected")

type detectOptions struct {
	contentType string
	url         string
	print       bool
}

func newDetectCommand(cli *docfmtCLI) *cobra.Command {
	opts := detectOptions{}

	cmd := &cobra.Command{
		Use:   "detect [FILE]",
		Short: "Report whether a fetched page is a JSON or XML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cli, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.contentType, "content-type", "", "Content type the page was served with")
	flags.StringVar(&opts.url, "url", "", "Address the page was fetched from")
	flags.BoolVar(&opts.print, "print", false, "Print the extracted document instead of its format")
	return cmd
}

func runDetect(cli *docfmtCLI, opts detectOptions, args []string) error {
	text, err := cli.readInput(args)
	if err != nil {
		return err
	}
	d, err := docfmt.Detect(docfmt.Page{ContentType: opts.contentType, URL: opts.url, Body: text})
	if err != nil {
		return err
	}
	if !d.Found() {
		if opts.url != "" && docfmt.LikelyJSONURL(opts.url) {
			cli.log.WithField("url", opts.url).Info("Address looks like a JSON endpoint but the body is not JSON")
		}
		return errNotDetected
	}
	if opts.print {
		return cli.writeOutput(d.Text)
	}
	_, err = fmt.Fprintln(cli.out, d.Format)
	return err
}
