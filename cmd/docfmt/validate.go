package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

type validateOptions struct {
	typ string
}

func newValidateCommand(cli *docfmtCLI) *cobra.Command {
	opts := validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check that a document is well-formed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, cli, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.typ, "type", "t", "", "Document type (json|xml|csv|yaml)")
	return cmd
}

func runValidate(cmd *cobra.Command, cli *docfmtCLI, opts validateOptions, args []string) error {
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

	v, err := docfmt.Validate(f, text)
	if err != nil {
		return err
	}
	if !v.Valid {
		if v.Err != nil {
			return v.Err
		}
		return errors.New(v.Message)
	}
	_, err = fmt.Fprintf(cli.out, "Valid %s\n", f.Title())
	return err
}
