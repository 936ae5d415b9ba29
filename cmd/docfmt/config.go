package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt/settings"
)

func newConfigCommand(cli *docfmtCLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change stored settings",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(
		newConfigShowCommand(cli),
		newConfigSetCommand(cli),
	)
	return cmd
}

func newConfigShowCommand(cli *docfmtCLI) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := cli.settings.Load(cmd.Context())
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			return cli.writeOutput(string(b))
		},
	}
}

type configSetOptions struct {
	name  string
	value string
}

func newConfigSetCommand(cli *docfmtCLI) *cobra.Command {
	opts := configSetOptions{}

	return &cobra.Command{
		Use:   "set NAME VALUE",
		Short: "Change one setting",
		Long:  "Change one setting.\n\nNames: " + strings.Join(settings.Fields(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.name = args[0]
			opts.value = args[1]
			return runConfigSet(cmd, cli, opts)
		},
	}
}

func runConfigSet(cmd *cobra.Command, cli *docfmtCLI, opts configSetOptions) error {
	ctx := cmd.Context()
	s := cli.settings.Load(ctx)
	if err := s.Set(opts.name, opts.value); err != nil {
		return err
	}
	return cli.settings.Save(ctx, s)
}
