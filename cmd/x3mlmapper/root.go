package main

import (
	"github.com/spf13/cobra"
)

const flagConfig = "config"

// New returns the root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "x3mlmapper [sub-command]",
		Short: "Transform XML records into RDF with X3ML mapping definitions",
		Long: `x3mlmapper runs X3ML mapping definitions against XML source documents
and writes the resulting RDF graph. It serves mapping requests over HTTP
or transforms local files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().String(flagConfig, "", "path to a YAML configuration file")
	RegisterLoggingFlags(cmd.PersistentFlags())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTransformCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
