package main

import (
	"fmt"
	"runtime/debug"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// BuildVersion is set at link time with -ldflags "-X main.BuildVersion=...".
var BuildVersion = "n/a"

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of x3mlmapper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok {
				return fmt.Errorf("no build info available")
			}
			version := info.Main.Version
			if BuildVersion != "n/a" {
				version = BuildVersion
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"version":   version,
					"goVersion": info.GoVersion,
				})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "x3mlmapper %s (%s)\n", version, info.GoVersion)
			return err
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().Bool("json", false, "print the version as JSON")
	return cmd
}
