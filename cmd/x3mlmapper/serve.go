package main

import (
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/x3mlmapper/server"
	"github.com/geoknoesis/x3mlmapper/x3ml"
)

const (
	flagListen = "listen"
	flagPath   = "path"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve mapping requests over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String(flagListen, "", "listen address, overriding server.listen")
	cmd.Flags().String(flagPath, "", "route of the mapping endpoint, overriding server.path")
	cmd.Flags().Bool("format-content-type", false, "declare the media type of the output format instead of text/html")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	log, err := GetBaseLogger(cmd)
	if err != nil {
		return err
	}
	cfg, err := server.LoadConfig(cmd.Flag(flagConfig).Value.String())
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString(flagListen); v != "" {
		cfg.Server.Listen = v
	}
	if v, _ := cmd.Flags().GetString(flagPath); v != "" {
		cfg.Server.Path = v
	}
	if cmd.Flags().Changed("format-content-type") {
		cfg.Server.FormatContentType, _ = cmd.Flags().GetBool("format-content-type")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	colored := cmd.Flag(flagLogFormat).Value.String() == "text" && !color.NoColor
	s := server.New(cfg, x3ml.NewFactory(), x3ml.NewPolicyFactory(), log,
		server.WithStageLogger(server.NewStageLogger(log, colored)))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}
