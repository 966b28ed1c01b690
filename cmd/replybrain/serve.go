package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/introflow/replybrain/internal/api"
	"github.com/introflow/replybrain/internal/config"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine over HTTP for the dashboard",
		Long: `Run the stateless HTTP surface: POST /v1/classify, /v1/compose and
/v1/interpret, plus GET /v1/patterns for the compiled pattern tables.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8714)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	return api.NewServer(eng, cfg).ListenAndServe(cmd.Context())
}
