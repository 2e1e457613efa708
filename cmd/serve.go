package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			a.Config.Server.Addr = addr
		}
		if err := a.SeedCatalog(ctx); err != nil {
			return err
		}
		a.Logger.Info("starting server",
			zap.String("addr", a.Config.Server.Addr),
			zap.String("assessment_policy", a.Config.Assessment.Policy),
			zap.Bool("llm", a.HasLLM))

		return a.Server().Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
