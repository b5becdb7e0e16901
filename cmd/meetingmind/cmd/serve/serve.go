package serve

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"meetingmind/internal/app"
	"meetingmind/internal/config"
)

var port string

func init() {
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port, overrides PORT")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server

- Applies pending database migrations on startup
- Serves /api/v1, /health, /metrics and /swagger
- Stops gracefully on SIGINT or SIGTERM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if port != "" {
			cfg.Server.Port = port
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, cleanup, err := app.InitializeApplication(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		defer cleanup()

		application.Logger.Info("MeetingMind starting",
			zap.String("environment", cfg.Server.Environment),
			zap.String("database", cfg.Database.Driver),
			zap.Bool("transcription", cfg.TranscriptionEnabled()),
			zap.Bool("summarization", cfg.SummarizationEnabled()),
			zap.Bool("redis", cfg.Redis.URL != ""),
		)
		return application.Run(ctx)
	},
}
