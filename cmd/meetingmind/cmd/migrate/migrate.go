package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"meetingmind/internal/app"
	"meetingmind/internal/app/logging"
	"meetingmind/internal/app/repository/migrate"
	"meetingmind/internal/config"
)

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		logger, err := logging.NewLogger(!cfg.IsProduction())
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := app.OpenStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		applied, err := migrate.Up(cmd.Context(), store.DB(), store.Dialect(), logger)
		if err != nil {
			return err
		}
		current, err := migrate.CurrentVersion(cmd.Context(), store.DB())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s), schema version %d\n", applied, current)
		return nil
	},
}
