package cli

import (
	"fmt"
	"log/slog"

	"tweet-server/confs"
	"tweet-server/db"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users and tweets tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := confs.LoadConfig()

		database, err := db.Connect(cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			_ = database.Close()
		}()

		if err := db.Migrate(database); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
		slog.Info("migrations applied", slog.String("driver", cfg.Database.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
