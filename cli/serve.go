package cli

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"tweet-server/app"
	"tweet-server/db"
	"tweet-server/server"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the tweet generator HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := app.BuildContainer()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return container.Invoke(func(srv *server.Server, database db.Database) error {
			defer func() {
				if err := database.Close(); err != nil {
					slog.Warn("closing database", slog.String("error", err.Error()))
				}
			}()
			if err := srv.Start(ctx); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
