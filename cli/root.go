package cli

import (
	"os"

	"tweet-server/confs"
	"tweet-server/logger"

	"github.com/spf13/cobra"
)

var envFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tweetgen",
	Short: "AI tweet generator backend",
	Long: `Generates tweets through an external inference agent and keeps a
history of them. Usage:

	tweetgen serve
	tweetgen migrate
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := confs.LoadEnvFile(envFile); err != nil {
			return err
		}
		logger.SetupDefault(os.Stdout, os.Getenv("LOG_LEVEL"))
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "config", "", "env file to load (defaults to ./.env when present)")
}
