package main

import (
	"github.com/spf13/cobra"

	"dirsize/internal/config"
	"dirsize/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg *config.Config

	logger = logging.GetLogger()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dirsize",
	Short: "Rebuild a directory tree from a shell transcript and query its sizes",
	Long: `dirsize replays a transcript of "$ cd" and "$ ls" commands, together with
the listing lines they printed, into a directory tree. Every directory's
aggregate size is computed once, then queried.

The transcript is read from the path given as the first argument, or from
standard input when the path is "-".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger.SetLevel(cfg.LogLevel())
		if verbose {
			logger.SetLevel(logging.LevelDebug)
		}
		logger.Debug("Using config %q", configPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(sumCmd, freeCmd, listCmd, reportCmd, mountCmd)
}
