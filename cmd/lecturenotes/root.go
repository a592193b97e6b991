package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lecturenotes",
	Short: "Turn recorded lectures into structured study notes",
	Long: `lecturenotes transcribes a lecture recording, extracts its key concepts
and generates study notes organised into sections with theory and examples.

Run it as a web app (serve), on a single file (process), or as a folder
watcher that processes every recording dropped into the inbox (watch).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml if present)",
	)

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file, falling back to defaults plus
// environment overrides when none is given and ./config.yaml is absent.
func loadConfig() (*config.Config, logger.Logger, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format), nil
}
