package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"NewsAnalyzer/internal/app"
	"NewsAnalyzer/internal/config"
	"NewsAnalyzer/internal/logging"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "newsanalyzer",
	Short:         "Summarize recent financial news about a company",
	Long:          "Searches recent news about a company, summarizes the top articles with a language model and combines them into one outlook.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		cfg = config.Load()
		logger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	},
}

func newApplication() (*app.Application, error) {
	return app.New(cfg, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = logging.New("info", "text")
		}
		logger.Error("newsanalyzer stopped", "error", err)
		os.Exit(1)
	}
}
