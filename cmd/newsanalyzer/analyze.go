package main

import (
	"encoding/json"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsAnalyzer/internal/presenter"
	"NewsAnalyzer/internal/usecase"
)

var (
	analyzeCompany string
	analyzeTicker  string
	analyzeJSON    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and print progress to the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, err := newApplication()
		if err != nil {
			return err
		}

		var progress usecase.Progress
		if !analyzeJSON {
			progress = presenter.NewConsole(cmd.OutOrStdout(), cfg.Pipeline.MaxArticles).Handle
		}

		report, err := application.Analyze(ctx, analyzeCompany, analyzeTicker, progress)
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(presenter.NewReportView(report))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCompany, "company", "c", "", "company name to analyze")
	analyzeCmd.Flags().StringVarP(&analyzeTicker, "ticker", "t", "", "optional stock ticker")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the report as JSON instead of progress lines")
	_ = analyzeCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(analyzeCmd)
}
