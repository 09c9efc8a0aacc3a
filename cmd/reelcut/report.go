package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipworks/reelcut/internal/cli"
	"github.com/clipworks/reelcut/internal/config"
	"github.com/clipworks/reelcut/internal/reports"
	"github.com/clipworks/reelcut/internal/review"
)

var (
	saveReportFlag bool
	historyLimit   int
)

var reportCmd = &cobra.Command{
	Use:   "report <project-id>",
	Short: "Compare AI decisions against your evaluation",
	Long: `Builds the agreement report for a project: confusion matrix, accuracy,
precision/recall/F1, per-reason disagreement breakdowns, and the full
disagreement list. Segments you have not reviewed count as implicit
agreement with the AI.

With --save the report is archived locally so agreement can be compared
across review sessions; see "report history".`,
	Args: cobra.ExactArgs(1),
	Run:  runReport,
}

var reportHistoryCmd = &cobra.Command{
	Use:   "history <project-id>",
	Short: "List archived reports for a project",
	Args:  cobra.ExactArgs(1),
	Run:   runReportHistory,
}

func init() {
	reportCmd.Flags().BoolVar(&saveReportFlag, "save", false, "Archive the report locally")
	reportHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to list")
	reportCmd.AddCommand(reportHistoryCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	cfg, client := cli.InitAPIClient()
	projectID := args[0]
	ctx := context.Background()

	saved, err := client.GetEvaluation(ctx, projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load evaluation")
	}
	if saved == nil {
		log.Fatal().Str("projectId", projectID).Msg("no saved evaluation; run `reelcut review` first")
	}

	report := review.BuildReport(projectID, saved.Segments)
	fmt.Print(report.Markdown())

	if saveReportFlag {
		store, err := reports.Open(cfg.ReportsDBPath())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open report archive")
		}
		defer store.Close()

		id, err := store.Append(report)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to archive report")
		}
		log.Info().Int64("reportId", id).Msg("Report archived")
	}
}

func runReportHistory(cmd *cobra.Command, args []string) {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := reports.Open(cfg.ReportsDBPath())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open report archive")
	}
	defer store.Close()

	entries, err := store.History(args[0], historyLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read report history")
	}
	if len(entries) == 0 {
		fmt.Println("No archived reports. Run `reelcut report <id> --save` first.")
		return
	}

	fmt.Printf("%-6s  %-20s  %-9s  %-9s  %s\n", "ID", "CREATED", "SEGMENTS", "REVIEWED", "AGREEMENT")
	for _, e := range entries {
		fmt.Printf("%-6d  %-20s  %-9d  %-9d  %.1f%%\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.TotalSegments, e.HumanReviewed, e.AgreementRate*100)
	}
}
