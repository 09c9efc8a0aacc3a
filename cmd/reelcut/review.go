package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipworks/reelcut/internal/cli"
	"github.com/clipworks/reelcut/internal/playback"
	"github.com/clipworks/reelcut/internal/review"
	"github.com/clipworks/reelcut/internal/tui"
)

var reviewCmd = &cobra.Command{
	Use:   "review <project-id>",
	Short: "Review the AI's cut decisions segment by segment",
	Long: `Opens the interactive review screen for a completed project. The AI's
segment list is merged with your previously saved evaluation, if any.
Override decisions per segment, then save; nothing is persisted until
you do.`,
	Args: cobra.ExactArgs(1),
	Run:  runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()
	projectID := args[0]
	ctx := context.Background()

	segResp, err := client.GetSegments(ctx, projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load segments")
	}

	vidResp, err := client.GetVideoURL(ctx, projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load video info")
	}

	saved, err := client.GetEvaluation(ctx, projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load saved evaluation")
	}

	detail, err := client.GetProject(ctx, projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load project")
	}

	durationMS := vidResp.DurationMS
	if durationMS == 0 {
		durationMS = segResp.SourceDurationMS
	}

	store := review.Merge(projectID, segResp.Segments, saved, client)
	clock := playback.NewClock(durationMS)
	model := tui.New(detail.Name, store, clock)

	// The TUI owns the terminal; structured logs would corrupt it.
	zerolog.SetGlobalLevel(zerolog.Disabled)

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Fatal().Err(err).Msg("review screen failed")
	}
}
