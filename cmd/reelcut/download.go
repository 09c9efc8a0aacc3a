package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipworks/reelcut/internal/cli"
)

var outputFlag string

var downloadCmd = &cobra.Command{
	Use:   "download <project-id> <file-type>",
	Short: "Download a result artifact (fcpxml, srt, preview, report)",
	Args:  cobra.ExactArgs(2),
	Run:   runDownload,
}

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Show the account's processing credit balance",
	Run:   runCredits,
}

func init() {
	downloadCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (defaults to the server-provided filename)")
	rootCmd.AddCommand(downloadCmd, creditsCmd)
}

func runDownload(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()
	ctx := context.Background()

	resp, err := client.GetDownload(ctx, args[0], args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get download URL")
	}

	out := outputFlag
	if out == "" {
		out = resp.Filename
	}

	httpResp, err := http.Get(resp.DownloadURL)
	if err != nil {
		log.Fatal().Err(err).Msg("download request failed")
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		log.Fatal().Int("status", httpResp.StatusCode).Msg("download failed")
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatal().Err(err).Str("path", out).Msg("failed to create output file")
	}
	defer f.Close()

	n, err := io.Copy(f, httpResp.Body)
	if err != nil {
		log.Fatal().Err(err).Msg("download interrupted")
	}

	log.Info().Str("path", out).Str("size", cli.FormatBytes(n)).Msg("Downloaded")
}

func runCredits(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()

	balance, err := client.GetCredits(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get credit balance")
	}

	fmt.Printf("Balance    %.0fs\n", balance.BalanceSeconds)
	fmt.Printf("Held       %.0fs\n", balance.HeldSeconds)
	fmt.Printf("Available  %.0fs\n", balance.AvailableSeconds)
}
