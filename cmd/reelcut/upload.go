package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipworks/reelcut/internal/api"
	"github.com/clipworks/reelcut/internal/cli"
	"github.com/clipworks/reelcut/internal/upload"
)

var (
	nameFlag     string
	cutTypeFlag  string
	languageFlag string
	durationFlag float64
	contextFlag  string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a source file and create a project",
	Long: `Uploads a video or audio file through the chunked multipart protocol
and registers it as a new project. Parts are uploaded three at a time;
a failed part aborts the whole upload.

Examples:
  reelcut upload talk.mp4 --name "Conference talk" --duration 1830
  reelcut upload interview.mov --cut-type podcast --language en`,
	Args: cobra.ExactArgs(1),
	Run:  runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Project name (defaults to the filename)")
	uploadCmd.Flags().StringVar(&cutTypeFlag, "cut-type", "talk", "Cut style: talk, podcast, lecture")
	uploadCmd.Flags().StringVarP(&languageFlag, "language", "l", "ko", "Source language code")
	uploadCmd.Flags().Float64VarP(&durationFlag, "duration", "d", 0, "Source duration in seconds")
	uploadCmd.Flags().StringVar(&contextFlag, "context", "", "Transcription context hint")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()
	ctx := context.Background()

	path, size := cli.ValidateAndResolveFile(args[0])
	filename := filepath.Base(path)
	contentType := cli.ContentTypeFor(path)

	name := nameFlag
	if name == "" {
		name = filename
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to open file")
	}
	defer f.Close()

	log.Info().
		Str("file", filename).
		Str("contentType", contentType).
		Str("size", cli.FormatBytes(size)).
		Msg("Starting upload")

	orch := upload.NewOrchestrator(client)
	opts := upload.DefaultOptions()
	opts.OnProgress = func(percent float64) {
		fmt.Printf("\r  uploading... %3.0f%%", percent)
	}

	key, err := orch.Upload(ctx, f, size, filename, contentType, opts)
	if err != nil {
		fmt.Println()
		log.Fatal().Err(err).Msg("upload failed")
	}
	fmt.Printf("\r  uploading... done   \n")

	settings := map[string]any{}
	if contextFlag != "" {
		settings["transcription_context"] = contextFlag
	}

	project, err := client.CreateProject(ctx, api.CreateProjectRequest{
		Name:                  name,
		CutType:               cutTypeFlag,
		Language:              languageFlag,
		SourceKey:             key,
		SourceFilename:        filename,
		SourceDurationSeconds: durationFlag,
		SourceSizeBytes:       size,
		Settings:              settings,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("project creation failed")
	}

	log.Info().Str("projectId", project.ID).Str("status", project.Status).Msg("Project created")
	fmt.Printf("Project %s created. Track it with `reelcut projects show %s --watch`.\n", project.ID, project.ID)
}
