package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clipworks/reelcut/internal/logging"
)

// rootCmd is the main Cobra command for the reelcut CLI.
var rootCmd = &cobra.Command{
	Use:   "reelcut",
	Short: "Terminal client for the reelcut video auto-editing service",
	Long: `reelcut is the terminal client for the reelcut auto-editing service.
Upload video or audio sources, track processing, review the AI's cut
decisions segment by segment, and download the generated artifacts.

Examples:
  reelcut login
  reelcut upload talk.mp4 --name "Conference talk" --duration 1830
  reelcut projects list
  reelcut projects show a1b2c3 --watch
  reelcut review a1b2c3
  reelcut report a1b2c3 --save
  reelcut download a1b2c3 fcpxml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
