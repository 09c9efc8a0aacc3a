package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipworks/reelcut/internal/auth"
	"github.com/clipworks/reelcut/internal/cli"
	"github.com/clipworks/reelcut/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Store an API token for subsequent commands",
	Long: `Stores a bearer token in the reelcut data directory. Obtain the token
from the web dashboard's account settings. The REELCUT_TOKEN environment
variable, when set, takes priority over the stored token.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	token := ""
	if len(args) == 1 {
		token = args[0]
	}
	if token == "" {
		token = cli.PromptLine("API token", "")
	}
	if token == "" {
		log.Fatal().Msg("no token provided")
	}

	if err := auth.CheckExpiry(token); err != nil {
		log.Fatal().Err(err).Msg("token is not usable")
	}

	if err := auth.SaveToken(cfg.TokenPath(), token); err != nil {
		log.Fatal().Err(err).Msg("failed to store token")
	}

	log.Info().Str("file", cfg.TokenPath()).Msg("Token stored")
}
