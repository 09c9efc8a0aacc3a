package cli

import (
	"github.com/rs/zerolog/log"

	"github.com/clipworks/reelcut/internal/api"
	"github.com/clipworks/reelcut/internal/auth"
	"github.com/clipworks/reelcut/internal/config"
)

// InitAPIClient loads configuration and builds an authenticated API
// client. Exits fatally on configuration failure; authentication itself
// is checked lazily per request by the token provider.
func InitAPIClient() (*config.Config, *api.Client) {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	tokens := auth.FileProvider(cfg.TokenPath())
	client := api.NewClient(cfg.BaseURL(), tokens)

	log.Debug().Str("baseUrl", cfg.BaseURL()).Msg("API client initialized")
	return cfg, client
}
