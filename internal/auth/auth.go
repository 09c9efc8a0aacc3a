// Package auth supplies bearer tokens for the reelcut API. Every API
// operation requires a valid token; components receive a TokenProvider at
// construction rather than reading ambient session state.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrUnauthenticated is returned when no usable token can be found.
var ErrUnauthenticated = errors.New("unauthenticated: no valid API token")

// TokenProvider returns the current bearer token, or an error wrapping
// ErrUnauthenticated when the caller must log in again.
type TokenProvider func() (string, error)

// EnvToken is the environment variable checked before the token file.
const EnvToken = "REELCUT_TOKEN"

// FileProvider builds a TokenProvider that retrieves the token from
// available sources. Priority order:
//  1. REELCUT_TOKEN environment variable
//  2. plain-text token file at the given path (written by `reelcut login`)
//
// Expired tokens are rejected locally before any request is issued.
func FileProvider(path string) TokenProvider {
	return func() (string, error) {
		if tok := os.Getenv(EnvToken); tok != "" {
			log.Debug().Msg("Using API token from environment variable")
			return checkToken(tok)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: set %s or run `reelcut login`", ErrUnauthenticated, EnvToken)
			}
			return "", fmt.Errorf("read token file: %w", err)
		}

		tok := strings.TrimSpace(string(raw))
		if tok == "" {
			return "", fmt.Errorf("%w: token file %s is empty", ErrUnauthenticated, path)
		}
		log.Debug().Str("file", path).Msg("Using API token from token file")
		return checkToken(tok)
	}
}

// StaticProvider returns the same token on every call. Used by tests and
// by commands that receive an explicit --token flag.
func StaticProvider(token string) TokenProvider {
	return func() (string, error) {
		if token == "" {
			return "", ErrUnauthenticated
		}
		return token, nil
	}
}

// SaveToken writes the token file with owner-only permissions, creating
// the parent directory if needed.
func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func checkToken(tok string) (string, error) {
	if err := CheckExpiry(tok); err != nil {
		return "", err
	}
	return tok, nil
}
