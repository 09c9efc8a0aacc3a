package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// CheckExpiry rejects a JWT whose exp claim has already passed. The
// signature is not verified here; the server remains the authority. Tokens
// that do not parse as JWTs (e.g. opaque service tokens) are passed
// through untouched.
func CheckExpiry(token string) error {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		log.Debug().Err(err).Msg("Token is not a parseable JWT; deferring to server")
		return nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}

	if time.Now().After(exp.Time) {
		return fmt.Errorf("%w: token expired at %s", ErrUnauthenticated, exp.Time.Format(time.RFC3339))
	}
	return nil
}
