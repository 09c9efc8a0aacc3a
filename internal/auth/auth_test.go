package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestFileProviderPrefersEnvironment(t *testing.T) {
	t.Setenv(EnvToken, "env-token")

	tok, err := FileProvider(filepath.Join(t.TempDir(), "missing"))()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "env-token" {
		t.Errorf("token = %q, want env-token", tok)
	}
}

func TestFileProviderReadsTokenFile(t *testing.T) {
	t.Setenv(EnvToken, "")
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("file-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tok, err := FileProvider(path)()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "file-token" {
		t.Errorf("token = %q, want file-token (trimmed)", tok)
	}
}

func TestFileProviderMissingFileIsUnauthenticated(t *testing.T) {
	t.Setenv(EnvToken, "")

	_, err := FileProvider(filepath.Join(t.TempDir(), "missing"))()
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestFileProviderEmptyFileIsUnauthenticated(t *testing.T) {
	t.Setenv(EnvToken, "")
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := FileProvider(path)()
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCheckExpiry(t *testing.T) {
	if err := CheckExpiry(signedToken(t, time.Now().Add(time.Hour))); err != nil {
		t.Errorf("valid token rejected: %v", err)
	}

	err := CheckExpiry(signedToken(t, time.Now().Add(-time.Hour)))
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expired token must map to ErrUnauthenticated, got %v", err)
	}

	// Opaque tokens are deferred to the server.
	if err := CheckExpiry("not-a-jwt"); err != nil {
		t.Errorf("non-JWT token must pass through, got %v", err)
	}
}

func TestFileProviderRejectsExpiredToken(t *testing.T) {
	t.Setenv(EnvToken, signedToken(t, time.Now().Add(-time.Minute)))

	_, err := FileProvider("unused")()
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSaveTokenRoundTrip(t *testing.T) {
	t.Setenv(EnvToken, "")
	path := filepath.Join(t.TempDir(), "creds", "token")

	if err := SaveToken(path, "saved-token"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file permissions = %o, want 600", perm)
	}

	tok, err := FileProvider(path)()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "saved-token" {
		t.Errorf("token = %q, want saved-token", tok)
	}
}

func TestStaticProvider(t *testing.T) {
	tok, err := StaticProvider("abc")()
	if err != nil || tok != "abc" {
		t.Errorf("got (%q, %v), want (abc, nil)", tok, err)
	}
	if _, err := StaticProvider("")(); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("empty static token must be unauthenticated, got %v", err)
	}
}
