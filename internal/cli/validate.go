package cli

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ValidateAndResolveFile checks that the path exists and is a regular
// file, then returns the absolute path and its size. Exits fatally on
// failure.
func ValidateAndResolveFile(path string) (string, int64) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Fatal().Str("path", path).Msg("File not found")
		}
		log.Fatal().Err(err).Str("path", path).Msg("Failed to access file")
	}
	if info.IsDir() {
		log.Fatal().Str("path", path).Msg("Path is a directory, expected a file")
	}

	absPath, err := filepath.Abs(path)
	if err == nil {
		path = absPath
	}

	return path, info.Size()
}

// ContentTypeFor maps a video/audio filename extension to its MIME type,
// defaulting to video/mp4 like the web dashboard.
func ContentTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".mp4", ".m4v":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".mkv":
		return "video/x-matroska"
	case ".webm":
		return "video/webm"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/mp4"
	default:
		return "video/mp4"
	}
}
