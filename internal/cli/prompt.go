package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// PromptLine prompts the user for a single line of input, returning the
// fallback if the user enters nothing.
func PromptLine(label, fallback string) string {
	if fallback != "" {
		fmt.Printf("%s [%s]: ", label, fallback)
	} else {
		fmt.Printf("%s: ", label)
	}

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read input, using default")
		return fallback
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}

	return input
}
