package shortener

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the character set short IDs are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// DefaultIDLength is the length of generated short IDs.
	DefaultIDLength = 6

	// DefaultMaxAttempts bounds the search for a free short ID.
	DefaultMaxAttempts = 10
)

// GenerateShortID returns a random string of exactly length characters, each
// drawn uniformly from Alphabet using a cryptographically secure source. Short
// IDs are guessable capability tokens, so a statistical PRNG is not enough.
func GenerateShortID(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	id, err := gonanoid.Generate(Alphabet, length)
	if err != nil {
		return "", fmt.Errorf("generate short id: %w", err)
	}

	return id, nil
}

// IsValidShortID reports whether value is exactly length characters long and
// built entirely from Alphabet.
func IsValidShortID(value string, length int) bool {
	if len(value) != length {
		return false
	}

	for _, c := range value {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}

	return true
}
