package token

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of characters in a subscription token. With 62
// symbols per character that is roughly 149 bits of entropy.
const Length = 25

// Generate returns a new subscription token: Length characters drawn
// uniformly from the alphanumeric alphabet.
func Generate() (string, error) {
	// 248 is the largest multiple of 62 below 256; bytes at or above it
	// are discarded so every symbol stays equally likely.
	const max = byte(len(alphabet) * 4)

	out := make([]byte, 0, Length)
	buf := make([]byte, Length*2)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}

	return string(out), nil
}
