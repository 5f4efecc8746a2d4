package services

import (
	"crypto/rand"
	"fmt"
)

const keyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewProjectKey generates an opaque project key, e.g.
// "pk_u7m2k9q4x1z8p0c3v6b5n2r4". Keys address the proxy publicly and
// must not be guessable from the domain, so the bytes come from
// crypto/rand.
func NewProjectKey() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate project key: %w", err)
	}
	for i, b := range buf {
		buf[i] = keyAlphabet[int(b)%len(keyAlphabet)]
	}
	return "pk_" + string(buf), nil
}
