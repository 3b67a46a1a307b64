package otp

import (
	"crypto/rand"
	"fmt"
)

const (
	// MinSecretBytes is the mandatory minimum shared-secret length (128 bits).
	MinSecretBytes = 16

	// DefaultSecretBytes is the recommended secret length (160 bits), used
	// when the caller does not ask for a specific size.
	DefaultSecretBytes = 20
)

// SecretTooShortError indicates a decoded shared secret below the minimum
// entropy floor.
type SecretTooShortError struct {
	Actual  int
	Minimum int
}

// Error implements the error interface.
func (e *SecretTooShortError) Error() string {
	return fmt.Sprintf("otp: shared secret too short: %d bytes, need >= %d (%d bits)",
		e.Actual, e.Minimum, e.Minimum*8)
}

// ValidateSecret enforces the entropy floor on decoded secret bytes. It must
// be applied on every decode of a secret used for code generation or
// verification, not only at creation time.
func ValidateSecret(secret []byte) error {
	if len(secret) < MinSecretBytes {
		return &SecretTooShortError{Actual: len(secret), Minimum: MinSecretBytes}
	}

	return nil
}

// GenerateSecret draws n cryptographically secure random bytes and returns
// them as unpadded Base32. Requests below MinSecretBytes are raised to the
// floor rather than truncating entropy.
func GenerateSecret(n int) (string, error) {
	if n < MinSecretBytes {
		n = MinSecretBytes
	}

	secret := make([]byte, n)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("otp: generate secret: %w", err)
	}

	return EncodeSecret(secret), nil
}
