package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHOTP(t *testing.T) {
	// Appendix D of RFC 4226, ASCII secret "12345678901234567890".
	secret := []byte("12345678901234567890")

	expected := []string{
		"755224", "287082", "359152", "969429", "338314",
		"254676", "287922", "162583", "399871", "520489",
	}

	for counter, want := range expected {
		got := HOTP(secret, uint64(counter), 6)
		assert.Equal(t, want, got, "counter %d", counter)
	}
}

func TestHOTPZeroPadding(t *testing.T) {
	// Counter 0 truncates to 1284755224, so 8 digits keep "84755224".
	secret := []byte("12345678901234567890")

	code := HOTP(secret, 9, 6)
	assert.Len(t, code, 6)

	code = HOTP(secret, 0, 8)
	assert.Len(t, code, 8)
	assert.Equal(t, "84755224", code)
}
