package otp

import (
	"crypto/subtle"
	"time"
)

// OTP defines the contract for time-based one-time password operations.
type OTP interface {
	// Issuer returns the configured issuer label.
	Issuer() string
	// GenerateURI builds the otpauth:// enrollment URI for an account.
	GenerateURI(account, secret string) string
	// GenerateCode creates the code for the given secret and time.
	GenerateCode(secret string, at time.Time) (string, error)
	// Validate checks whether a code is valid at the given time.
	Validate(code, secret string, at time.Time) bool
}

// TOTP implements OTP using the RFC 6238 algorithm on top of HOTP.
//
// A TOTP value is an immutable parameter tuple (issuer, period, skew,
// digits, HMAC-SHA1); every operation is a pure function of it and its
// arguments, so a single instance is safe for concurrent use.
type TOTP struct {
	issuer string
	period uint
	skew   uint
	digits int
}

// NewTOTP constructs a TOTP instance with sensible defaults.
//
// If period is 0 it uses the common 30-second step. Digit count is fixed at
// 6 for authenticator-app compatibility. skew is the number of adjacent time
// steps accepted around the current one; 0 means only the current step.
func NewTOTP(issuer string, period, skew uint) *TOTP {
	if period == 0 {
		period = 30
	}

	return &TOTP{
		issuer: issuer,
		period: period,
		skew:   skew,
		digits: 6,
	}
}

// Issuer returns the configured issuer label.
func (t *TOTP) Issuer() string {
	return t.issuer
}

// Period returns the time-step length in seconds.
func (t *TOTP) Period() uint {
	return t.period
}

// Counter maps wall-clock time to the HOTP counter: floor(unix / period).
// It is stateless and recomputed on every call, never persisted.
func (t *TOTP) Counter(at time.Time) uint64 {
	return uint64(at.Unix()) / uint64(t.period)
}

// GenerateURI builds the otpauth:// enrollment URI for an account.
func (t *TOTP) GenerateURI(account, secret string) string {
	return ProvisioningURI(t.issuer, account, secret, t.digits, t.period)
}

// GenerateCode creates the code for the given Base32 secret and time.
//
// It fails with ErrInvalidEncoding or SecretTooShortError when the secret is
// unusable; those are caller errors, not verification outcomes.
func (t *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return "", err
	}
	if err := ValidateSecret(key); err != nil {
		return "", err
	}

	return HOTP(key, t.Counter(at), t.digits), nil
}

// Validate checks a submitted code against the counter window at the given
// time, testing the base counter first and then each adjacent step within
// ±skew, accepting on first match.
//
// It returns false, never an error: a wrong-length code, non-digit input, a
// malformed secret, or no counter match are all verification outcomes.
func (t *TOTP) Validate(code, secret string, at time.Time) bool {
	if len(code) != t.digits {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}

	key, err := DecodeSecret(secret)
	if err != nil {
		return false
	}
	if err := ValidateSecret(key); err != nil {
		return false
	}

	base := t.Counter(at)
	for _, counter := range t.candidates(base) {
		expected := HOTP(key, counter, t.digits)
		if subtle.ConstantTimeCompare([]byte(code), []byte(expected)) == 1 {
			return true
		}
	}

	return false
}

// candidates yields the counter scan window base, base-1, base+1, …,
// base-skew, base+skew, skipping steps that would underflow counter zero.
func (t *TOTP) candidates(base uint64) []uint64 {
	out := make([]uint64, 0, 2*t.skew+1)
	out = append(out, base)

	for delta := uint64(1); delta <= uint64(t.skew); delta++ {
		if base >= delta {
			out = append(out, base-delta)
		}
		out = append(out, base+delta)
	}

	return out
}
