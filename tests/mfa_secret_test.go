package tests

import (
	"testing"

	"github.com/miempresa/otpgate/internal/pkg/otp"
)

func TestSecret(t *testing.T) {

	t.Run("DefaultLength", func(t *testing.T) {

		// Arrange
		token := accessToken(t)

		// Act
		status, body := doJSON(t, "GET", "/api/v1/mfa/secret", nil, token)
		if status != 200 {
			errEnv := decodeError(t, body)
			t.Fatalf("secret failed: status=%d message=%q", status, errEnv.Message)
		}

		// Assert
		var data struct {
			Secret string `json:"secret"`
			Bytes  int    `json:"bytes"`
		}
		decodeSuccess(t, body, &data)
		if data.Bytes != otp.DefaultSecretBytes {
			t.Fatalf("expected %d bytes, got %d", otp.DefaultSecretBytes, data.Bytes)
		}
		raw, err := otp.DecodeSecret(data.Secret)
		if err != nil {
			t.Fatalf("decode secret: %v", err)
		}
		if len(raw) != otp.DefaultSecretBytes {
			t.Fatalf("expected %d raw bytes, got %d", otp.DefaultSecretBytes, len(raw))
		}
	})

	t.Run("BelowFloorIsRaised", func(t *testing.T) {

		// Arrange
		token := accessToken(t)

		// Act
		status, body := doJSON(t, "GET", "/api/v1/mfa/secret?bytes=5", nil, token)
		if status != 200 {
			errEnv := decodeError(t, body)
			t.Fatalf("secret failed: status=%d message=%q", status, errEnv.Message)
		}

		// Assert
		var data struct {
			Secret string `json:"secret"`
			Bytes  int    `json:"bytes"`
		}
		decodeSuccess(t, body, &data)
		if data.Bytes != otp.MinSecretBytes {
			t.Fatalf("expected %d bytes, got %d", otp.MinSecretBytes, data.Bytes)
		}
	})

	t.Run("RequiresAuth", func(t *testing.T) {

		// Act
		status, _ := doJSON(t, "GET", "/api/v1/mfa/secret", nil, "")

		// Assert
		if status != 401 {
			t.Fatalf("expected 401, got %d", status)
		}
	})
}
