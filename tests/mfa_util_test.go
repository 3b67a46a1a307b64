package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/miempresa/otpgate/internal/pkg/otp"
)

// Credentials of the seeded directory entry, see config/seed.json.
const (
	userEmail      = "alfredo@example.com"
	userPassword   = "s3cret-pass"
	userTOTPSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
)

type loginData struct {
	ChallengeToken   string   `json:"challenge_token"`
	AvailableMethods []string `json:"available_methods"`
	ExpiresInSeconds int64    `json:"expires_in_seconds"`
}

type loginVerifyData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func login(t *testing.T, email, password string) loginData {
	t.Helper()

	payload := map[string]string{
		"email":    email,
		"password": password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/mfa/login", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
	}

	var data loginData
	decodeSuccess(t, body, &data)

	return data
}

func totpCode(t *testing.T, key string) string {
	t.Helper()

	issuer := "miempresa"
	period := uint(30)
	skew := uint(1)

	generator := otp.NewTOTP(issuer, period, skew)
	code, err := generator.GenerateCode(key, time.Now())
	if err != nil {
		t.Fatalf("generate totp code: %v", err)
	}

	return code
}

// accessToken completes a full login with TOTP and returns the bearer token.
func accessToken(t *testing.T) string {
	t.Helper()

	loginResp := login(t, userEmail, userPassword)

	payload := map[string]string{
		"challenge_token": loginResp.ChallengeToken,
		"method":          "TOTP",
		"code":            totpCode(t, userTOTPSecret),
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/mfa/login/verify", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login verify failed: status=%d message=%q", status, errEnv.Message)
	}

	var data loginVerifyData
	decodeSuccess(t, body, &data)
	if data.AccessToken == "" {
		t.Fatal("missing access token")
	}

	return data.AccessToken
}
