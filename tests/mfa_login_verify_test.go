package tests

import (
	"testing"
)

func TestLoginVerify(t *testing.T) {

	t.Run("WithTOTP", func(t *testing.T) {

		// Arrange
		loginResp := login(t, userEmail, userPassword)
		payload := map[string]string{
			"challenge_token": loginResp.ChallengeToken,
			"method":          "TOTP",
			"code":            totpCode(t, userTOTPSecret),
		}

		// Act
		status, body := doJSON(t, "POST", "/api/v1/mfa/login/verify", payload, "")
		if status != 200 {
			errEnv := decodeError(t, body)
			t.Fatalf("login verify failed: status=%d message=%q", status, errEnv.Message)
		}

		// Assert
		var data loginVerifyData
		decodeSuccess(t, body, &data)
		if data.AccessToken == "" {
			t.Fatal("expected an access token")
		}
		if data.TokenType != "Bearer" {
			t.Fatalf("expected Bearer token type, got %q", data.TokenType)
		}
	})

	t.Run("WrongCode", func(t *testing.T) {

		// Arrange
		loginResp := login(t, userEmail, userPassword)
		payload := map[string]string{
			"challenge_token": loginResp.ChallengeToken,
			"method":          "TOTP",
			"code":            "000000",
		}

		// Act
		status, _ := doJSON(t, "POST", "/api/v1/mfa/login/verify", payload, "")

		// Assert
		if status != 401 {
			t.Fatalf("expected 401, got %d", status)
		}
	})

	t.Run("ChallengeIsSingleUse", func(t *testing.T) {

		// Arrange
		loginResp := login(t, userEmail, userPassword)
		payload := map[string]string{
			"challenge_token": loginResp.ChallengeToken,
			"method":          "TOTP",
			"code":            totpCode(t, userTOTPSecret),
		}

		status, body := doJSON(t, "POST", "/api/v1/mfa/login/verify", payload, "")
		if status != 200 {
			errEnv := decodeError(t, body)
			t.Fatalf("login verify failed: status=%d message=%q", status, errEnv.Message)
		}

		// Act
		status, _ = doJSON(t, "POST", "/api/v1/mfa/login/verify", payload, "")

		// Assert
		if status != 401 {
			t.Fatalf("expected 401 on challenge reuse, got %d", status)
		}
	})

	t.Run("UnknownChallengeToken", func(t *testing.T) {

		// Arrange
		payload := map[string]string{
			"challenge_token": "no-such-challenge",
			"method":          "TOTP",
			"code":            "123456",
		}

		// Act
		status, _ := doJSON(t, "POST", "/api/v1/mfa/login/verify", payload, "")

		// Assert
		if status != 401 {
			t.Fatalf("expected 401, got %d", status)
		}
	})
}
