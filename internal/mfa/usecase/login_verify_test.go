package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openChallenge runs Login and returns the raw challenge token.
func openChallenge(t *testing.T, fix *fixture, email, password string) string {
	t.Helper()

	out, err := fix.uc.Login(context.Background(), LoginInput{Email: email, Password: password})
	require.NoError(t, err)

	return out.ChallengeToken
}

func TestUsecaseLoginVerify(t *testing.T) {
	t.Run("TOTPSuccess", func(t *testing.T) {
		fix := newFixture(t)
		userID, seed := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")

		code, err := fix.totp.GenerateCode(seed, fix.clock.Now())
		require.NoError(t, err)

		out, err := fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeTOTP,
			Code:           code,
		})

		require.NoError(t, err)
		assert.Equal(t, "Bearer", out.TokenType)
		assert.Equal(t, fix.clock.Now(), fix.repo.lastUsedAt[userID])

		claims, err := fix.uc.jwt.Verify(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "alfredo@example.com", claims.UserEmail)
	})

	t.Run("ChallengeIsSingleUse", func(t *testing.T) {
		fix := newFixture(t)
		_, seed := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")

		code, err := fix.totp.GenerateCode(seed, fix.clock.Now())
		require.NoError(t, err)

		in := LoginVerifyInput{ChallengeToken: cToken, Method: entity.MFATypeTOTP, Code: code}

		_, err = fix.uc.LoginVerify(context.Background(), in)
		require.NoError(t, err)

		_, err = fix.uc.LoginVerify(context.Background(), in)
		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
	})

	t.Run("WrongTOTPCode", func(t *testing.T) {
		fix := newFixture(t)
		fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")

		_, err := fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeTOTP,
			Code:           "000000",
		})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
	})

	t.Run("MalformedTOTPCodeKeepsChallenge", func(t *testing.T) {
		fix := newFixture(t)
		_, seed := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")

		_, err := fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeTOTP,
			Code:           "12ab56",
		})
		require.Error(t, err)

		// The shape precheck fails before the challenge is consumed, so a
		// correct code afterwards still works.
		code, err := fix.totp.GenerateCode(seed, fix.clock.Now())
		require.NoError(t, err)

		_, err = fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeTOTP,
			Code:           code,
		})
		require.NoError(t, err)
	})

	t.Run("UnknownChallengeToken", func(t *testing.T) {
		fix := newFixture(t)
		fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		_, err := fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: "no-such-token",
			Method:         entity.MFATypeTOTP,
			Code:           "123456",
		})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		fix := newFixture(t)
		fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")

		_, err := fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeFromString("sms"),
			Code:           "123456",
		})

		require.Error(t, err)
	})

	t.Run("BackupCodeSuccessAndSingleUse", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		fix.addBackupCode(t, userID, "AAAA-BBBB-CCCC")

		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")
		out, err := fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeBackupCode,
			Code:           "AAAA-BBBB-CCCC",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out.AccessToken)

		// The same code is rejected on a fresh challenge.
		cToken = openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")
		_, err = fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeBackupCode,
			Code:           "AAAA-BBBB-CCCC",
		})
		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
	})

	t.Run("WrongBackupCode", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		fix.addBackupCode(t, userID, "AAAA-BBBB-CCCC")
		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")

		_, err := fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeBackupCode,
			Code:           "ZZZZ-ZZZZ-ZZZZ",
		})

		require.Error(t, err)
	})

	t.Run("DisabledUserAfterChallenge", func(t *testing.T) {
		fix := newFixture(t)
		userID, seed := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)
		cToken := openChallenge(t, fix, "alfredo@example.com", "s3cret-pass")

		fix.repo.users[userID].Status = entity.UserStatusDisabled

		code, err := fix.totp.GenerateCode(seed, fix.clock.Now())
		require.NoError(t, err)

		_, err = fix.uc.LoginVerify(context.Background(), LoginVerifyInput{
			ChallengeToken: cToken,
			Method:         entity.MFATypeTOTP,
			Code:           code,
		})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 403, gerr.StatusCode())
	})
}
