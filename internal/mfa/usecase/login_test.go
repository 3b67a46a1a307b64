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

func TestUsecaseLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fix := newFixture(t)
		fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		out, err := fix.uc.Login(context.Background(), LoginInput{
			Email:    "alfredo@example.com",
			Password: "s3cret-pass",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, out.ChallengeToken)
		assert.ElementsMatch(t, []string{"TOTP", "BackupCode"}, out.AvailableMethods)
		assert.Equal(t, int64(300), out.ExpiresInSeconds)
		assert.Len(t, fix.challenges.entries, 1)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		fix := newFixture(t)
		fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		_, err := fix.uc.Login(context.Background(), LoginInput{
			Email:    "alfredo@example.com",
			Password: "not-the-password",
		})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
		assert.Empty(t, fix.challenges.entries)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		fix := newFixture(t)

		_, err := fix.uc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever",
		})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
	})

	t.Run("DisabledUser", func(t *testing.T) {
		fix := newFixture(t)
		fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusDisabled)

		_, err := fix.uc.Login(context.Background(), LoginInput{
			Email:    "alfredo@example.com",
			Password: "s3cret-pass",
		})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 403, gerr.StatusCode())
	})

	t.Run("InvalidInput", func(t *testing.T) {
		fix := newFixture(t)

		_, err := fix.uc.Login(context.Background(), LoginInput{
			Email:    "not-an-email",
			Password: "whatever",
		})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 400, gerr.StatusCode())
	})
}
