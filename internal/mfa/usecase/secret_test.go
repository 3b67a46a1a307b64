package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/miempresa/otpgate/internal/pkg/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecaseSecret(t *testing.T) {
	t.Run("DefaultLength", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		out, err := fix.uc.Secret(authContext(userID, "alfredo@example.com"), SecretInput{})

		require.NoError(t, err)
		assert.Equal(t, otp.DefaultSecretBytes, out.Bytes)
		decoded, err := otp.DecodeSecret(out.Secret)
		require.NoError(t, err)
		assert.Len(t, decoded, otp.DefaultSecretBytes)
	})

	t.Run("BelowFloorIsRaised", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		out, err := fix.uc.Secret(authContext(userID, "alfredo@example.com"), SecretInput{Bytes: 5})

		require.NoError(t, err)
		assert.Equal(t, otp.MinSecretBytes, out.Bytes)
		decoded, err := otp.DecodeSecret(out.Secret)
		require.NoError(t, err)
		assert.Len(t, decoded, otp.MinSecretBytes)
	})

	t.Run("ExplicitLength", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		out, err := fix.uc.Secret(authContext(userID, "alfredo@example.com"), SecretInput{Bytes: 32})

		require.NoError(t, err)
		assert.Equal(t, 32, out.Bytes)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		fix := newFixture(t)

		_, err := fix.uc.Secret(context.Background(), SecretInput{})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
	})

	t.Run("AboveLimit", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		_, err := fix.uc.Secret(authContext(userID, "alfredo@example.com"), SecretInput{Bytes: 100})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 400, gerr.StatusCode())
	})
}
