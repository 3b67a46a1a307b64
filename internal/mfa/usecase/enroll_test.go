package usecase

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsecaseEnroll(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		fix := newFixture(t)
		userID, seed := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		out, err := fix.uc.Enroll(authContext(userID, "alfredo@example.com"))

		require.NoError(t, err)
		assert.Equal(t, "alfredo@example.com", out.Email)
		assert.Equal(t, "miempresa", out.Issuer)
		assert.True(t, strings.HasPrefix(out.URI, "otpauth://totp/"))

		parsed, err := url.Parse(out.URI)
		require.NoError(t, err)
		assert.Equal(t, "/miempresa:alfredo@example.com", parsed.Path)
		assert.Equal(t, seed, parsed.Query().Get("secret"))
		assert.Equal(t, "miempresa", parsed.Query().Get("issuer"))
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		fix := newFixture(t)
		fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		_, err := fix.uc.Enroll(context.Background())

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 401, gerr.StatusCode())
	})

	t.Run("DisabledUser", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusDisabled)

		_, err := fix.uc.Enroll(authContext(userID, "alfredo@example.com"))

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 403, gerr.StatusCode())
	})
}

func TestUsecaseEnrollQR(t *testing.T) {
	pngMagic := []byte{0x89, 'P', 'N', 'G'}

	t.Run("Success", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		out, err := fix.uc.EnrollQR(authContext(userID, "alfredo@example.com"), EnrollQRInput{Size: 256})

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out.PNG, pngMagic))
	})

	t.Run("ZeroSizeUsesDefault", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		out, err := fix.uc.EnrollQR(authContext(userID, "alfredo@example.com"), EnrollQRInput{})

		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out.PNG, pngMagic))
	})

	t.Run("SizeOutOfRange", func(t *testing.T) {
		fix := newFixture(t)
		userID, _ := fix.addUser(t, "alfredo@example.com", "s3cret-pass", entity.UserStatusActive)

		_, err := fix.uc.EnrollQR(authContext(userID, "alfredo@example.com"), EnrollQRInput{Size: 4096})

		require.Error(t, err)
		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, 400, gerr.StatusCode())
	})
}
