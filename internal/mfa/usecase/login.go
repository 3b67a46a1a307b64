package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	ChallengeToken   string
	AvailableMethods []string
	ExpiresInSeconds int64
}

// Login checks the password and opens a code-verification challenge. It never
// issues tokens directly; every login has to pass the second factor.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := strings.TrimSpace(in.Email)
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserActive(ctx, user); err != nil {
		return nil, err
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}

	cToken := s.oid.Generate()
	cTokenHash, err := s.hmac.Hash(cToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash challenge token", "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.mfa.challenge_ttl_minutes")
	if err := s.challenges.Put(ctx, string(cTokenHash), entity.Challenge{
		UserID: user.ID,
		Email:  user.Email,
	}, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store login challenge", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		ChallengeToken:   cToken,
		AvailableMethods: []string{entity.MFATypeTOTP.String(), entity.MFATypeBackupCode.String()},
		ExpiresInSeconds: int64(ttl.Seconds()),
	}, nil
}
