package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
)

type LoginVerifyInput struct {
	ChallengeToken string         `validate:"required"`
	Method         entity.MFAType `validate:"required"`
	Code           string         `validate:"required"`
}

type LoginVerifyOutput struct {
	AccessToken string
	TokenType   string
}

// LoginVerify completes a login challenge with a TOTP or backup code and
// issues the access token. Every rejection is an unauthorized outcome with
// the same message, so callers cannot distinguish which part failed.
func (s *Usecase) LoginVerify(ctx context.Context, in LoginVerifyInput) (*LoginVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginVerify")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Method == entity.MFATypeUnknown {
		slog.WarnContext(ctx, "method not supported", "method", in.Method.String())
		return nil, goerror.NewBusiness("method not supported", goerror.CodeUnauthorized)
	}

	if in.Method == entity.MFATypeTOTP && !isTOTPCodeShape(in.Code) {
		slog.WarnContext(ctx, "totp code shape is not valid")
		return nil, goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	ch, err := s.takeChallenge(ctx, in.ChallengeToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByID(ctx, ch.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "challenge user no longer exists", "user_id", ch.UserID)
		return nil, goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", ch.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserActive(ctx, user); err != nil {
		return nil, err
	}

	switch in.Method {
	case entity.MFATypeTOTP:
		if err := s.verifyTOTP(ctx, user, in.Code); err != nil {
			return nil, err
		}
	case entity.MFATypeBackupCode:
		if err := s.verifyBackupCode(ctx, user, in.Code); err != nil {
			return nil, err
		}
	}

	if err := s.repoDB.UpdateLastUsedAt(ctx, user.ID, s.clock.Now()); err != nil {
		slog.ErrorContext(ctx, "failed to update last_used_at", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	acToken, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginVerifyOutput{
		AccessToken: acToken,
		TokenType:   "Bearer",
	}, nil
}

// isTOTPCodeShape is a cheap precheck so obviously malformed codes never hit
// the challenge store or the database.
func isTOTPCodeShape(code string) bool {
	if len(code) != 6 {
		return false
	}

	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}

	return true
}

func (s *Usecase) takeChallenge(ctx context.Context, token string) (*entity.Challenge, error) {
	cTokenHash, err := s.hmac.Hash(token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash challenge token", "error", err)
		return nil, goerror.NewServer(err)
	}

	ch, err := s.challenges.Take(ctx, string(cTokenHash))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login challenge not found or expired")
		return nil, goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to take login challenge", "error", err)
		return nil, goerror.NewServer(err)
	}

	return ch, nil
}

func (s *Usecase) verifyTOTP(ctx context.Context, user *entity.User, code string) error {
	seed, err := s.decryptSeed(ctx, user)
	if err != nil {
		return err
	}

	if !s.totp.Validate(code, seed, s.clock.Now()) {
		slog.WarnContext(ctx, "invalid totp code", "user_id", user.ID)
		return goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	return nil
}

func (s *Usecase) verifyBackupCode(ctx context.Context, user *entity.User, code string) error {
	codes, err := s.repoDB.GetBackupCodesByUserID(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get backup codes", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	var bc *entity.BackupCode
	for i := range codes {
		if s.argon2id.Verify(codes[i].Code, code) {
			bc = &codes[i]
			break
		}
	}

	if bc == nil {
		slog.WarnContext(ctx, "backup code not match", "user_id", user.ID)
		return goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	consumed, err := s.repoDB.MarkBackupCodeUsed(ctx, bc.ID, bc.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume backup code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}
	if !consumed {
		slog.WarnContext(ctx, "backup code already used", "user_id", user.ID)
		return goerror.NewBusiness("invalid challenge session or code", goerror.CodeUnauthorized)
	}

	return nil
}
