package usecase

import (
	"context"
	"log/slog"

	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/miempresa/otpgate/internal/pkg/otp"
)

type SecretInput struct {
	Bytes int `validate:"omitempty,max=64"`
}

type SecretOutput struct {
	Secret string
	Bytes  int
}

// Secret draws a fresh Base32 shared secret for out-of-band provisioning.
// The value is returned once and never persisted; requests below the entropy
// floor are raised to it, and 0 means the recommended default.
func (s *Usecase) Secret(ctx context.Context, in SecretInput) (*SecretOutput, error) {
	ctx, span := s.startSpan(ctx, "Secret")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.authenticatedUser(ctx); err != nil {
		return nil, err
	}

	n := in.Bytes
	if n <= 0 {
		n = otp.DefaultSecretBytes
	}
	if n < otp.MinSecretBytes {
		n = otp.MinSecretBytes
	}

	secret, err := otp.GenerateSecret(n)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate shared secret", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SecretOutput{
		Secret: secret,
		Bytes:  n,
	}, nil
}
