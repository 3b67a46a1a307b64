package usecase

import (
	"context"
	"log/slog"

	"github.com/miempresa/otpgate/internal/pkg/goerror"
)

type EnrollQRInput struct {
	Size int `validate:"omitempty,min=64,max=1024"`
}

type EnrollQROutput struct {
	PNG []byte
}

// EnrollQR renders the caller's enrollment URI as a PNG QR code.
func (s *Usecase) EnrollQR(ctx context.Context, in EnrollQRInput) (*EnrollQROutput, error) {
	ctx, span := s.startSpan(ctx, "EnrollQR")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	enrollment, err := s.Enroll(ctx)
	if err != nil {
		return nil, err
	}

	png, err := s.qr.EncodePNG(enrollment.URI, in.Size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render enrollment qr code", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EnrollQROutput{PNG: png}, nil
}
