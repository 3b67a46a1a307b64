package usecase

import (
	"context"
)

type EnrollOutput struct {
	Email  string
	Issuer string
	URI    string
}

// Enroll returns the otpauth enrollment URI for the caller's stored seed so
// it can be imported into an authenticator app.
func (s *Usecase) Enroll(ctx context.Context) (*EnrollOutput, error) {
	ctx, span := s.startSpan(ctx, "Enroll")
	defer span.End()

	user, err := s.authenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	seed, err := s.decryptSeed(ctx, user)
	if err != nil {
		return nil, err
	}

	return &EnrollOutput{
		Email:  user.Email,
		Issuer: s.totp.Issuer(),
		URI:    s.totp.GenerateURI(user.Email, seed),
	}, nil
}
