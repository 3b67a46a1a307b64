package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/pkg/clock"
	"github.com/miempresa/otpgate/internal/pkg/config"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/miempresa/otpgate/internal/pkg/hash"
	"github.com/miempresa/otpgate/internal/pkg/instrument"
	"github.com/miempresa/otpgate/internal/pkg/jwt"
	"github.com/miempresa/otpgate/internal/pkg/mfacrypto"
	"github.com/miempresa/otpgate/internal/pkg/otp"
	"github.com/miempresa/otpgate/internal/pkg/qr"
	"github.com/miempresa/otpgate/internal/pkg/uid"
	"github.com/miempresa/otpgate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetBackupCodesByUserID(ctx context.Context, userID int64) ([]entity.BackupCode, error)

	CreateUser(ctx context.Context, user entity.NewUser) (bool, error)
	CreateBackupCodes(ctx context.Context, codes []entity.BackupCode) error

	UpdateLastUsedAt(ctx context.Context, userID int64, at time.Time) error
	MarkBackupCodeUsed(ctx context.Context, bcID, userID int64) (bool, error)
}

type challengeStore interface {
	Put(ctx context.Context, hashedToken string, ch entity.Challenge, ttl time.Duration) error
	Take(ctx context.Context, hashedToken string) (*entity.Challenge, error)
}

type Usecase struct {
	repoDB          repoDB
	challenges      challengeStore
	validator       validator.Validator
	cfg             config.Config
	hmac            hash.Hash
	bcrypt          hash.Hash
	argon2id        hash.Hash
	mfaEncryptor    mfacrypto.Encryptor
	mfaRecoveryCode mfacrypto.RecoveryCodeGenerator
	uid             uid.NumberID
	oid             uid.StringID
	totp            otp.OTP
	qr              qr.Encoder
	clock           clock.Clocker
	jwt             jwt.JWT
	ins             instrument.Instrumentation
}

type Dependency struct {
	RepoDB          repoDB
	Challenges      challengeStore
	Validator       validator.Validator
	Config          config.Config
	HMAC            hash.Hash
	Bcrypt          hash.Hash
	Argon2ID        hash.Hash
	MFAEncryptor    mfacrypto.Encryptor
	MFARecoveryCode mfacrypto.RecoveryCodeGenerator
	UID             uid.NumberID
	OID             uid.StringID
	Totp            otp.OTP
	QR              qr.Encoder
	Clock           clock.Clocker
	JWT             jwt.JWT
	Instrument      instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:          dep.RepoDB,
		challenges:      dep.Challenges,
		validator:       dep.Validator,
		cfg:             dep.Config,
		hmac:            dep.HMAC,
		bcrypt:          dep.Bcrypt,
		argon2id:        dep.Argon2ID,
		mfaEncryptor:    dep.MFAEncryptor,
		mfaRecoveryCode: dep.MFARecoveryCode,
		uid:             dep.UID,
		oid:             dep.OID,
		totp:            dep.Totp,
		qr:              dep.QR,
		clock:           dep.Clock,
		jwt:             dep.JWT,
		ins:             dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mfa.usecase").Start(ctx, name)
}

func (s *Usecase) ensureUserActive(ctx context.Context, user *entity.User) error {
	if user.Status == entity.UserStatusActive {
		return nil
	}

	slog.WarnContext(ctx, "user account is not active", "user_id", user.ID, "status", user.Status.String())
	return goerror.NewBusiness("account is not allowed to authenticate", goerror.CodeForbidden)
}

func (s *Usecase) authenticatedUser(ctx context.Context) (*entity.User, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserActive(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// decryptSeed recovers the Base32 TOTP seed from the at-rest ciphertext.
func (s *Usecase) decryptSeed(ctx context.Context, user *entity.User) (string, error) {
	seed, err := s.mfaEncryptor.Decrypt(user.Secret, mfacrypto.Scope{
		UserID:  user.ID,
		Purpose: mfacrypto.PurposeOTPSeed,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to decrypt totp seed", "user_id", user.ID, "error", err)
		return "", goerror.NewServer(err)
	}

	return string(seed), nil
}
