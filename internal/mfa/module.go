// Package mfa is the multi-factor authentication module: a two-step login
// flow backed by TOTP and backup codes, plus enrollment and secret
// provisioning endpoints.
package mfa

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/miempresa/otpgate/internal/mfa/inbound"
	"github.com/miempresa/otpgate/internal/mfa/outbound/cache"
	"github.com/miempresa/otpgate/internal/mfa/outbound/db"
	"github.com/miempresa/otpgate/internal/mfa/usecase"
	"github.com/miempresa/otpgate/internal/pkg/clock"
	"github.com/miempresa/otpgate/internal/pkg/config"
	"github.com/miempresa/otpgate/internal/pkg/goroutine"
	"github.com/miempresa/otpgate/internal/pkg/hash"
	"github.com/miempresa/otpgate/internal/pkg/instrument"
	"github.com/miempresa/otpgate/internal/pkg/jwt"
	"github.com/miempresa/otpgate/internal/pkg/mfacrypto"
	"github.com/miempresa/otpgate/internal/pkg/otp"
	"github.com/miempresa/otpgate/internal/pkg/qr"
	"github.com/miempresa/otpgate/internal/pkg/router"
	"github.com/miempresa/otpgate/internal/pkg/uid"
	"github.com/miempresa/otpgate/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn          *pgxpool.Pool                   `validate:"required"`
	CacheConn       *redis.Client                   `validate:"required"`
	Router          *router.Router                  `validate:"required"`
	Config          config.Config                   `validate:"required"`
	Instrument      instrument.Instrumentation      `validate:"required"`
	Goroutine       *goroutine.Manager              `validate:"required"`
	UID             uid.NumberID                    `validate:"required"`
	OID             uid.StringID                    `validate:"required"`
	HMAC            hash.Hash                       `validate:"required"`
	Bcrypt          hash.Hash                       `validate:"required"`
	Argon2ID        hash.Hash                       `validate:"required"`
	MFAEncryptor    mfacrypto.Encryptor             `validate:"required"`
	MFARecoveryCode mfacrypto.RecoveryCodeGenerator `validate:"required"`
	Clock           clock.Clocker                   `validate:"required"`
	Totp            otp.OTP                         `validate:"required"`
	QR              qr.Encoder                      `validate:"required"`
	Validator       validator.Validator             `validate:"required"`
	JWT             jwt.JWT                         `validate:"required"`
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoDB := db.NewDB(dep.DBConn, dep.Instrument)
	challenges := cache.NewChallengeStore(dep.CacheConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:          repoDB,
		Challenges:      challenges,
		Validator:       dep.Validator,
		Config:          dep.Config,
		HMAC:            dep.HMAC,
		Bcrypt:          dep.Bcrypt,
		Argon2ID:        dep.Argon2ID,
		MFAEncryptor:    dep.MFAEncryptor,
		MFARecoveryCode: dep.MFARecoveryCode,
		UID:             dep.UID,
		OID:             dep.OID,
		Totp:            dep.Totp,
		QR:              dep.QR,
		Clock:           dep.Clock,
		JWT:             dep.JWT,
		Instrument:      dep.Instrument,
	})

	if dep.Config.GetBool("modules.mfa.seed.enabled") {
		dep.Goroutine.Go(ctx, uc.Seed)
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
