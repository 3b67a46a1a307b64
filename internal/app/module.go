package app

import (
	"log/slog"
	"os"

	"github.com/miempresa/otpgate/internal/mfa"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.mfa.enabled") {
		if err := mfa.New(a.ctx, mfa.Dependency{
			Config:          a.config,
			Instrument:      a.ins,
			Goroutine:       a.goroutine,
			UID:             a.uid,
			OID:             a.oid,
			Bcrypt:          a.bcrypt,
			HMAC:            a.hmac,
			Argon2ID:        a.argon2id,
			MFAEncryptor:    a.mfaEncryptor,
			MFARecoveryCode: a.mfaRecoveryCode,
			Clock:           a.clock,
			Validator:       a.validator,
			Router:          a.router,
			Totp:            a.totp,
			QR:              a.qrEncoder,
			DBConn:          a.dbConn,
			CacheConn:       a.cacheConn,
			JWT:             a.jwt,
		}); err != nil {
			slog.Error("failed to init module mfa", "error", err)
			os.Exit(1)
		}
	}
}
