package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
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

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine       *goroutine.Manager
	validator       validator.Validator
	clock           clock.Clocker
	hmac            hash.Hash
	argon2id        hash.Hash
	bcrypt          hash.Hash
	uid             uid.NumberID
	oid             uid.StringID
	uuid            uid.StringID
	totp            otp.OTP
	jwt             jwt.JWT
	qrEncoder       qr.Encoder
	mfaEncryptor    mfacrypto.Encryptor
	mfaRecoveryCode mfacrypto.RecoveryCodeGenerator

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
