package inbound

import (
	"context"
	"net/http"

	"github.com/miempresa/otpgate/internal/mfa/usecase"
	"github.com/miempresa/otpgate/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginVerify(ctx context.Context, in usecase.LoginVerifyInput) (*usecase.LoginVerifyOutput, error)

	Enroll(ctx context.Context) (*usecase.EnrollOutput, error)
	EnrollQR(ctx context.Context, in usecase.EnrollQRInput) (*usecase.EnrollQROutput, error)
	Secret(ctx context.Context, in usecase.SecretInput) (*usecase.SecretOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/health", end.Health)

	// Two-step login
	r.POST("/api/v1/mfa/login", end.Login)
	r.POST("/api/v1/mfa/login/verify", end.LoginVerify)

	// Enrollment & provisioning (need authenticated)
	r.GET("/api/v1/mfa/enroll", end.Enroll)
	r.GETRaw("/api/v1/mfa/enroll/qr", http.HandlerFunc(end.EnrollQR))
	r.GET("/api/v1/mfa/secret", end.Secret)
}
