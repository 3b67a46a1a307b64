package inbound

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/miempresa/otpgate/internal/mfa/entity"
	"github.com/miempresa/otpgate/internal/mfa/usecase"
	"github.com/miempresa/otpgate/internal/pkg/goerror"
	"github.com/miempresa/otpgate/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the MFA login and enrollment flows.
type HTTPEndpoint struct {
	uc uc
}

// Health reports process liveness.
// @Summary Liveness check
// @Tags MFA
// @Produce json
// @Success 200 {object} router.successResponse{data=HealthResponse} "Service is up"
// @Router /health [get]
func (h *HTTPEndpoint) Health(_ *router.Request) (any, error) {
	return HealthResponse{Status: "ok"}, nil
}

// Login verifies credentials and opens an MFA challenge.
// @Summary Start MFA login
// @Description Validates email and password, then returns a short-lived challenge token for code verification.
// @Tags MFA, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Challenge opened"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		ChallengeToken:   resp.ChallengeToken,
		AvailableMethods: resp.AvailableMethods,
		ExpiresInSeconds: resp.ExpiresInSeconds,
	}, nil
}

// LoginVerify completes an MFA challenge and issues an access token.
// @Summary Complete MFA login
// @Description Verifies the TOTP or backup code for a login challenge and returns an access token.
// @Tags MFA, Authentication
// @Accept json
// @Produce json
// @Param request body LoginVerifyRequest true "Verification payload"
// @Success 200 {object} router.successResponse{data=LoginVerifyResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid challenge or code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/mfa/login/verify [post]
func (h *HTTPEndpoint) LoginVerify(r *router.Request) (any, error) {
	var req LoginVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginVerify(r.Context(), usecase.LoginVerifyInput{
		ChallengeToken: req.ChallengeToken,
		Method:         entity.MFATypeFromString(req.Method),
		Code:           req.Code,
	})
	if err != nil {
		return nil, err
	}

	return LoginVerifyResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
	}, nil
}

// Enroll returns the caller's otpauth enrollment URI.
// @Summary Get enrollment URI
// @Description Returns the otpauth:// URI for the caller's TOTP seed, for import into an authenticator app.
// @Tags MFA, Enrollment
// @Produce json
// @Success 200 {object} router.successResponse{data=EnrollResponse} "Enrollment data"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/mfa/enroll [get]
func (h *HTTPEndpoint) Enroll(r *router.Request) (any, error) {
	resp, err := h.uc.Enroll(r.Context())
	if err != nil {
		return nil, err
	}

	return EnrollResponse{
		Email:      resp.Email,
		Issuer:     resp.Issuer,
		OTPAuthURI: resp.URI,
	}, nil
}

// EnrollQR renders the caller's enrollment URI as a PNG QR code.
// @Summary Get enrollment QR code
// @Description Returns the otpauth:// URI of the caller rendered as an image/png QR code.
// @Tags MFA, Enrollment
// @Produce png
// @Param size query int false "Image size in pixels (64-1024)"
// @Success 200 {file} byte "QR code image"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/mfa/enroll/qr [get]
func (h *HTTPEndpoint) EnrollQR(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil {
		size = 0
	}

	resp, err := h.uc.EnrollQR(r.Context(), usecase.EnrollQRInput{Size: size})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.PNG)))
	if _, err := w.Write(resp.PNG); err != nil {
		slog.ErrorContext(r.Context(), "failed to write qr code response", "error", err)
	}
}

// Secret draws a fresh shared secret for out-of-band provisioning.
// @Summary Generate shared secret
// @Description Returns a new random Base32 secret. Requests below 16 bytes are raised to 16; omitting bytes uses 20. The value is never stored.
// @Tags MFA, Enrollment
// @Produce json
// @Param bytes query int false "Secret length in bytes"
// @Success 200 {object} router.successResponse{data=SecretResponse} "Generated secret"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Security BearerAuth
// @Router /api/v1/mfa/secret [get]
func (h *HTTPEndpoint) Secret(r *router.Request) (any, error) {
	n, err := r.GetQueryInt32("bytes")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.Secret(r.Context(), usecase.SecretInput{Bytes: int(n)})
	if err != nil {
		return nil, err
	}

	return SecretResponse{
		Secret: resp.Secret,
		Bytes:  resp.Bytes,
	}, nil
}

// writeError mirrors the router's error codec for raw (non-JSON) handlers.
func writeError(w http.ResponseWriter, err error) {
	message := "Internal server error"
	status := http.StatusInternalServerError

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		message = gerr.Msg()
		status = gerr.StatusCode()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
