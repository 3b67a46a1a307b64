package inbound

type HealthResponse struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ChallengeToken   string   `json:"challenge_token"`
	AvailableMethods []string `json:"available_methods"`
	ExpiresInSeconds int64    `json:"expires_in_seconds"`
}

type LoginVerifyRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Method         string `json:"method"`
	Code           string `json:"code"`
}

type LoginVerifyResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type EnrollResponse struct {
	Email      string `json:"email"`
	Issuer     string `json:"issuer"`
	OTPAuthURI string `json:"otpauth_uri"`
}

type SecretResponse struct {
	Secret string `json:"secret"`
	Bytes  int    `json:"bytes"`
}
