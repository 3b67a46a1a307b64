// Package otp implements the one-time password engine used for MFA flows:
// HOTP code derivation (RFC 4226), time-based verification with clock-skew
// tolerance (RFC 6238), unpadded Base32 secret encoding, random secret
// provisioning, and otpauth:// enrollment URIs for authenticator apps.
package otp
