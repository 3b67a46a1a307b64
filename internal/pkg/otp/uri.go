package otp

import (
	"fmt"
	"net/url"
)

// ProvisioningURI formats issuer, account label, and Base32 secret into the
// otpauth:// URI consumed by authenticator apps and QR renderers.
//
// Issuer and account are percent-encoded in the label; raw spaces or colons
// there break authenticator imports. The function is pure and never fails:
// empty issuer/account still yields a syntactically valid URI, presence is
// validated by callers.
func ProvisioningURI(issuer, account, secret string, digits int, periodSeconds uint) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", fmt.Sprintf("%d", digits))
	v.Set("period", fmt.Sprintf("%d", periodSeconds))

	label := url.PathEscape(issuer + ":" + account)

	return fmt.Sprintf("otpauth://totp/%s?%s", label, v.Encode())
}
