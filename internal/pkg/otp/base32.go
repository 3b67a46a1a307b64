package otp

import (
	"encoding/base32"
	"fmt"
	"strings"
)

// ErrInvalidEncoding indicates a shared secret that is not valid unpadded
// RFC 4648 Base32.
var ErrInvalidEncoding = fmt.Errorf("otp: invalid base32 encoding")

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeSecret encodes raw secret bytes as unpadded Base32. N input bytes
// always produce ceil(N*8/5) symbols and no '=' characters.
func EncodeSecret(secret []byte) string {
	return b32.EncodeToString(secret)
}

// DecodeSecret decodes an unpadded Base32 shared secret.
//
// Input is normalized before decoding: lowercase letters are accepted,
// spaces are ignored, and trailing '=' padding is tolerated by stripping.
// The canonical form emitted by EncodeSecret never contains any of those.
func DecodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(secret, " ", ""))
	normalized = strings.TrimRight(normalized, "=")

	raw, err := b32.DecodeString(normalized)
	if err != nil {
		return nil, ErrInvalidEncoding
	}

	return raw, nil
}
