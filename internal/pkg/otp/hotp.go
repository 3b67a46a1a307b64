package otp

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // RFC 4226 mandates HMAC-SHA1 for authenticator compatibility.
	"encoding/binary"
	"fmt"
	"math"
)

// HOTP derives a zero-padded decimal code from a shared secret and a counter
// following RFC 4226.
//
// The counter is serialized as 8 big-endian bytes and keyed-hashed with
// HMAC-SHA1. Dynamic truncation (RFC 4226 §5.4) takes the low 4 bits of the
// last digest byte as an offset, reads 4 bytes there as a big-endian 31-bit
// integer, and reduces it modulo 10^digits. Same inputs always yield the
// same code.
func HOTP(secret []byte, counter uint64, digits int) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(buf[:])
	digest := mac.Sum(nil)

	offset := digest[len(digest)-1] & 0x0f
	truncated := binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff

	code := uint64(truncated) % uint64(math.Pow10(digits))

	return fmt.Sprintf("%0*d", digits, code)
}
