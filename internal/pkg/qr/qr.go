// Package qr renders payloads as QR code images.
package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Encoder converts a text payload into an image.
type Encoder interface {
	// EncodePNG renders payload as a size x size PNG.
	EncodePNG(payload string, size int) ([]byte, error)
}

// PNG implements Encoder using skip2/go-qrcode.
type PNG struct {
	level qrcode.RecoveryLevel
}

// NewPNG returns a PNG encoder with medium error correction, enough for
// enrollment URIs scanned from a screen.
func NewPNG() *PNG {
	return &PNG{level: qrcode.Medium}
}

// EncodePNG renders payload as a size x size PNG. Non-positive sizes fall
// back to 256 pixels.
func (p *PNG) EncodePNG(payload string, size int) ([]byte, error) {
	return qrcode.Encode(payload, p.level, normalizeSize(size))
}

func normalizeSize(size int) int {
	if size <= 0 {
		return 256
	}
	return size
}
