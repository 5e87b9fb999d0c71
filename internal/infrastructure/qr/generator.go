package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Size is the pixel width of generated QR images
const Size = 512

// Generator renders verification URLs as QR PNG images.
// Medium error correction keeps codes readable on phone screens.
type Generator struct{}

// NewGenerator creates a QR generator
func NewGenerator() *Generator {
	return &Generator{}
}

// EncodeURL renders the URL as a PNG image
func (g *Generator) EncodeURL(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, Size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
