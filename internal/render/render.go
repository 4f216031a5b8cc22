// Package render turns an encoded payload into a QR symbol image. It sits
// behind the Renderer interface so the codec never depends on it.
package render

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 300
	MIMEPNG     = "image/png"
)

var (
	ErrEmptyPayload = errors.New("render: empty payload")
	ErrInvalidSize  = errors.New("render: invalid size")
	ErrUnknownLevel = errors.New("render: unknown recovery level")
)

// Image is an encoded raster image.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURL returns the image as a base64 data URL.
func (img Image) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}

// Renderer produces an image for a payload string.
type Renderer interface {
	Render(ctx context.Context, payload string) (Image, error)
}

// Level is the QR error correction level.
type Level = qrcode.RecoveryLevel

// ParseLevel maps a config name onto a recovery level. Empty means medium.
func ParseLevel(raw string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "l", "low":
		return qrcode.Low, nil
	case "", "m", "medium":
		return qrcode.Medium, nil
	case "q", "high":
		return qrcode.High, nil
	case "h", "highest":
		return qrcode.Highest, nil
	default:
		return qrcode.Medium, fmt.Errorf("%w: %q", ErrUnknownLevel, raw)
	}
}

// PNGRenderer renders square PNG symbols.
type PNGRenderer struct {
	Size     int
	Recovery Level
}

// NewPNGRenderer returns a renderer with the default 300px size and medium
// error correction.
func NewPNGRenderer() PNGRenderer {
	return PNGRenderer{Size: DefaultSize, Recovery: qrcode.Medium}
}

func (r PNGRenderer) Render(ctx context.Context, payload string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if payload == "" {
		return Image{}, ErrEmptyPayload
	}
	size := r.Size
	if size == 0 {
		size = DefaultSize
	}
	if size < 0 {
		return Image{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	png, err := qrcode.Encode(payload, r.Recovery, size)
	if err != nil {
		return Image{}, fmt.Errorf("render: encode qr: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	return Image{MIMEType: MIMEPNG, Data: png}, nil
}
