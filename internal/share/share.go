// Package share builds the invitation link handed to a new member and renders
// it as a QR code. The link embeds the member's credentials as URL userinfo,
// so anything written by this package is private to the user.
package share

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/tellnet/tellnet/internal/platform"
)

// DefaultPNGSize is the side of a written PNG in pixels.
const DefaultPNGSize = 256

// ErrMalformedEndpoint is returned when an endpoint does not have the
// scheme://rest shape.
var ErrMalformedEndpoint = errors.New("endpoint must contain exactly one \"://\"")

// Link returns {scheme}://{memberID}:{secret}@{rest}{networkID}/ where the
// endpoint is {scheme}://{rest}. Credentials are inserted verbatim.
func Link(endpoint, networkID, memberID, secret string) (string, error) {
	parts := strings.Split(endpoint, "://")
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: %q", ErrMalformedEndpoint, endpoint)
	}
	return parts[0] + "://" + memberID + ":" + secret + "@" + parts[1] + networkID + "/", nil
}

// QR renders link as a terminal QR code, inverted for dark backgrounds.
func QR(link string) (string, error) {
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encoding QR code: %w", err)
	}
	return q.ToSmallString(true), nil
}

// PNG encodes link as a PNG image of the given size.
func PNG(link string, size int) ([]byte, error) {
	q, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}
	q.ForegroundColor = color.Black
	q.BackgroundColor = color.White
	return q.PNG(size)
}

// WritePNG writes the QR code for link to path with owner-only permissions.
func WritePNG(link, path string, size int) error {
	if size <= 0 {
		size = DefaultPNGSize
	}
	data, err := PNG(link, size)
	if err != nil {
		return err
	}
	if err := platform.WriteFileAtomic(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("writing QR image: %w", err)
	}
	return nil
}
