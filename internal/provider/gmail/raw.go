package gmail

import (
	"encoding/base64"
	"fmt"
	"os"
)

// Subjects stamped on outbound messages.
const (
	TextSubject  = "Nostlichat"
	ImageSubject = "Photo from Nostlichat"
)

// boundary is the fixed multipart boundary token for image messages.
// Existing receivers key on it, so it is not randomized.
const boundary = "boundary_nostli"

// imageBodyText is the plaintext part accompanying an image attachment.
const imageBodyText = "Sent an image via Nostlichat."

// BuildText assembles a minimal single-part RFC-822 message.
func BuildText(to, body string) []byte {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\n\r\n%s", to, TextSubject, body)
	return []byte(raw)
}

// BuildImage reads the file at path and assembles a two-part
// multipart/mixed message: a plaintext note and the image bytes as a
// base64 (standard alphabet, padded) image/png part. An unreadable
// file is an error; the caller is expected to no-op in that case.
func BuildImage(to, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %s: %w", path, err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	raw := fmt.Sprintf(
		"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: multipart/mixed; boundary=%s\r\n"+
			"\r\n"+
			"--%s\r\n"+
			"Content-Type: text/plain\r\n"+
			"\r\n"+
			"%s\r\n"+
			"--%s\r\n"+
			"Content-Type: image/png\r\n"+
			"Content-Transfer-Encoding: base64\r\n"+
			"\r\n"+
			"%s\r\n"+
			"--%s--",
		to, ImageSubject, boundary,
		boundary, imageBodyText,
		boundary, encoded,
		boundary,
	)

	return []byte(raw), nil
}
