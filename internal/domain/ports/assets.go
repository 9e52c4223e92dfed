package ports

import "encoding/base64"

// ImageResolver resolves local image references to validated file bytes.
type ImageResolver interface {
	// Resolve reads and validates the image at ref (relative references
	// resolve against the configured base path).
	Resolve(ref string) (*ResolvedImage, error)
}

// ResolvedImage is a validated local image read.
type ResolvedImage struct {
	// Path is the resolved absolute path.
	Path string

	// MimeType is derived from the file extension.
	MimeType string

	// Data holds the raw file bytes.
	Data []byte
}

// Base64 returns the standard-encoded image bytes.
func (r *ResolvedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Data)
}
