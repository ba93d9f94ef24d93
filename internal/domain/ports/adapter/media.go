package adapter

import (
	"context"
	"io"
)

// UploadResult mirrors what object stores return for a stored asset.
type UploadResult struct {
	URL      string
	PublicID string
	Format   string
	Width    int
	Height   int
	Bytes    int64
}

// MediaStore is the port for the external object/CDN store that holds
// property media. Storage itself is an external collaborator; only this
// surface is consumed.
type MediaStore interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}
