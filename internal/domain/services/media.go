package services

import (
	"context"
	"io"
)

// MediaHost stores binary images on an external host. Implementations return
// *domain.UpstreamError when the host fails.
type MediaHost interface {
	Upload(ctx context.Context, content io.Reader, opts UploadOptions) (*HostedAsset, error)
	Destroy(ctx context.Context, publicID string) error
}

type UploadOptions struct {
	Folder   string
	Filename string
}

// HostedAsset is what the media host reports back about a stored file
type HostedAsset struct {
	URL      string
	PublicID string
	Width    int
	Height   int
	Format   string
	Bytes    int64
}

// UploadService is the persistence-free upload used by the inventory form
type UploadService interface {
	// Upload sends the file to the media host and returns its URL
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}
