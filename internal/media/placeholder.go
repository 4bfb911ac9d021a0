package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"kptshop/internal/domain/services"

	"github.com/google/uuid"
)

// Placeholder is the dev-mode media host: it swallows uploads and hands back
// a placeholder image URL, so the API is usable without Cloudinary
// credentials.
type Placeholder struct {
	logger *slog.Logger
}

func NewPlaceholder(logger *slog.Logger) *Placeholder {
	return &Placeholder{logger: logger}
}

func (p *Placeholder) Upload(ctx context.Context, content io.Reader, opts services.UploadOptions) (*services.HostedAsset, error) {
	n, err := io.Copy(io.Discard, content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	name := strings.TrimSuffix(opts.Filename, path.Ext(opts.Filename))
	if name == "" {
		name = "image"
	}
	publicID := path.Join(opts.Folder, "dev-"+uuid.NewString())

	p.logger.Debug("placeholder upload", "public_id", publicID, "bytes", n)

	return &services.HostedAsset{
		URL:      "https://placehold.co/600x400?text=" + url.QueryEscape(name),
		PublicID: publicID,
		Width:    600,
		Height:   400,
		Format:   strings.TrimPrefix(path.Ext(opts.Filename), "."),
		Bytes:    n,
	}, nil
}

func (p *Placeholder) Destroy(ctx context.Context, publicID string) error {
	p.logger.Debug("placeholder destroy", "public_id", publicID)
	return nil
}
