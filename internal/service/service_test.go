package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"
	"testing"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
)

// fakeMedia records calls and hands back Cloudinary-shaped assets
type fakeMedia struct {
	mu         sync.Mutex
	uploadErr  error
	destroyErr error
	uploads    []services.UploadOptions
	destroyed  []string
}

func (f *fakeMedia) Upload(ctx context.Context, content io.Reader, opts services.UploadOptions) (*services.HostedAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploads = append(f.uploads, opts)
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	ext := path.Ext(opts.Filename)
	publicID := path.Join(opts.Folder, strings.TrimSuffix(opts.Filename, ext))
	return &services.HostedAsset{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/" + publicID + ext,
		PublicID: publicID,
		Width:    640,
		Height:   480,
		Format:   strings.TrimPrefix(ext, "."),
		Bytes:    int64(len(data)),
	}, nil
}

func (f *fakeMedia) Destroy(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.destroyed = append(f.destroyed, publicID)
	return f.destroyErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingImageRepo fails inserts, for exercising upload compensation
type failingImageRepo struct {
	repositories.ImageRepository
}

func (r failingImageRepo) Create(ctx context.Context, image *models.Image) error {
	return errors.New("write concern timeout")
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError naming %q, got %v", field, err)
	}
	if _, ok := verr.Fields[field]; !ok {
		t.Errorf("ValidationError fields = %v, want %q", verr.Fields, field)
	}
}

func ptr[T any](v T) *T { return &v }
