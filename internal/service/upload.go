package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"kptshop/internal/domain"
	"kptshop/internal/domain/services"
)

type uploadService struct {
	media        services.MediaHost
	uploadFolder string
	logger       *slog.Logger
}

// NewUploadService creates the persistence-free upload service
func NewUploadService(mediaHost services.MediaHost, uploadFolder string, logger *slog.Logger) services.UploadService {
	return &uploadService{media: mediaHost, uploadFolder: uploadFolder, logger: logger}
}

func (s *uploadService) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if content == nil {
		return "", domain.NewFieldError("file", "cannot be blank")
	}

	asset, err := s.media.Upload(ctx, content, services.UploadOptions{
		Folder:   s.uploadFolder,
		Filename: strings.TrimSpace(filename),
	})
	if err != nil {
		return "", err
	}
	if asset.URL == "" {
		return "", &domain.UpstreamError{Service: "media host", Op: "upload", Err: errors.New("response is missing url")}
	}

	s.logger.Info("file uploaded", "filename", filename, "public_id", asset.PublicID, "bytes", asset.Bytes)
	return asset.URL, nil
}
