package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
)

type imageService struct {
	imageRepo    repositories.ImageRepository
	folderRepo   repositories.FolderRepository
	media        services.MediaHost
	uploadFolder string
	logger       *slog.Logger
}

// NewImageService creates a new image service. uploadFolder is the base
// folder on the media host; images filed under a Folder go below it.
func NewImageService(
	imageRepo repositories.ImageRepository,
	folderRepo repositories.FolderRepository,
	media services.MediaHost,
	uploadFolder string,
	logger *slog.Logger,
) services.ImageService {
	return &imageService{
		imageRepo:    imageRepo,
		folderRepo:   folderRepo,
		media:        media,
		uploadFolder: uploadFolder,
		logger:       logger,
	}
}

// UploadImage stores the file on the media host, then records it.
// The two steps are not atomic: when the insert fails the hosted copy is
// destroyed again, best-effort.
func (s *imageService) UploadImage(ctx context.Context, req *services.UploadImageRequest) (*models.Image, error) {
	if req.Content == nil {
		return nil, domain.NewFieldError("file", "cannot be blank")
	}

	name := strings.TrimSpace(req.Filename)
	if name == "" {
		name = "untitled"
	}

	hostFolder := s.uploadFolder
	var (
		folderID *string
		folder   *models.Folder
	)
	if req.FolderID != nil && strings.TrimSpace(*req.FolderID) != "" {
		var err error
		folder, err = s.resolveFolder(ctx, strings.TrimSpace(*req.FolderID))
		if err != nil {
			return nil, err
		}
		folderID = &folder.ID
		hostFolder = path.Join(s.uploadFolder, folder.Path)
	}

	asset, err := s.media.Upload(ctx, req.Content, services.UploadOptions{
		Folder:   hostFolder,
		Filename: name,
	})
	if err != nil {
		return nil, err
	}
	if asset.URL == "" || asset.PublicID == "" {
		return nil, &domain.UpstreamError{
			Service: "media host",
			Op:      "upload",
			Err:     errors.New("response is missing url or public id"),
		}
	}

	now := time.Now().UTC()
	image := &models.Image{
		Name:     name,
		URL:      asset.URL,
		PublicID: asset.PublicID,
		FolderID: folderID,
		Tags:     normalizeTags(req.Tags),
		Metadata: models.ImageMetadata{
			Width:  asset.Width,
			Height: asset.Height,
			Format: asset.Format,
			Size:   asset.Bytes,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := validateImage(image); err != nil {
		destroyHosted(ctx, s.media, s.logger, asset.PublicID, "reason", "invalid image record")
		return nil, err
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		destroyHosted(ctx, s.media, s.logger, asset.PublicID, "reason", "image record not saved")
		return nil, fmt.Errorf("save image: %w", err)
	}
	if folder != nil {
		image.FolderInfo = folder.Ref()
	}

	s.logger.Info("image uploaded",
		"id", image.ID,
		"name", image.Name,
		"public_id", image.PublicID,
		"folder_id", image.FolderID,
		"bytes", image.Metadata.Size,
	)
	return image, nil
}

func (s *imageService) GetImage(ctx context.Context, id string) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachFolders(ctx, []*models.Image{image}); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageService) ListImages(ctx context.Context, filter repositories.ImageFilter) ([]models.Image, error) {
	images, err := s.imageRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	refs := make([]*models.Image, len(images))
	for i := range images {
		refs[i] = &images[i]
	}
	if err := s.attachFolders(ctx, refs); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *imageService) UpdateImage(ctx context.Context, id string, req *services.UpdateImageRequest) (*models.Image, error) {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := repositories.ImagePatch{UpdatedAt: time.Now().UTC()}
	if req.Name != nil {
		image.Name = strings.TrimSpace(*req.Name)
		patch.Name = &image.Name
	}
	if req.Tags != nil {
		image.Tags = normalizeTags(*req.Tags)
		patch.Tags = &image.Tags
	}

	// Tri-state: only touch the folder if the field was present
	if req.Folder.Present {
		if req.Folder.Cleared() {
			image.FolderID = nil
		} else {
			folder, err := s.resolveFolder(ctx, strings.TrimSpace(*req.Folder.Value))
			if err != nil {
				return nil, err
			}
			image.FolderID = &folder.ID
		}
		patch.SetFolder = true
		patch.FolderID = image.FolderID
	}

	if err := validateImage(image); err != nil {
		return nil, err
	}

	image, err = s.imageRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if err := s.attachFolders(ctx, []*models.Image{image}); err != nil {
		return nil, err
	}

	s.logger.Info("image updated", "id", image.ID, "folder_id", image.FolderID)
	return image, nil
}

// DeleteImage destroys the hosted image (best-effort) and then the record
func (s *imageService) DeleteImage(ctx context.Context, id string) error {
	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	destroyHosted(ctx, s.media, s.logger, image.PublicID, "image_id", image.ID)

	if err := s.imageRepo.Delete(ctx, image.ID); err != nil {
		return err
	}

	s.logger.Info("image deleted", "id", image.ID, "public_id", image.PublicID)
	return nil
}

// resolveFolder looks up a folder named by the client; a dangling id is the
// client's mistake, not a missing resource.
func (s *imageService) resolveFolder(ctx context.Context, id string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewFieldError("folder", "does not exist")
		}
		return nil, fmt.Errorf("resolve folder: %w", err)
	}
	return folder, nil
}

// attachFolders fills in FolderInfo, looking each folder up once. An image
// whose folder has since been deleted is returned without one.
func (s *imageService) attachFolders(ctx context.Context, images []*models.Image) error {
	folders := make(map[string]*models.FolderRef)
	for _, image := range images {
		if image.FolderID == nil {
			continue
		}
		id := *image.FolderID
		ref, seen := folders[id]
		if !seen {
			folder, err := s.folderRepo.GetByID(ctx, id)
			switch {
			case err == nil:
				ref = folder.Ref()
			case errors.Is(err, domain.ErrNotFound):
				s.logger.Debug("image folder missing", "image_id", image.ID, "folder_id", id)
			default:
				return fmt.Errorf("load image folder: %w", err)
			}
			folders[id] = ref
		}
		image.FolderInfo = ref
	}
	return nil
}

// normalizeTags trims tags, drops empty ones and duplicates, keeping order
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
