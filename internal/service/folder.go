package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
)

type folderService struct {
	folderRepo repositories.FolderRepository
	imageRepo  repositories.ImageRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	imageRepo repositories.ImageRepository,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		imageRepo:  imageRepo,
		logger:     logger,
	}
}

// CreateFolder creates a new folder.
// The path is the parent's path plus the name, or just the name at root.
// A parent id that resolves to nothing is not an error: the folder is
// created at root instead.
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && strings.TrimSpace(*req.ParentID) == "" {
		req.ParentID = nil
	}

	if err := validateCreateFolder(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folder := &models.Folder{
		Name:      req.Name,
		Path:      req.Name,
		Order:     req.Order,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *req.ParentID)
		switch {
		case err == nil:
			folder.ParentID = &parent.ID
			folder.Path = childPath(parent.Path, folder.Name)
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("parent folder not found, creating at root",
				"parent_id", *req.ParentID,
				"name", folder.Name,
			)
		default:
			return nil, fmt.Errorf("resolve parent folder: %w", err)
		}
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
		"path", folder.Path,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// ListFolders lists one level of the tree. An unknown parent simply has no
// children.
func (s *folderService) ListFolders(ctx context.Context, parentID *string) ([]models.Folder, error) {
	if parentID != nil && strings.TrimSpace(*parentID) == "" {
		parentID = nil
	}

	folders, err := s.folderRepo.ListChildren(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

// DeleteFolder deletes an empty folder. Folders that still hold subfolders
// or images are refused with a conflict; descendants are never removed
// implicitly.
func (s *folderService) DeleteFolder(ctx context.Context, id string) error {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.folderRepo.HasChildren(ctx, folder.ID)
	if err != nil {
		return fmt.Errorf("check child folders: %w", err)
	}
	if hasChildren {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("folder %q still contains folders", folder.Path),
			ResourceType: "folder",
			ResourceID:   folder.ID,
		}
	}

	images, err := s.imageRepo.CountInFolder(ctx, folder.ID)
	if err != nil {
		return fmt.Errorf("check folder images: %w", err)
	}
	if images > 0 {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("folder %q still contains %d images", folder.Path, images),
			ResourceType: "folder",
			ResourceID:   folder.ID,
		}
	}

	if err := s.folderRepo.Delete(ctx, folder.ID); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folder.ID, "path", folder.Path)
	return nil
}

// childPath materializes the path of a folder below parentPath
func childPath(parentPath, name string) string {
	return parentPath + "/" + name
}
