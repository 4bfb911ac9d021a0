package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
	"kptshop/internal/domain/services"
	"kptshop/internal/media"
)

type inventoryService struct {
	repo   repositories.InventoryRepository
	media  services.MediaHost
	logger *slog.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo repositories.InventoryRepository, mediaHost services.MediaHost, logger *slog.Logger) services.InventoryService {
	return &inventoryService{repo: repo, media: mediaHost, logger: logger}
}

func (s *inventoryService) CreateItem(ctx context.Context, req *services.CreateItemRequest) (*models.InventoryItem, error) {
	req.Name = strings.TrimSpace(req.Name)

	if err := validateCreateItem(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &models.InventoryItem{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Quantity:      *req.Quantity,
		ImageURL:      strings.TrimSpace(req.ImageURL),
		ImagePublicID: strings.TrimSpace(req.ImagePublicID),
		Category:      strings.TrimSpace(req.Category),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("inventory item created",
		"id", item.ID,
		"name", item.Name,
		"category", item.Category,
	)
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *inventoryService) ListItems(ctx context.Context, filter repositories.InventoryFilter) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, req *services.UpdateItemRequest) (*models.InventoryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := repositories.InventoryPatch{UpdatedAt: time.Now().UTC()}
	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
		patch.Name = &item.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
		patch.Description = &item.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
		patch.Price = &item.Price
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
		patch.Quantity = &item.Quantity
	}
	if req.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*req.ImageURL)
		patch.ImageURL = &item.ImageURL
		// A new picture invalidates the old public id unless one came with it
		if req.ImagePublicID == nil {
			item.ImagePublicID = ""
			patch.ImagePublicID = &item.ImagePublicID
		}
	}
	if req.ImagePublicID != nil {
		item.ImagePublicID = strings.TrimSpace(*req.ImagePublicID)
		patch.ImagePublicID = &item.ImagePublicID
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
		patch.Category = &item.Category
	}

	if err := validateItem(item); err != nil {
		return nil, err
	}

	item, err = s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory item updated", "id", item.ID, "name", item.Name)
	return item, nil
}

func (s *inventoryService) UpdateItemCategory(ctx context.Context, req *services.UpdateItemCategoryRequest) (*models.InventoryItem, error) {
	req.ItemID = strings.TrimSpace(req.ItemID)
	req.Category = strings.TrimSpace(req.Category)

	if err := validateItemCategory(req); err != nil {
		return nil, err
	}

	item, err := s.repo.SetCategory(ctx, req.ItemID, req.Category)
	if err != nil {
		return nil, err
	}

	s.logger.Info("inventory item recategorized", "id", item.ID, "category", item.Category)
	return item, nil
}

// DeleteItem destroys the item's hosted image (best-effort) and then the
// record. Items that predate image_public_id fall back to parsing the URL.
func (s *inventoryService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	publicID := item.ImagePublicID
	if publicID == "" && item.ImageURL != "" {
		var ok bool
		if publicID, ok = media.PublicIDFromURL(item.ImageURL); !ok {
			s.logger.Info("image url is not hosted, skipping image delete",
				"item_id", item.ID,
				"image_url", item.ImageURL,
			)
		}
	}
	destroyHosted(ctx, s.media, s.logger, publicID, "item_id", item.ID)

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return err
	}

	s.logger.Info("inventory item deleted", "id", item.ID, "name", item.Name)
	return nil
}
