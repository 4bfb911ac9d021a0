package services

import (
	"context"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"
)

// InventoryService handles inventory business logic
type InventoryService interface {
	CreateItem(ctx context.Context, req *CreateItemRequest) (*models.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*models.InventoryItem, error)
	ListItems(ctx context.Context, filter repositories.InventoryFilter) ([]models.InventoryItem, error)
	UpdateItem(ctx context.Context, id string, req *UpdateItemRequest) (*models.InventoryItem, error)
	// UpdateItemCategory sets only the category of an item
	UpdateItemCategory(ctx context.Context, req *UpdateItemCategoryRequest) (*models.InventoryItem, error)
	// DeleteItem removes the record; the hosted image is destroyed best-effort
	DeleteItem(ctx context.Context, id string) error
}

type CreateItemRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	Quantity      *int     `json:"quantity"`
	ImageURL      string   `json:"image_url"`
	ImagePublicID string   `json:"image_public_id"`
	Category      string   `json:"category"`
}

// UpdateItemRequest is a partial update; nil fields are left unchanged
type UpdateItemRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Quantity      *int     `json:"quantity,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
	ImagePublicID *string  `json:"image_public_id,omitempty"`
	Category      *string  `json:"category,omitempty"`
}

type UpdateItemCategoryRequest struct {
	ItemID   string `json:"itemId"`
	Category string `json:"category"`
}
