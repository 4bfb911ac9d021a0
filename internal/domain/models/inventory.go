package models

import "time"

type InventoryItem struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	ImageURL      string    `json:"image_url"`
	ImagePublicID string    `json:"image_public_id,omitempty"`
	Category      string    `json:"category"` // free text, not a Category reference
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
