package mongo

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type inventoryDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Price         float64            `bson:"price"`
	Quantity      int                `bson:"quantity"`
	ImageURL      string             `bson:"image_url"`
	ImagePublicID string             `bson:"image_public_id,omitempty"`
	Category      string             `bson:"category"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func newInventoryDocument(item *models.InventoryItem) inventoryDocument {
	return inventoryDocument{
		Name:          item.Name,
		Description:   item.Description,
		Price:         item.Price,
		Quantity:      item.Quantity,
		ImageURL:      item.ImageURL,
		ImagePublicID: item.ImagePublicID,
		Category:      item.Category,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

func (d *inventoryDocument) toModel() models.InventoryItem {
	return models.InventoryItem{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Price:         d.Price,
		Quantity:      d.Quantity,
		ImageURL:      d.ImageURL,
		ImagePublicID: d.ImagePublicID,
		Category:      d.Category,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type MongoInventoryRepository struct {
	collection
}

func NewInventoryRepository(config *RepositoryConfig) repositories.InventoryRepository {
	return &MongoInventoryRepository{collection: newCollection(config, config.Collections.Inventory)}
}

func (r *MongoInventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	id, err := r.insert(ctx, "inventory item", newInventoryDocument(item))
	if err != nil {
		return err
	}
	item.ID = id
	return nil
}

func (r *MongoInventoryRepository) GetByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var doc inventoryDocument
	if err := r.findByID(ctx, "inventory item", id, &doc); err != nil {
		return nil, err
	}
	item := doc.toModel()
	return &item, nil
}

func (r *MongoInventoryRepository) List(ctx context.Context, filter repositories.InventoryFilter) ([]models.InventoryItem, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	var docs []inventoryDocument
	if err := r.findAll(ctx, "inventory", query, newestFirst, &docs); err != nil {
		return nil, err
	}

	items := make([]models.InventoryItem, len(docs))
	for i := range docs {
		items[i] = docs[i].toModel()
	}
	return items, nil
}

func (r *MongoInventoryRepository) Update(ctx context.Context, id string, patch repositories.InventoryPatch) (*models.InventoryItem, error) {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	setIf(set, "name", patch.Name)
	setIf(set, "description", patch.Description)
	setIf(set, "price", patch.Price)
	setIf(set, "quantity", patch.Quantity)
	setIf(set, "image_url", patch.ImageURL)
	setIf(set, "image_public_id", patch.ImagePublicID)
	setIf(set, "category", patch.Category)

	return r.update(ctx, id, set)
}

// SetCategory touches only category and updatedAt, in one round trip
func (r *MongoInventoryRepository) SetCategory(ctx context.Context, id, category string) (*models.InventoryItem, error) {
	return r.update(ctx, id, bson.M{
		"category":  category,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *MongoInventoryRepository) update(ctx context.Context, id string, set bson.M) (*models.InventoryItem, error) {
	var doc inventoryDocument
	if err := r.updateByID(ctx, "inventory item", id, set, &doc); err != nil {
		return nil, err
	}
	item := doc.toModel()
	return &item, nil
}

func (r *MongoInventoryRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "inventory item", id)
}
