package mongo

import (
	"context"
	"fmt"
	"time"

	"kptshop/internal/domain"
	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newCategoryDocument(c *models.Category) categoryDocument {
	return categoryDocument{
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d *categoryDocument) toModel() models.Category {
	return models.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoCategoryRepository relies on the unique name index for conflicts
type MongoCategoryRepository struct {
	collection
}

func NewCategoryRepository(config *RepositoryConfig) repositories.CategoryRepository {
	return &MongoCategoryRepository{collection: newCollection(config, config.Collections.Categories)}
}

func (r *MongoCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	id, err := r.insert(ctx, "category", newCategoryDocument(category))
	if err != nil {
		if isDuplicateKeyError(err) {
			return r.conflict(ctx, category.Name)
		}
		return err
	}
	category.ID = id
	return nil
}

func (r *MongoCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var doc categoryDocument
	if err := r.findByID(ctx, "category", id, &doc); err != nil {
		return nil, err
	}
	category := doc.toModel()
	return &category, nil
}

func (r *MongoCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var docs []categoryDocument
	if err := r.findAll(ctx, "categories", bson.M{}, bson.D{{Key: "name", Value: 1}}, &docs); err != nil {
		return nil, err
	}

	categories := make([]models.Category, len(docs))
	for i := range docs {
		categories[i] = docs[i].toModel()
	}
	return categories, nil
}

func (r *MongoCategoryRepository) Update(ctx context.Context, id string, patch repositories.CategoryPatch) (*models.Category, error) {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	var doc categoryDocument
	if err := r.updateByID(ctx, "category", id, set, &doc); err != nil {
		if isDuplicateKeyError(err) && patch.Name != nil {
			return nil, r.conflict(ctx, *patch.Name)
		}
		return nil, err
	}
	category := doc.toModel()
	return &category, nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "category", id)
}

// conflict builds the error for a duplicate name, naming the existing
// category when it can be found
func (r *MongoCategoryRepository) conflict(ctx context.Context, name string) error {
	conflict := &domain.ConflictError{
		Message:      fmt.Sprintf("category %q already exists", name),
		ResourceType: "category",
	}

	coll, err := r.get(ctx)
	if err != nil {
		return conflict
	}
	var existing categoryDocument
	if err := coll.FindOne(ctx, bson.M{"name": name}).Decode(&existing); err == nil {
		conflict.ResourceID = existing.ID.Hex()
	}
	return conflict
}
