package mongo

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type folderDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Name      string              `bson:"name"`
	Parent    *primitive.ObjectID `bson:"parent"` // nil = root
	Path      string              `bson:"path"`
	Order     int                 `bson:"order"`
	CreatedAt time.Time           `bson:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

func (d *folderDocument) toModel() models.Folder {
	return models.Folder{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		ParentID:  optionalHex(d.Parent),
		Path:      d.Path,
		Order:     d.Order,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoFolderRepository implements the FolderRepository interface
type MongoFolderRepository struct {
	collection
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &MongoFolderRepository{collection: newCollection(config, config.Collections.Folders)}
}

// Create creates a new folder
func (r *MongoFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	id, err := r.insert(ctx, "folder", folderDocument{
		Name:      folder.Name,
		Parent:    optionalID(folder.ParentID),
		Path:      folder.Path,
		Order:     folder.Order,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	})
	if err != nil {
		return err
	}
	folder.ID = id
	return nil
}

// GetByID retrieves a folder by ID
func (r *MongoFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	var doc folderDocument
	if err := r.findByID(ctx, "folder", id, &doc); err != nil {
		return nil, err
	}
	folder := doc.toModel()
	return &folder, nil
}

// ListChildren lists the immediate children of parentID, ordered by name.
// A null parent matches root folders.
func (r *MongoFolderRepository) ListChildren(ctx context.Context, parentID *string) ([]models.Folder, error) {
	filter := bson.M{"parent": nil}
	if parentID != nil {
		oid, ok := parseID(*parentID)
		if !ok {
			return []models.Folder{}, nil
		}
		filter = bson.M{"parent": oid}
	}

	var docs []folderDocument
	if err := r.findAll(ctx, "folders", filter, bson.D{{Key: "name", Value: 1}}, &docs); err != nil {
		return nil, err
	}

	folders := make([]models.Folder, len(docs))
	for i := range docs {
		folders[i] = docs[i].toModel()
	}
	return folders, nil
}

// HasChildren reports whether any folder names id as its parent
func (r *MongoFolderRepository) HasChildren(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}

	n, err := r.count(ctx, "child folders", bson.M{"parent": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete deletes a folder
func (r *MongoFolderRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "folder", id)
}
