package mongo

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type galleryDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Detail    string             `bson:"detail"`
	ImageURL  string             `bson:"imageUrl"`
	Folder    string             `bson:"folder"`
	PublicID  string             `bson:"publicId,omitempty"`
	Width     int                `bson:"width,omitempty"`
	Height    int                `bson:"height,omitempty"`
	Format    string             `bson:"format,omitempty"`
	Bytes     int64              `bson:"bytes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newGalleryDocument(g *models.GalleryImage) galleryDocument {
	return galleryDocument{
		Name:      g.Name,
		Detail:    g.Detail,
		ImageURL:  g.ImageURL,
		Folder:    g.Folder,
		PublicID:  g.PublicID,
		Width:     g.Width,
		Height:    g.Height,
		Format:    g.Format,
		Bytes:     g.Bytes,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func (d *galleryDocument) toModel() models.GalleryImage {
	return models.GalleryImage{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Detail:    d.Detail,
		ImageURL:  d.ImageURL,
		Folder:    d.Folder,
		PublicID:  d.PublicID,
		Width:     d.Width,
		Height:    d.Height,
		Format:    d.Format,
		Bytes:     d.Bytes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoGalleryRepository struct {
	collection
}

func NewGalleryRepository(config *RepositoryConfig) repositories.GalleryRepository {
	return &MongoGalleryRepository{collection: newCollection(config, config.Collections.Gallery)}
}

func (r *MongoGalleryRepository) Create(ctx context.Context, image *models.GalleryImage) error {
	id, err := r.insert(ctx, "gallery image", newGalleryDocument(image))
	if err != nil {
		return err
	}
	image.ID = id
	return nil
}

func (r *MongoGalleryRepository) GetByID(ctx context.Context, id string) (*models.GalleryImage, error) {
	var doc galleryDocument
	if err := r.findByID(ctx, "gallery image", id, &doc); err != nil {
		return nil, err
	}
	image := doc.toModel()
	return &image, nil
}

func (r *MongoGalleryRepository) List(ctx context.Context, filter repositories.GalleryFilter) ([]models.GalleryImage, error) {
	query := bson.M{}
	if filter.Folder != "" {
		query["folder"] = filter.Folder
	}

	var docs []galleryDocument
	if err := r.findAll(ctx, "gallery images", query, newestFirst, &docs); err != nil {
		return nil, err
	}

	images := make([]models.GalleryImage, len(docs))
	for i := range docs {
		images[i] = docs[i].toModel()
	}
	return images, nil
}

func (r *MongoGalleryRepository) Update(ctx context.Context, id string, patch repositories.GalleryPatch) (*models.GalleryImage, error) {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	setIf(set, "name", patch.Name)
	setIf(set, "detail", patch.Detail)
	setIf(set, "imageUrl", patch.ImageURL)
	setIf(set, "folder", patch.Folder)
	setIf(set, "publicId", patch.PublicID)
	setIf(set, "width", patch.Width)
	setIf(set, "height", patch.Height)
	setIf(set, "format", patch.Format)
	setIf(set, "bytes", patch.Bytes)

	var doc galleryDocument
	if err := r.updateByID(ctx, "gallery image", id, set, &doc); err != nil {
		return nil, err
	}
	image := doc.toModel()
	return &image, nil
}

func (r *MongoGalleryRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "gallery image", id)
}
