package mongo

import (
	"context"
	"time"

	"kptshop/internal/domain/models"
	"kptshop/internal/domain/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type imageDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Name      string              `bson:"name"`
	URL       string              `bson:"url"`
	PublicID  string              `bson:"public_id"`
	Folder    *primitive.ObjectID `bson:"folder"`
	Tags      []string            `bson:"tags"`
	Metadata  imageMetadata       `bson:"metadata"`
	CreatedAt time.Time           `bson:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

type imageMetadata struct {
	Width  int    `bson:"width"`
	Height int    `bson:"height"`
	Format string `bson:"format"`
	Size   int64  `bson:"size"`
}

func newImageDocument(img *models.Image) imageDocument {
	tags := img.Tags
	if tags == nil {
		tags = []string{}
	}
	return imageDocument{
		Name:     img.Name,
		URL:      img.URL,
		PublicID: img.PublicID,
		Folder:   optionalID(img.FolderID),
		Tags:     tags,
		Metadata: imageMetadata{
			Width:  img.Metadata.Width,
			Height: img.Metadata.Height,
			Format: img.Metadata.Format,
			Size:   img.Metadata.Size,
		},
		CreatedAt: img.CreatedAt,
		UpdatedAt: img.UpdatedAt,
	}
}

func (d *imageDocument) toModel() models.Image {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Image{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		URL:      d.URL,
		PublicID: d.PublicID,
		FolderID: optionalHex(d.Folder),
		Tags:     tags,
		Metadata: models.ImageMetadata{
			Width:  d.Metadata.Width,
			Height: d.Metadata.Height,
			Format: d.Metadata.Format,
			Size:   d.Metadata.Size,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type MongoImageRepository struct {
	collection
}

func NewImageRepository(config *RepositoryConfig) repositories.ImageRepository {
	return &MongoImageRepository{collection: newCollection(config, config.Collections.Images)}
}

func (r *MongoImageRepository) Create(ctx context.Context, image *models.Image) error {
	id, err := r.insert(ctx, "image", newImageDocument(image))
	if err != nil {
		return err
	}
	image.ID = id
	return nil
}

func (r *MongoImageRepository) GetByID(ctx context.Context, id string) (*models.Image, error) {
	var doc imageDocument
	if err := r.findByID(ctx, "image", id, &doc); err != nil {
		return nil, err
	}
	image := doc.toModel()
	return &image, nil
}

func (r *MongoImageRepository) List(ctx context.Context, filter repositories.ImageFilter) ([]models.Image, error) {
	query := bson.M{}
	if filter.FolderID != "" {
		oid, ok := parseID(filter.FolderID)
		if !ok {
			return []models.Image{}, nil
		}
		query["folder"] = oid
	}
	if filter.Tag != "" {
		// matches any element of the tags array
		query["tags"] = filter.Tag
	}

	var docs []imageDocument
	if err := r.findAll(ctx, "images", query, newestFirst, &docs); err != nil {
		return nil, err
	}

	images := make([]models.Image, len(docs))
	for i := range docs {
		images[i] = docs[i].toModel()
	}
	return images, nil
}

func (r *MongoImageRepository) Update(ctx context.Context, id string, patch repositories.ImagePatch) (*models.Image, error) {
	set := bson.M{"updatedAt": patch.UpdatedAt}
	setIf(set, "name", patch.Name)
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	if patch.SetFolder {
		set["folder"] = optionalID(patch.FolderID)
	}

	var doc imageDocument
	if err := r.updateByID(ctx, "image", id, set, &doc); err != nil {
		return nil, err
	}
	image := doc.toModel()
	return &image, nil
}

func (r *MongoImageRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "image", id)
}

func (r *MongoImageRepository) CountInFolder(ctx context.Context, folderID string) (int64, error) {
	oid, ok := parseID(folderID)
	if !ok {
		return 0, nil
	}
	return r.count(ctx, "folder images", bson.M{"folder": oid})
}
