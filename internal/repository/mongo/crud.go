package mongo

import (
	"context"
	"fmt"

	"kptshop/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setIf adds key to a $set document when the patch field is present
func setIf[T any](set bson.M, key string, value *T) {
	if value != nil {
		set[key] = *value
	}
}

// newestFirst is the listing order of gallery, images and inventory
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (c collection) insert(ctx context.Context, kind string, doc any) (string, error) {
	coll, err := c.get(ctx)
	if err != nil {
		return "", err
	}

	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", kind, err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// findByID decodes the document with the given id into dest
func (c collection) findByID(ctx context.Context, kind, id string, dest any) error {
	oid, ok := parseID(id)
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	coll, err := c.get(ctx)
	if err != nil {
		return err
	}

	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(dest); err != nil {
		if isNoDocumentsError(err) {
			return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		return fmt.Errorf("get %s: %w", kind, err)
	}
	return nil
}

// findAll decodes every document matching filter, in sort order, into dest
func (c collection) findAll(ctx context.Context, kind string, filter any, sort bson.D, dest any) error {
	coll, err := c.get(ctx)
	if err != nil {
		return err
	}

	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return fmt.Errorf("list %s: %w", kind, err)
	}
	if err := cursor.All(ctx, dest); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	return nil
}

func (c collection) count(ctx context.Context, kind string, filter any, opts ...*options.CountOptions) (int64, error) {
	coll, err := c.get(ctx)
	if err != nil {
		return 0, err
	}

	n, err := coll.CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	return n, nil
}

// updateByID applies $set to one document and decodes the result into dest.
// Fields not named in set are left untouched, including ones this service
// does not model.
func (c collection) updateByID(ctx context.Context, kind, id string, set bson.M, dest any) error {
	oid, ok := parseID(id)
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	coll, err := c.get(ctx)
	if err != nil {
		return err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(dest); err != nil {
		if isNoDocumentsError(err) {
			return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		return fmt.Errorf("update %s: %w", kind, err)
	}
	return nil
}

func (c collection) deleteByID(ctx context.Context, kind, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}

	coll, err := c.get(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
