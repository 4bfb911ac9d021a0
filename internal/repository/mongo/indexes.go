package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpecs lists the indexes each collection needs. Category names are
// unique; everything else serves a listing filter or sort. Indexes keep the
// server's default names so an existing name_1 index on a live database
// is recognized rather than rejected as a conflicting definition.
func indexSpecs(names *CollectionNames) map[string][]mongo.IndexModel {
	newest := mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}

	return map[string][]mongo.IndexModel{
		names.Categories: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		names.Folders: {
			{Keys: bson.D{{Key: "parent", Value: 1}, {Key: "name", Value: 1}}},
		},
		names.Gallery: {
			newest,
			{Keys: bson.D{{Key: "folder", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		names.Images: {
			newest,
			{Keys: bson.D{{Key: "folder", Value: 1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		},
		names.Inventory: {
			newest,
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
	}
}

// EnsureIndexes creates any missing index. Creating an existing index is a
// no-op, so this is safe to run on every deploy.
func EnsureIndexes(ctx context.Context, conn *Connection, names *CollectionNames, logger *slog.Logger) error {
	db, err := conn.EnsureConnected(ctx)
	if err != nil {
		return err
	}

	specs := indexSpecs(names)
	for _, coll := range names.All() {
		created, err := db.Collection(coll).Indexes().CreateMany(ctx, specs[coll])
		if err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
		logger.Info("indexes ensured", "collection", coll, "indexes", created)
	}
	return nil
}

// DropAll drops every collection this service owns
func DropAll(ctx context.Context, conn *Connection, names *CollectionNames, logger *slog.Logger) error {
	db, err := conn.EnsureConnected(ctx)
	if err != nil {
		return err
	}

	for _, coll := range names.All() {
		if err := db.Collection(coll).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", coll, err)
		}
		logger.Info("collection dropped", "collection", coll)
	}
	return nil
}
