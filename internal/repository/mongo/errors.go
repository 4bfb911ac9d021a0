package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// isDuplicateKeyError checks if error is a unique index violation
func isDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// isNoDocumentsError checks if error is a "no documents" error
func isNoDocumentsError(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// parseID converts a hex id. Anything that is not an ObjectID cannot name a
// stored document, so callers report it as not found.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func optionalID(id *string) *primitive.ObjectID {
	if id == nil {
		return nil
	}
	oid, ok := parseID(*id)
	if !ok {
		return nil
	}
	return &oid
}

func optionalHex(oid *primitive.ObjectID) *string {
	if oid == nil {
		return nil
	}
	hex := oid.Hex()
	return &hex
}
