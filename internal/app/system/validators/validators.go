// internal/app/system/validators/validators.go

// Package validators creates the MongoDB content collection and attaches
// its JSON-Schema validator.
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the content collection if missing and tries to attach
// its validator. Servers without collMod support are skipped with a log
// line.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	name := collection.MongoCollectionName
	if _, err := ensureCollection(ctx, db, name, logger); err != nil {
		return errors.New(name + ": " + err.Error())
	}
	if err := setValidator(ctx, db, name, contentSchema(), logger); err != nil {
		if isNoSuchCommand(err) || isNotImplemented(err) {
			logger.Info("validator skipped (unsupported)", zap.String("collection", name))
			return nil
		}
		return errors.New(name + ": " + err.Error())
	}
	return nil
}

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection reports created==true only when it actually created
// the collection.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, logger *zap.Logger) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		logger.Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	logger.Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M, logger *zap.Logger) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	logger.Info("validator ensured", zap.String("collection", name))
	return nil
}

func isNamespaceExistsErr(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 48 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 59 {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 115 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

// contentSchema matches the documents written by collection.MongoBackend:
// the collection name as _id and the JSON array as a string.
func contentSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"_id", "data", "updated_at"},
			"properties": bson.M{
				"_id":        bson.M{"bsonType": "string", "enum": contentNames()},
				"data":       bson.M{"bsonType": "string", "pattern": "^\\s*\\["},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func contentNames() bson.A {
	out := make(bson.A, 0, len(models.Collections))
	for _, n := range models.Collections {
		out = append(out, n)
	}
	return out
}
