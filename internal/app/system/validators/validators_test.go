package validators

import (
	"testing"
	"time"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.NewMongoDatabase(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("EnsureAll() run %d error = %v", i+1, err)
		}
	}
	exists, err := collectionExists(ctx, db, collection.MongoCollectionName)
	if err != nil || !exists {
		t.Fatalf("content collection exists = %v, err = %v", exists, err)
	}
}

func TestContentSchema_RejectsUnknownCollection(t *testing.T) {
	db := testutil.NewMongoDatabase(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}

	backend := collection.NewMongoBackend(db)
	if err := backend.Save(ctx, "demandes", []byte("[]")); err != nil {
		t.Errorf("Save(demandes) error = %v", err)
	}
	_, err := db.Collection(collection.MongoCollectionName).InsertOne(ctx, bson.M{"_id": "users", "data": "[]", "updated_at": time.Now()})
	if err == nil {
		t.Error("document for an unknown collection was accepted")
	}
}
