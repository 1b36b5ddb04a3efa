package indexes

import (
	"testing"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestKeySig(t *testing.T) {
	got := keySig(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})
	if got != "updated_at:-1, _id:1" {
		t.Errorf("keySig() = %q", got)
	}
}

func TestSameBoolPtr(t *testing.T) {
	yes, no := true, false
	if !sameBoolPtr(nil, &no) || sameBoolPtr(nil, &yes) || !sameBoolPtr(&yes, &yes) {
		t.Error("sameBoolPtr mismatch")
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.NewMongoDatabase(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("EnsureAll() run %d error = %v", i+1, err)
		}
	}

	existing, err := listIndexes(ctx, db.Collection(collection.MongoCollectionName))
	if err != nil {
		t.Fatal(err)
	}
	if ex, ok := existing["updated_at:-1"]; !ok || ex.Name != "idx_content_updated_at" {
		t.Errorf("indexes = %+v", existing)
	}
}
