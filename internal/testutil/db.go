// Package testutil provides utilities for testing: content stores,
// clocks, request helpers and template boot.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lunicar/lunicar/internal/app/store/collection"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// TestDBURI is the MongoDB connection string for tests.
	TestDBURI = "mongodb://localhost:27017"
	// TestDBName is the database name prefix used for tests.
	TestDBName = "lunicar_test"
)

// NewDB returns a content store backed by JSON files in a temporary
// directory that is removed when the test ends.
func NewDB(t *testing.T) *collection.DB {
	t.Helper()
	b, err := collection.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file backend: %v", err)
	}
	return collection.NewDB(b)
}

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// getClient returns a shared MongoDB client for all tests.
func getClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		client, clientErr = mongo.Connect(ctx, options.Client().
			ApplyURI(TestDBURI).
			SetConnectTimeout(3*time.Second).
			SetServerSelectionTimeout(3*time.Second))
		if clientErr != nil {
			return
		}
		clientErr = client.Ping(ctx, nil)
	})
	return client, clientErr
}

// NewMongoDatabase returns a fresh MongoDB database, or skips the test
// when no local server is reachable. The database is dropped when the
// test completes.
func NewMongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	client, err := getClient()
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	db := client.Database(fmt.Sprintf("%s_%s", TestDBName, sanitizeTestName(t.Name())))
	ctx, cancel := TestContext()
	defer cancel()
	if err := db.Drop(ctx); err != nil {
		t.Fatalf("failed to drop test database: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database on cleanup: %v", err)
		}
	})
	return db
}

// NewMongoDB returns a content store backed by NewMongoDatabase.
func NewMongoDB(t *testing.T) *collection.DB {
	t.Helper()
	return collection.NewDB(collection.NewMongoBackend(NewMongoDatabase(t)))
}

// sanitizeTestName converts a test name to a valid database name suffix.
// MongoDB limits database names to 63 characters.
func sanitizeTestName(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	const maxLen = 63 - len(TestDBName) - 1
	if len(result) > maxLen {
		result = result[:maxLen]
	}
	return string(result)
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
