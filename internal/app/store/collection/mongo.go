// internal/app/store/collection/mongo.go
package collection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoCollectionName is the Mongo collection holding one document per
// content collection.
const MongoCollectionName = "content"

// MaxMongoPayload bounds the JSON of one collection: MongoDB caps a
// document at 16 MB, less room for _id and updated_at.
const MaxMongoPayload = 16<<20 - 16<<10

// TooLargeError is returned when a collection outgrows one document.
type TooLargeError struct {
	Name string
	Size int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("collection %q is %d bytes, over the %d byte document limit", e.Name, e.Size, MaxMongoPayload)
}

// mongoDoc is the stored shape: the whole JSON array kept as a string so the
// payload round-trips byte for byte with the file backend.
type mongoDoc struct {
	Name      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores collections in MongoDB.
type MongoBackend struct {
	client *mongo.Client
	c      *mongo.Collection
}

// NewMongoBackend returns a backend over db.
func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{
		client: db.Client(),
		c:      db.Collection(MongoCollectionName),
	}
}

// Kind implements Backend.
func (b *MongoBackend) Kind() string {
	return "mongo"
}

// Load implements Backend.
func (b *MongoBackend) Load(ctx context.Context, name string) ([]byte, error) {
	var doc mongoDoc
	err := b.c.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

// Save implements Backend with a single-document upsert, which MongoDB
// applies atomically.
func (b *MongoBackend) Save(ctx context.Context, name string, data []byte) error {
	if len(data) > MaxMongoPayload {
		return &TooLargeError{Name: name, Size: len(data)}
	}
	doc := mongoDoc{Name: name, Data: string(data), UpdatedAt: time.Now().UTC()}
	_, err := b.c.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	return err
}

// Ping implements Backend.
func (b *MongoBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx, readpref.Primary())
}
