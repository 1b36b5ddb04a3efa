// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/app/system/mailer"
	"github.com/lunicar/lunicar/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backends built in ConnectDB and passed to the later
// lifecycle hooks. Shutdown releases them.
type DBDeps struct {
	// Content collections (articles, cities, themes, leads, messages).
	Content *collection.DB

	// Set only with the mongo content backend.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Uploaded lead photos.
	FileStorage storage.Store

	Mailer   *mailer.Mailer
	Notifier *notify.Notifier
}
