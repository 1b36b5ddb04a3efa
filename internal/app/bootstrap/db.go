// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/lunicar/lunicar/internal/app/store/collection"
	"github.com/lunicar/lunicar/internal/app/system/indexes"
	"github.com/lunicar/lunicar/internal/app/system/mailer"
	"github.com/lunicar/lunicar/internal/app/system/notify"
	"github.com/lunicar/lunicar/internal/app/system/seeding"
	"github.com/lunicar/lunicar/internal/app/system/validators"
	"github.com/lunicar/lunicar/internal/domain/models"
	"go.uber.org/zap"
)

// ConnectDB opens the content backend and upload storage, and builds the
// mailer and notifier.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	var deps DBDeps

	switch appCfg.StoreBackend {
	case "mongo":
		poolCfg := wafflemongo.DefaultPoolConfig()
		if appCfg.MongoMaxPoolSize > 0 {
			poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
		}
		if appCfg.MongoMinPoolSize > 0 {
			poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
		}
		client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
		if err != nil {
			return DBDeps{}, err
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.Content = collection.NewDB(collection.NewMongoBackend(deps.MongoDatabase))
		logger.Info("connected to MongoDB content backend",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
			zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
		)
	default:
		backend, err := collection.NewFileBackend(appCfg.DataDir)
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to open data directory: %w", err)
		}
		deps.Content = collection.NewDB(backend)
		logger.Info("opened file content backend", zap.String("dir", backend.Dir()))
	}

	var err error
	switch appCfg.StorageType {
	case "s3":
		deps.FileStorage, err = storage.NewS3(ctx, storage.S3Config{
			Region:                   appCfg.StorageS3Region,
			Bucket:                   appCfg.StorageS3Bucket,
			Prefix:                   appCfg.StorageS3Prefix,
			CloudFrontURL:            appCfg.StorageCFURL,
			CloudFrontKeyPairID:      appCfg.StorageCFKeyPairID,
			CloudFrontPrivateKeyPath: appCfg.StorageCFKeyPath,
		})
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		logger.Info("initialized S3/CloudFront upload storage",
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("prefix", appCfg.StorageS3Prefix),
		)
	default:
		deps.FileStorage, err = storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		logger.Info("initialized local upload storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL),
		)
	}

	deps.Mailer = mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	if deps.Mailer.Simulated() {
		logger.Warn("SMTP not configured, notification emails are simulated")
	}

	deps.Notifier = notify.New(notify.Config{
		To:      appCfg.MailTo,
		AppName: models.DefaultSiteName,
	}, deps.Mailer, deps.FileStorage, logger)

	return deps, nil
}

// EnsureSchema prepares the Mongo content collection when that backend is
// used, then seeds empty collections.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase != nil {
		logger.Info("ensuring content collection and validator")
		if err := validators.EnsureAll(ctx, deps.MongoDatabase, logger); err != nil {
			logger.Error("failed to ensure validators", zap.Error(err))
			return err
		}
		logger.Info("ensuring content indexes")
		if err := indexes.EnsureAll(ctx, deps.MongoDatabase, logger); err != nil {
			logger.Error("failed to ensure indexes", zap.Error(err))
			return err
		}
	}

	if !appCfg.SeedContent {
		return nil
	}
	logger.Info("seeding default content")
	if err := seeding.SeedAll(ctx, deps.Content, time.Now(), logger); err != nil {
		logger.Error("failed to seed default content", zap.Error(err))
		return err
	}
	return nil
}
