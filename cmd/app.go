package cmd

import (
	"context"
	"errors"
	"fmt"

	"mana-vault/core/config"
	"mana-vault/core/database"
	"mana-vault/core/logger"
	"mana-vault/core/storage"
	"mana-vault/feature/canonical"
	"mana-vault/feature/catalog"
	"mana-vault/feature/collection"
	"mana-vault/feature/index"
	"mana-vault/feature/integrity"
	"mana-vault/feature/search"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application wires every component from the loaded configuration.
type application struct {
	cfg    *config.Config
	logger *zap.Logger

	upstream *gorm.DB
	indexDB  *gorm.DB
	appDB    *gorm.DB
	store    storage.Client

	reader    *catalog.Reader
	status    *index.StatusStore
	builder   *index.Builder
	engine    *search.Engine
	resolver  *canonical.Resolver
	ledger    *collection.Ledger
	indexSvc  *index.Service
	searchSvc *search.Service
	catalog   *catalog.Service
	integrity *integrity.Service
}

// bootstrapOptions selects the optional parts of the application.
type bootstrapOptions struct {
	// Storage creates the object storage client even when publication is disabled.
	Storage bool
	// Recover marks a rebuild left running by a dead process as failed. Only
	// processes that own rebuilds set it.
	Recover bool
}

// bootstrap loads the configuration and opens every store.
//
// The upstream snapshot, the index store and the application store are required.
// The object storage client is created when publication is enabled or opts asks for it.
func bootstrap(ctx context.Context, opts bootstrapOptions) (*application, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &application{cfg: cfg, logger: logg}
	if err := a.open(ctx, opts); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *application) open(ctx context.Context, opts bootstrapOptions) error {
	var err error
	a.upstream, err = database.OpenSQLite(a.cfg.Index.UpstreamPath, database.SQLiteOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("failed to open upstream snapshot: %w", err)
	}
	a.indexDB, err = database.OpenSQLite(a.cfg.Index.IndexPath, database.SQLiteOptions{})
	if err != nil {
		return fmt.Errorf("failed to open index store: %w", err)
	}
	a.appDB, err = database.Connect(a.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to application database: %w", err)
	}

	a.status = index.NewStatusStore(a.appDB)
	if err := a.status.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate status table: %w", err)
	}
	if opts.Recover {
		if recovered, err := a.status.Recover(ctx); err != nil {
			a.logger.Warn("Failed to recover rebuild status", zap.Error(err))
		} else if recovered {
			a.logger.Warn("Previous rebuild was interrupted, marked as failed")
		}
	}

	if a.cfg.Index.Publish || opts.Storage {
		a.store, err = storage.NewClient(a.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	a.reader = catalog.NewReader(a.upstream, nil, a.logger.Named("catalog"))
	a.engine = search.NewEngine(a.indexDB, a.cfg.Index.QueryLimitMax, a.logger.Named("search"))
	a.builder = index.NewBuilder(a.reader, a.indexDB, a.status, a.cfg.Index, a.logger.Named("index"))
	a.builder.OnCommit(a.engine.Invalidate)
	a.resolver = canonical.NewResolver(a.engine, a.reader, a.logger.Named("canonical"))

	var publisher *index.Publisher
	if a.store != nil {
		publisher = index.NewPublisher(a.indexDB, a.store, a.cfg.Storage.Bucket, a.cfg.Index.PublishObject, a.logger.Named("publish"))
	}
	a.indexSvc = index.NewService(a.builder, a.status, publisher, a.cfg.Index.Publish, a.logger.Named("index"))

	a.ledger = collection.NewLedger(a.appDB, a.engine, a.logger.Named("collection"))
	if err := a.ledger.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate collection table: %w", err)
	}
	a.searchSvc = search.NewService(a.engine, search.OwnershipFunc(a.ownedTotals), a.logger.Named("search"))
	a.catalog = catalog.NewService(a.reader, a.resolver, a.logger.Named("catalog"))
	a.integrity = integrity.NewService(integrity.Targets{
		Reader:  a.reader,
		IndexDB: a.indexDB,
		AppDB:   a.appDB,
		Client:  a.store,
		Bucket:  a.cfg.Storage.Bucket,
		Object:  a.cfg.Index.PublishObject,
	}, a.logger.Named("integrity"))
	return nil
}

// ownedTotals adapts the collection ledger to search ownership.
func (a *application) ownedTotals(ctx context.Context, keys []string) (map[string]search.Owned, error) {
	totals, err := a.ledger.Totals(ctx, keys)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]search.Owned, len(totals))
	for key, t := range totals {
		owned[key] = search.Owned{Qty: t.Qty, FoilQty: t.FoilQty}
	}
	return owned, nil
}

// Close releases every store. It is safe on a partially opened application.
func (a *application) Close() {
	var errs []error
	for _, db := range []*gorm.DB{a.upstream, a.indexDB, a.appDB} {
		if err := database.Close(db); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("Failed to close database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
