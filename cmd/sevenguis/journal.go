package main

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/sevenguis-eventsourced/circledrawer/shell"
	"github.com/AntonStoeckl/sevenguis-eventsourced/config"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/memoryengine"
	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore/postgresengine"
)

var ErrUnknownPostgresDriver = errors.New("unknown postgres driver")

// openJournal returns the configured journal and a function releasing its connections.
// The PostgreSQL table is created if it does not exist yet.
func (a *app) openJournal(ctx context.Context) (shell.EventStore, func(), error) {
	if a.cfg.Journal.Engine == config.EngineMemory {
		return memoryengine.NewEventStore(memoryengine.WithLogger(a.logger)), func() {}, nil
	}

	pg := a.cfg.Journal.Postgres
	options := []postgresengine.Option{
		postgresengine.WithTableName(a.cfg.Journal.TableName),
		postgresengine.WithContextualLogger(a.logger),
		postgresengine.WithMetrics(a.metrics),
		postgresengine.WithTracing(a.tracing),
	}

	var (
		store   *postgresengine.EventStore
		release func()
		err     error
	)

	switch pg.Driver {
	case config.DriverPGX:
		pool, openErr := pg.OpenPGXPool(ctx)
		if openErr != nil {
			return nil, nil, openErr
		}

		release = pool.Close
		store, err = postgresengine.NewEventStoreFromPGXPool(pool, options...)

	case config.DriverSQL:
		db, openErr := pg.OpenSQLDB(ctx)
		if openErr != nil {
			return nil, nil, openErr
		}

		release = func() { _ = db.Close() }
		store, err = postgresengine.NewEventStoreFromSQLDB(db, options...)

	case config.DriverSQLX:
		db, openErr := pg.OpenSQLX(ctx)
		if openErr != nil {
			return nil, nil, openErr
		}

		release = func() { _ = db.Close() }
		store, err = postgresengine.NewEventStoreFromSQLX(db, options...)

	default:
		return nil, nil, ErrUnknownPostgresDriver
	}

	if err != nil {
		release()
		return nil, nil, err
	}

	if err = store.CreateTable(ctx); err != nil {
		release()
		return nil, nil, err
	}

	return store, release, nil
}
