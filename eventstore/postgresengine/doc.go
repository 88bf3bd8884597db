// Package postgresengine stores journals of StorableEvents in PostgreSQL.
//
// The engine runs on pgxpool.Pool, sql.DB or sqlx.DB. Queries are built with goqu,
// predicates are translated to JSONB containment on the payload column,
// and Append guards every insert with a CTE that compares the current max sequence number
// of the "dynamic event stream" against the expected one.
//
//	db, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(db, postgresengine.WithTableName("circle_journal"))
//	_ = store.CreateTable(ctx)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
