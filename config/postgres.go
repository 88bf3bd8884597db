package config

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver for database/sql and sqlx
)

const driverNamePostgres = "postgres"

var (
	ErrParsingPostgresDSNFailed = errors.New("parsing the postgres dsn failed")
	ErrConnectingPostgresFailed = errors.New("connecting to postgres failed")
)

// PGXPoolConfig creates a pgxpool.Config with the configured pool limits.
func (c PostgresConfig) PGXPoolConfig() (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(c.DSN)
	if err != nil {
		return nil, errors.Join(ErrParsingPostgresDSNFailed, err)
	}

	dbConfig.MaxConns = c.MaxConns
	dbConfig.MinConns = c.MinConns
	dbConfig.MaxConnLifetime = c.MaxConnLifetime
	dbConfig.MaxConnIdleTime = c.MaxConnIdleTime
	dbConfig.ConnConfig.ConnectTimeout = c.ConnectTimeout

	return dbConfig, nil
}

// OpenPGXPool creates and pings a pgxpool.Pool.
func (c PostgresConfig) OpenPGXPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbConfig, err := c.PGXPoolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrConnectingPostgresFailed, err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, errors.Join(ErrConnectingPostgresFailed, pingErr)
	}

	return pool, nil
}

// OpenSQLDB opens and pings a *sql.DB on lib/pq.
func (c PostgresConfig) OpenSQLDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(driverNamePostgres, c.DSN)
	if err != nil {
		return nil, errors.Join(ErrConnectingPostgresFailed, err)
	}

	c.configurePool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingPostgresFailed, pingErr)
	}

	return db, nil
}

// OpenSQLX opens and pings a *sqlx.DB on lib/pq.
func (c PostgresConfig) OpenSQLX(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverNamePostgres, c.DSN)
	if err != nil {
		return nil, errors.Join(ErrConnectingPostgresFailed, err)
	}

	c.configurePool(db.DB)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectingPostgresFailed, pingErr)
	}

	return db, nil
}

func (c PostgresConfig) configurePool(db *sql.DB) {
	db.SetMaxOpenConns(int(c.MaxConns))
	db.SetMaxIdleConns(int(c.MinConns))
	db.SetConnMaxLifetime(c.MaxConnLifetime)
	db.SetConnMaxIdleTime(c.MaxConnIdleTime)
}
