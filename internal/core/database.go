package core

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/cellularmitosis/retainn/pkg/resync"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

var (
	// Lazy-load ensuring a single read
	dbOnce       resync.Once
	dbSingleton  *DB
	dbClientOnce resync.Once
)

type DB struct {
	// $RETAINN_HOME/database.db
	client *sql.DB

	// In-progress transaction
	tx *sql.Tx
}

func CurrentDB() *DB {
	dbOnce.Do(func() {
		dbSingleton = &DB{}
	})
	return dbSingleton
}

func (db *DB) initClient() *sql.DB {
	dbClientOnce.Do(func() {
		// Foreign keys are disabled by default in SQLite
		client, err := sql.Open("sqlite3", CurrentConfig().DatabasePath()+"?_foreign_keys=on")
		if err != nil {
			CurrentLogger().Fatalf("Unable to open database: %v", err)
		}
		if err := migrateSchema(client); err != nil {
			CurrentLogger().Fatalf("Unable to migrate database: %v", err)
		}
		db.client = client
	})
	return db.client
}

// migrateSchema applies the embedded migrations not yet recorded in schema_migrations.
func migrateSchema(client *sql.DB) error {
	instance, err := sqlite3.WithInstance(client, &sqlite3.Config{})
	if err != nil {
		return err
	}
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", instance)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close releases the connection. The next query reopens it.
func (db *DB) Close() error {
	if db.tx != nil {
		CurrentLogger().Warn("Closing database with a transaction in progress")
		if err := db.tx.Rollback(); err != nil {
			CurrentLogger().Warnf("Unable to rollback transaction: %v", err)
		}
		db.tx = nil
	}
	if db.client == nil {
		return nil
	}
	err := db.client.Close()
	db.client = nil
	dbClientOnce.Reset()
	return err
}

/* Transaction Management */

// BeginTransaction starts a new transaction.
func (db *DB) BeginTransaction() error {
	if db.tx != nil {
		return errors.New("transaction already started")
	}
	tx, err := db.initClient().BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	db.tx = tx
	return nil
}

// RollbackTransaction aborts the current transaction.
func (db *DB) RollbackTransaction() error {
	if db.tx == nil {
		return errors.New("no transaction started")
	}
	err := db.tx.Rollback()
	db.tx = nil
	return err
}

// CommitTransaction ends the current transaction.
func (db *DB) CommitTransaction() error {
	if db.tx == nil {
		return errors.New("no transaction started")
	}
	err := db.tx.Commit()
	if err != nil {
		return err
	}
	db.tx = nil
	return nil
}

// WithTransaction runs fn inside a transaction committed only when fn succeeds.
// When a transaction is already in progress, fn joins it.
func (db *DB) WithTransaction(fn func() error) error {
	if db.tx != nil {
		return fn()
	}
	if err := db.BeginTransaction(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		if errRollback := db.RollbackTransaction(); errRollback != nil {
			CurrentLogger().Warnf("Unable to rollback transaction: %v", errRollback)
		}
		return err
	}
	return db.CommitTransaction()
}

// Client returns the client to use to query the database.
func (db *DB) Client() SQLClient {
	if db.tx != nil {
		// Execute queries in current transaction
		return db.tx
	}
	// Basic client = no transaction
	return db.initClient()
}
