package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	migrate "github.com/rubenv/sql-migrate"
	_ "modernc.org/sqlite"

	"github.com/juho05/log"

	site "github.com/dylanat/site"
	"github.com/dylanat/site/repos"
)

type DB struct {
	db *sql.DB
}

func autoMigrate(db *sql.DB) error {
	migrations := &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(site.SQLiteMigrationsFS),
	}
	log.Trace("Migrating database...")
	n, err := migrate.Exec(db, "sqlite3", migrations, migrate.Up)
	log.Tracef("Applied %d migrations!", n)
	if err != nil {
		return err
	}
	return nil
}

func Connect(connectionString string, migrateUp bool) (*DB, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	_, err = db.Exec("PRAGMA busy_timeout = 3000")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if migrateUp {
		err = autoMigrate(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	return &DB{
		db: db,
	}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func repoErr(format string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		err = repos.ErrNoRecord
	}
	return fmt.Errorf(format, err)
}
