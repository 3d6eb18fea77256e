package connect

import (
	"fmt"
	"time"

	"github.com/juho05/log"

	"github.com/dylanat/site/config"
	"github.com/dylanat/site/repos"
	"github.com/dylanat/site/repos/memory"
	"github.com/dylanat/site/repos/postgres"
	"github.com/dylanat/site/repos/sqlite"
)

// Open connects to the session store of the given kind.
func Open(kind config.SessionStoreKind, dsn string, migrateUp bool) (repos.DB, error) {
	switch kind {
	case config.SessionStoreMemory:
		log.Info("Using in-memory session store. Sessions will not survive a restart.")
		return memory.New(time.Minute), nil
	case config.SessionStoreSQLite:
		db, err := sqlite.Connect(dsn, migrateUp)
		if err != nil {
			return nil, fmt.Errorf("open sqlite session store: %w", err)
		}
		return db, nil
	case config.SessionStorePostgres:
		db, err := postgres.Connect(dsn, migrateUp)
		if err != nil {
			return nil, fmt.Errorf("open postgres session store: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("open session store %q: %w", kind, repos.ErrUnknownSessionKind)
	}
}

// SelfCleaning reports whether stores of the given kind drop expired sessions
// on their own. Other stores need a periodic DeleteExpired.
func SelfCleaning(kind config.SessionStoreKind) bool {
	return kind == config.SessionStoreMemory
}

// FromConfig opens the session store configured through the environment.
func FromConfig() (repos.DB, error) {
	return Open(config.SessionStore(), config.DBConnection(), config.AutoMigrate())
}
