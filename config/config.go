package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/juho05/log"
)

var (
	values   = make(map[string]any)
	valuesMu sync.Mutex
)

// cached returns the value stored for key or computes, stores and returns it.
func cached[T any](key string, load func() T) T {
	valuesMu.Lock()
	defer valuesMu.Unlock()
	if v, ok := values[key]; ok {
		return v.(T)
	}
	v := load()
	values[key] = v
	return v
}

// Reset drops all cached values. Subsequent calls re-read the environment.
func Reset() {
	valuesMu.Lock()
	defer valuesMu.Unlock()
	values = make(map[string]any)
}

func Port() int {
	return cached("PORT", func() int {
		def := 8080
		portStr := os.Getenv("PORT")
		if portStr == "" {
			return def
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			log.Errorf("Invalid port '%s': not a number. Using default: %d", portStr, def)
			return def
		}
		return port
	})
}

func LogLevel() log.Severity {
	return cached("LOG_LEVEL", func() log.Severity {
		def := log.INFO
		logLevelStr := os.Getenv("LOG_LEVEL")
		if logLevelStr == "" {
			return def
		}
		level, err := strconv.Atoi(logLevelStr)
		if err != nil {
			log.Errorf("Invalid log level '%s': not a number. Using default: %d", logLevelStr, def)
			return def
		}
		if level < int(log.NONE) || level > int(log.TRACE) {
			log.Errorf("Invalid log level. Valid values: 0 (none), 1 (fatal), 2 (error), 3 (warning), 4 (info), 5 (trace). Using default: %d", def)
			return def
		}
		return log.Severity(level)
	})
}

func LogFile() *os.File {
	return cached("LOG_FILE", func() *os.File {
		def := os.Stderr
		name := os.Getenv("LOG_FILE")
		if name == "" {
			return def
		}
		if Bool("LOG_APPEND", false) {
			file, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				log.Errorf("Failed to open log file %s. Using default: STDERR", err)
				return def
			}
			return file
		}
		file, err := os.Create(name)
		if err != nil {
			log.Errorf("Failed to create log file %s. Using default: STDERR", err)
			return def
		}
		return file
	})
}

func TLSCert() string {
	return cached("TLS_CERT", func() string {
		return os.Getenv("TLS_CERT")
	})
}

func TLSKey() string {
	return cached("TLS_KEY", func() string {
		return os.Getenv("TLS_KEY")
	})
}

type SessionStoreKind string

const (
	SessionStoreMemory   SessionStoreKind = "memory"
	SessionStoreSQLite   SessionStoreKind = "sqlite"
	SessionStorePostgres SessionStoreKind = "postgres"
)

func SessionStore() SessionStoreKind {
	return cached("SESSION_STORE", func() SessionStoreKind {
		def := SessionStoreSQLite
		kind := SessionStoreKind(strings.ToLower(strings.TrimSpace(os.Getenv("SESSION_STORE"))))
		switch kind {
		case "":
			return def
		case SessionStoreMemory, SessionStoreSQLite, SessionStorePostgres:
			return kind
		default:
			log.Errorf("Invalid session store '%s'. Valid values: memory, sqlite, postgres. Using default: %s", kind, def)
			return def
		}
	})
}

func DBConnection() string {
	return cached("DB_CONNECTION", func() string {
		def := "sessions.sqlite"
		con := os.Getenv("DB_CONNECTION")
		if con == "" {
			return def
		}
		return con
	})
}

func AutoMigrate() bool {
	return cached("AUTO_MIGRATE", func() bool {
		return Bool("AUTO_MIGRATE", true)
	})
}

func CookieSecure() bool {
	return cached("COOKIE_SECURE", func() bool {
		return Bool("COOKIE_SECURE", true)
	})
}

func BehindProxy() bool {
	return cached("BEHIND_PROXY", func() bool {
		return Bool("BEHIND_PROXY", false)
	})
}

// Bool parses the environment variable name as a boolean.
// Missing or invalid values yield def.
func Bool(name string, def bool) bool {
	str := os.Getenv(name)
	if str == "" {
		return def
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		log.Errorf("Invalid value for %s '%s': not a boolean. Using default: %t", name, str, def)
		return def
	}
	return b
}
