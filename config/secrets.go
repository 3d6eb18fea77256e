package config

import "os"

const AdminPasswordKey = "ADMIN_PASSWORD"

// SecretSource looks up secrets by key. Implementations must be safe for
// concurrent use; values are read on every call and never cached.
type SecretSource interface {
	GetSecret(key string) (string, bool)
}

// Env reads secrets from the process environment.
type Env struct{}

func (Env) GetSecret(key string) (string, bool) {
	return os.LookupEnv(key)
}

// StaticSecrets serves secrets from a fixed map.
type StaticSecrets map[string]string

func (s StaticSecrets) GetSecret(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}
