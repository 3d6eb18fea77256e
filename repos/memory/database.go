package memory

import (
	"context"
	"time"

	"github.com/alexedwards/scs/v2/memstore"

	"github.com/dylanat/site/repos"
)

// DB keeps sessions in process memory. Sessions are lost on restart.
type DB struct {
	store *memstore.MemStore
}

// New returns an in-memory DB that purges expired sessions every cleanupInterval.
// A zero interval disables the background cleanup.
func New(cleanupInterval time.Duration) *DB {
	return &DB{
		store: memstore.NewWithCleanupInterval(cleanupInterval),
	}
}

func (d *DB) NewSessionRepository() repos.SessionRepository {
	return &sessionRepository{
		store: d.store,
	}
}

func (d *DB) Close() error {
	d.store.StopCleanup()
	return nil
}

type sessionRepository struct {
	store *memstore.MemStore
}

func (s *sessionRepository) Delete(token string) error {
	return s.store.Delete(token)
}

func (s *sessionRepository) Find(token string) ([]byte, bool, error) {
	return s.store.Find(token)
}

func (s *sessionRepository) Commit(token string, b []byte, expiry time.Time) error {
	return s.store.Commit(token, b, expiry)
}

func (s *sessionRepository) All() (map[string][]byte, error) {
	return s.store.All()
}

func (s *sessionRepository) DeleteCtx(_ context.Context, token string) error {
	return s.Delete(token)
}

func (s *sessionRepository) FindCtx(_ context.Context, token string) ([]byte, bool, error) {
	return s.Find(token)
}

func (s *sessionRepository) CommitCtx(_ context.Context, token string, b []byte, expiry time.Time) error {
	return s.Commit(token, b, expiry)
}

func (s *sessionRepository) AllCtx(_ context.Context) (map[string][]byte, error) {
	return s.All()
}

// DeleteExpired is a no-op: the memstore purges expired entries itself.
func (s *sessionRepository) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}
