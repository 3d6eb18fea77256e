package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dylanat/site/repos"
)

type sessionRepository struct {
	db *DB
}

func (db *DB) NewSessionRepository() repos.SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

func (s *sessionRepository) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

func (s *sessionRepository) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *sessionRepository) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *sessionRepository) All() (map[string][]byte, error) {
	return s.AllCtx(context.Background())
}

func (s *sessionRepository) DeleteCtx(ctx context.Context, token string) error {
	_, err := s.db.pool.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return repoErr("delete session: %w", err)
}

func (s *sessionRepository) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	var data []byte
	err := s.db.pool.QueryRow(ctx, "SELECT data FROM sessions WHERE token = $1 AND expires > $2", token, time.Now().Unix()).Scan(&data)
	if err != nil {
		err = repoErr("find session: %w", err)
		if errors.Is(err, repos.ErrNoRecord) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *sessionRepository) CommitCtx(ctx context.Context, token string, data []byte, expires time.Time) error {
	_, err := s.db.pool.Exec(ctx, `INSERT INTO sessions (token, data, expires) VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE SET data = EXCLUDED.data, expires = EXCLUDED.expires`, token, data, expires.Unix())
	return repoErr("commit session: %w", err)
}

func (s *sessionRepository) AllCtx(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.pool.Query(ctx, "SELECT token, data, expires FROM sessions WHERE expires > $1", time.Now().Unix())
	if err != nil {
		return nil, repoErr("all sessions: %w", err)
	}
	models, err := pgx.CollectRows(rows, pgx.RowToStructByName[repos.SessionModel])
	if err != nil {
		return nil, repoErr("all sessions: %w", err)
	}
	sessions := make(map[string][]byte, len(models))
	for _, m := range models {
		sessions[m.Token] = m.Data
	}
	return sessions, nil
}

func (s *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.pool.Exec(ctx, "DELETE FROM sessions WHERE expires <= $1", time.Now().Unix())
	if err != nil {
		return 0, repoErr("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
