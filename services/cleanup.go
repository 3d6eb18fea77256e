package services

import (
	"context"
	"time"

	"github.com/juho05/log"

	"github.com/dylanat/site/repos"
)

// CleanupExpiredSessions deletes expired sessions from repo every interval until ctx is done.
func CleanupExpiredSessions(ctx context.Context, repo repos.SessionRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				log.Errorf("Failed to delete expired sessions: %s", err)
				continue
			}
			if n > 0 {
				log.Tracef("Deleted %d expired sessions", n)
			}
		}
	}
}
