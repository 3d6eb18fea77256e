package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/exp/slices"

	"github.com/dylanat/site/repos"
)

const (
	SessionLifetime   = 7 * 24 * time.Hour
	SessionCookieName = "site_session"

	sessionPrincipalKey = "authPrincipal"
	sessionExpiresKey   = "authExpires"
)

// SessionService is the only place that knows how an authenticated session is stored.
type SessionService interface {
	Establish(ctx context.Context, principal string, expires time.Time) error
	Current(ctx context.Context) (principal string, ok bool)
	Destroy(ctx context.Context) error
}

// SessionInfo describes a stored session without exposing its token.
type SessionInfo struct {
	Principal string
	Expires   time.Time
}

// NewSessionManager returns a session manager backed by store. Cookies are
// session cookies unless Establish marks them persistent.
func NewSessionManager(store repos.SessionRepository, secureCookie bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = store
	sm.Lifetime = SessionLifetime
	sm.Cookie.Name = SessionCookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Path = "/"
	sm.Cookie.Persist = false
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secureCookie
	return sm
}

type sessionService struct {
	sessionManager *scs.SessionManager
	now            func() time.Time
}

func NewSessionService(sessionManager *scs.SessionManager) SessionService {
	return &sessionService{
		sessionManager: sessionManager,
		now:            time.Now,
	}
}

func (s *sessionService) Establish(ctx context.Context, principal string, expires time.Time) error {
	err := s.sessionManager.RenewToken(ctx)
	if err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	s.sessionManager.Put(ctx, sessionPrincipalKey, principal)
	s.sessionManager.Put(ctx, sessionExpiresKey, expires.Unix())
	s.sessionManager.RememberMe(ctx, true)
	return nil
}

func (s *sessionService) Current(ctx context.Context) (string, bool) {
	principal := s.sessionManager.GetString(ctx, sessionPrincipalKey)
	if principal == "" {
		return "", false
	}
	expires := s.sessionManager.GetInt64(ctx, sessionExpiresKey)
	if expires <= s.now().Unix() {
		return "", false
	}
	return principal, true
}

func (s *sessionService) Destroy(ctx context.Context) error {
	err := s.sessionManager.Destroy(ctx)
	if err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// ListSessions returns all stored sessions that carry an authenticated principal,
// soonest expiry first.
func ListSessions(ctx context.Context, sessionManager *scs.SessionManager) ([]SessionInfo, error) {
	var sessions []SessionInfo
	err := sessionManager.Iterate(ctx, func(ctx context.Context) error {
		principal := sessionManager.GetString(ctx, sessionPrincipalKey)
		if principal == "" {
			return nil
		}
		sessions = append(sessions, SessionInfo{
			Principal: principal,
			Expires:   time.Unix(sessionManager.GetInt64(ctx, sessionExpiresKey), 0),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	slices.SortFunc(sessions, func(a, b SessionInfo) int {
		return a.Expires.Compare(b.Expires)
	})
	return sessions, nil
}

// RevokeSessions destroys every stored session and returns how many were destroyed.
func RevokeSessions(ctx context.Context, sessionManager *scs.SessionManager) (int, error) {
	var n int
	err := sessionManager.Iterate(ctx, func(ctx context.Context) error {
		err := sessionManager.Destroy(ctx)
		if err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return n, fmt.Errorf("revoke sessions: %w", err)
	}
	return n, nil
}
