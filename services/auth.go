package services

import (
	"context"
	"fmt"
	"time"

	"github.com/juho05/log"

	"github.com/dylanat/site/config"
)

// AdminPrincipal is the only identity that can sign in.
const AdminPrincipal = "admin"

type AuthService interface {
	Login(ctx context.Context, password string) error
	Logout(ctx context.Context) error
	Authenticated(ctx context.Context) bool
	DisplayName(ctx context.Context) string
}

type authService struct {
	secrets  config.SecretSource
	sessions SessionService
	now      func() time.Time
}

func NewAuthService(secrets config.SecretSource, sessions SessionService) AuthService {
	return &authService{
		secrets:  secrets,
		sessions: sessions,
		now:      time.Now,
	}
}

func (a *authService) Login(ctx context.Context, password string) error {
	expected, ok := a.secrets.GetSecret(config.AdminPasswordKey)
	if !ok || expected == "" {
		log.Trace("Rejected admin login: ADMIN_PASSWORD is not set")
		return fmt.Errorf("login: %w", ErrNotConfigured)
	}
	if !PasswordsMatch(password, expected) {
		log.Trace("Rejected admin login: invalid password")
		return fmt.Errorf("login: %w", ErrInvalidCredentials)
	}
	err := a.sessions.Establish(ctx, AdminPrincipal, a.now().Add(SessionLifetime))
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	err := a.sessions.Destroy(ctx)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) Authenticated(ctx context.Context) bool {
	_, ok := a.sessions.Current(ctx)
	return ok
}

// DisplayName returns the signed-in principal, or AdminPrincipal when nobody is signed in.
func (a *authService) DisplayName(ctx context.Context) string {
	if principal, ok := a.sessions.Current(ctx); ok {
		return principal
	}
	return AdminPrincipal
}
