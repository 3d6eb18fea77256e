package services

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylanat/site/config"
	"github.com/dylanat/site/repos/memory"
)

func newTestSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	db := memory.New(0)
	t.Cleanup(func() {
		db.Close()
	})
	return NewSessionManager(db.NewSessionRepository(), false)
}

// loadSession simulates a request carrying the session cookie token.
func loadSession(t *testing.T, sm *scs.SessionManager, token string) context.Context {
	t.Helper()
	ctx, err := sm.Load(context.Background(), token)
	require.NoError(t, err)
	return ctx
}

func commitSession(t *testing.T, sm *scs.SessionManager, ctx context.Context) string {
	t.Helper()
	token, _, err := sm.Commit(ctx)
	require.NoError(t, err)
	return token
}

func TestAuthService_Login(t *testing.T) {
	testCases := []struct {
		name        string
		secrets     config.SecretSource
		password    string
		expectedErr error
	}{
		{
			name:     "CorrectPassword",
			secrets:  config.StaticSecrets{config.AdminPasswordKey: "correct horse"},
			password: "correct horse",
		},
		{
			name:        "WrongPassword",
			secrets:     config.StaticSecrets{config.AdminPasswordKey: "correct horse"},
			password:    "battery staple",
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:        "EmptyPassword",
			secrets:     config.StaticSecrets{config.AdminPasswordKey: "correct horse"},
			password:    "",
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:        "PasswordNotSet",
			secrets:     config.StaticSecrets{},
			password:    "anything",
			expectedErr: ErrNotConfigured,
		},
		{
			name:        "PasswordNotSetEmptyInput",
			secrets:     config.StaticSecrets{},
			password:    "",
			expectedErr: ErrNotConfigured,
		},
		{
			name:        "PasswordSetToEmpty",
			secrets:     config.StaticSecrets{config.AdminPasswordKey: ""},
			password:    "",
			expectedErr: ErrNotConfigured,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sm := newTestSessionManager(t)
			auth := NewAuthService(tc.secrets, NewSessionService(sm))
			ctx := loadSession(t, sm, "")

			err := auth.Login(ctx, tc.password)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.False(t, auth.Authenticated(ctx))
				return
			}
			require.NoError(t, err)
			assert.True(t, auth.Authenticated(ctx))
			assert.Equal(t, AdminPrincipal, auth.DisplayName(ctx))
		})
	}
}

func TestAuthService_LoginPersistsAcrossRequests(t *testing.T) {
	sm := newTestSessionManager(t)
	auth := NewAuthService(config.StaticSecrets{config.AdminPasswordKey: "pw"}, NewSessionService(sm))

	ctx := loadSession(t, sm, "")
	require.NoError(t, auth.Login(ctx, "pw"))
	token := commitSession(t, sm, ctx)
	require.NotEmpty(t, token)

	next := loadSession(t, sm, token)
	assert.True(t, auth.Authenticated(next))

	anonymous := loadSession(t, sm, "")
	assert.False(t, auth.Authenticated(anonymous))
}

func TestAuthService_LoginRenewsToken(t *testing.T) {
	sm := newTestSessionManager(t)
	auth := NewAuthService(config.StaticSecrets{config.AdminPasswordKey: "pw"}, NewSessionService(sm))

	ctx := loadSession(t, sm, "")
	sm.Put(ctx, "visited", true)
	before := commitSession(t, sm, ctx)

	ctx = loadSession(t, sm, before)
	require.NoError(t, auth.Login(ctx, "pw"))
	after := commitSession(t, sm, ctx)

	assert.NotEqual(t, before, after)
	assert.False(t, auth.Authenticated(loadSession(t, sm, before)))
	assert.True(t, auth.Authenticated(loadSession(t, sm, after)))
}

func TestAuthService_LoginReadsSecretPerRequest(t *testing.T) {
	secrets := config.StaticSecrets{}
	sm := newTestSessionManager(t)
	auth := NewAuthService(secrets, NewSessionService(sm))

	assert.ErrorIs(t, auth.Login(loadSession(t, sm, ""), "pw"), ErrNotConfigured)

	secrets[config.AdminPasswordKey] = "pw"
	assert.NoError(t, auth.Login(loadSession(t, sm, ""), "pw"))
}

func TestAuthService_Logout(t *testing.T) {
	sm := newTestSessionManager(t)
	auth := NewAuthService(config.StaticSecrets{config.AdminPasswordKey: "pw"}, NewSessionService(sm))

	ctx := loadSession(t, sm, "")
	require.NoError(t, auth.Login(ctx, "pw"))
	token := commitSession(t, sm, ctx)

	ctx = loadSession(t, sm, token)
	require.NoError(t, auth.Logout(ctx))
	assert.False(t, auth.Authenticated(ctx))
	assert.Equal(t, AdminPrincipal, auth.DisplayName(ctx))

	// the old cookie no longer works
	assert.False(t, auth.Authenticated(loadSession(t, sm, token)))

	// logging out twice is fine
	assert.NoError(t, auth.Logout(ctx))
}

func TestAuthService_LogoutWithoutSession(t *testing.T) {
	sm := newTestSessionManager(t)
	auth := NewAuthService(config.StaticSecrets{}, NewSessionService(sm))

	ctx := loadSession(t, sm, "")
	assert.NoError(t, auth.Logout(ctx))
	assert.NoError(t, auth.Logout(ctx))
}

type fakeSessionService struct {
	principal string
	expires   time.Time
	active    bool
}

func (f *fakeSessionService) Establish(_ context.Context, principal string, expires time.Time) error {
	f.principal = principal
	f.expires = expires
	f.active = true
	return nil
}

func (f *fakeSessionService) Current(_ context.Context) (string, bool) {
	return f.principal, f.active
}

func (f *fakeSessionService) Destroy(_ context.Context) error {
	f.principal = ""
	f.active = false
	return nil
}

func TestAuthService_DisplayName(t *testing.T) {
	sessions := &fakeSessionService{principal: "dylan", active: true}
	auth := NewAuthService(config.StaticSecrets{}, sessions)

	assert.Equal(t, "dylan", auth.DisplayName(context.Background()))

	require.NoError(t, auth.Logout(context.Background()))
	assert.Equal(t, AdminPrincipal, auth.DisplayName(context.Background()))
}

func TestAuthService_LoginSessionExpiresInSevenDays(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessionService{}
	auth := NewAuthService(config.StaticSecrets{config.AdminPasswordKey: "pw"}, sessions)
	auth.(*authService).now = func() time.Time { return now }

	require.NoError(t, auth.Login(context.Background(), "pw"))
	assert.Equal(t, AdminPrincipal, sessions.principal)
	assert.Equal(t, now.Add(7*24*time.Hour), sessions.expires)
}
