package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db/models"
)

const testDomain = "morpionai.test"

var testSecret = []byte("test-secret")

type fixedConfig struct {
	root *config.Config
}

func (f *fixedConfig) Init() error            { return nil }
func (f *fixedConfig) Config() *config.Config { return f.root }
func (f *fixedConfig) ConfigFile() string     { return "" }

func newTestConfig() config.Manager {
	return &fixedConfig{
		root: &config.Config{
			Core: config.CoreConfig{
				Domain: testDomain,
				Port:   5001,
				Log:    config.LogConfig{Level: "error"},
				Auth: config.AuthConfig{
					TokenSecret:     string(testSecret),
					AccessTokenTTL:  15 * time.Minute,
					SessionLifetime: 90 * 24 * time.Hour,
				},
			},
		},
	}
}

type stubSessionService struct {
	refresh func(sessionID string) (string, error)
}

func (s *stubSessionService) Create(userID uint, device string, location string) (*models.LoginSession, error) {
	return nil, nil
}

func (s *stubSessionService) Get(sessionID string) (*models.LoginSession, error) {
	return nil, core.NewAccountError(core.ErrKeySessionNotFound, nil)
}

func (s *stubSessionService) ListForUser(userID uint) ([]models.LoginSession, error) {
	return nil, nil
}

func (s *stubSessionService) Mint(user *models.User, profile *models.Profile, device string, location string) (string, string, error) {
	return "", "", nil
}

func (s *stubSessionService) Refresh(sessionID string) (string, error) {
	if s.refresh == nil {
		return "", core.NewAccountError(core.ErrKeySessionNotFound, nil)
	}
	return s.refresh(sessionID)
}

func (s *stubSessionService) Logout(sessionID string) error { return nil }

func (s *stubSessionService) LogoutAll(userID uint) error { return nil }

func signToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	token, err := core.JWTGenerateToken(testDomain, testSecret, &core.UserClaims{
		UserID:   42,
		Email:    "alice@example.com",
		Username: "alice",
	}, ttl)
	require.NoError(t, err)

	return token
}

func newGate(t *testing.T, sessions core.SessionService) http.Handler {
	t.Helper()

	cfg := newTestConfig()
	mw := AuthMiddleware(AuthMiddlewareOptions{
		Config:   cfg,
		Logger:   core.NewLogger(cfg),
		Sessions: sessions,
	})

	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := GetUserFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestGateValidTokenHeader(t *testing.T) {
	gate := newGate(t, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(core.ACCESS_TOKEN_HEADER_NAME, signToken(t, 15*time.Minute))

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateValidTokenCookie(t *testing.T) {
	gate := newGate(t, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: core.ACCESS_TOKEN_COOKIE_NAME, Value: signToken(t, 15*time.Minute)})

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateHeaderTakesPrecedenceOverCookie(t *testing.T) {
	gate := newGate(t, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(core.ACCESS_TOKEN_HEADER_NAME, signToken(t, 15*time.Minute))
	req.AddCookie(&http.Cookie{Name: core.ACCESS_TOKEN_COOKIE_NAME, Value: "garbage"})

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateExpiredTokenRefreshesViaSession(t *testing.T) {
	fresh := signToken(t, 15*time.Minute)

	sessions := &stubSessionService{
		refresh: func(sessionID string) (string, error) {
			assert.Equal(t, "session-1", sessionID)
			return fresh, nil
		},
	}
	gate := newGate(t, sessions)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(core.ACCESS_TOKEN_HEADER_NAME, signToken(t, -time.Minute))
	req.Header.Set(core.SESSION_ID_HEADER_NAME, "session-1")

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fresh, rec.Header().Get(core.ACCESS_TOKEN_HEADER_NAME))

	cookies := rec.Result().Cookies()
	var found bool
	for _, cookie := range cookies {
		if cookie.Name == core.ACCESS_TOKEN_COOKIE_NAME {
			found = true
			assert.Equal(t, fresh, cookie.Value)
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found)
}

func TestGateNoCredentials(t *testing.T) {
	gate := newGate(t, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"isLogin":false}`, rec.Body.String())
}

func TestGateDeadSessionRejected(t *testing.T) {
	gate := newGate(t, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(core.SESSION_ID_HEADER_NAME, "revoked-session")

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateGarbageTokenWithoutSessionRejected(t *testing.T) {
	gate := newGate(t, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(core.ACCESS_TOKEN_HEADER_NAME, "not.a.token")

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFindSessionIDHeaderPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(core.SESSION_ID_HEADER_NAME, "from-header")
	req.AddCookie(&http.Cookie{Name: core.SESSION_ID_COOKIE_NAME, Value: "from-cookie"})

	assert.Equal(t, "from-header", FindSessionID(req))
}
