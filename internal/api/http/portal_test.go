package http

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/recruitment-portal/internal/api/http/handlers"
	"github.com/spec-kit/recruitment-portal/internal/config"
	"github.com/spec-kit/recruitment-portal/internal/events"
	"github.com/spec-kit/recruitment-portal/internal/guard"
	"github.com/spec-kit/recruitment-portal/internal/observability"
	"github.com/spec-kit/recruitment-portal/internal/session"
	"github.com/spec-kit/recruitment-portal/internal/upstream"
)

const testCookieName = "portal_session"

// fakeRecruitmentAPI stands in for the remote recruitment service. It issues
// real JWTs so the portal's local expiry check sees the same truth the
// server does, and it can revoke tokens mid-session to exercise the 401 path.
type fakeRecruitmentAPI struct {
	secret        []byte
	tokenTTL      time.Duration
	revoked       atomic.Bool
	protectedHits atomic.Int64
}

func (f *fakeRecruitmentAPI) issueToken(t *testing.T, personID int64) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": personID,
		"exp": time.Now().Add(f.tokenTTL).Unix(),
	}).SignedString(f.secret)
	require.NoError(t, err)
	return signed
}

func (f *fakeRecruitmentAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := nethttp.NewServeMux()

	mux.HandleFunc("POST /auth/generateToken", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		username := r.URL.Query().Get("username")
		password := r.URL.Query().Get("password")

		var role string
		var id int64
		switch {
		case username == "anna" && password == "applicant-pw":
			role, id = "applicant", 42
		case username == "rob" && password == "recruiter-pw":
			role, id = "recruiter", 7
		default:
			nethttp.Error(w, "wrong username or password", nethttp.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": f.issueToken(t, id),
			"role":  role,
			"id":    id,
		})
	})

	protected := func(body string) nethttp.HandlerFunc {
		return func(w nethttp.ResponseWriter, r *nethttp.Request) {
			f.protectedHits.Add(1)
			auth := r.Header.Get("Authorization")
			if len(auth) < 8 || auth[:7] != "Bearer " {
				nethttp.Error(w, "missing token", nethttp.StatusUnauthorized)
				return
			}
			if f.revoked.Load() {
				nethttp.Error(w, "token revoked", nethttp.StatusUnauthorized)
				return
			}
			if _, err := jwt.Parse(auth[7:], func(*jwt.Token) (any, error) { return f.secret, nil }); err != nil {
				nethttp.Error(w, "invalid token", nethttp.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}

	mux.HandleFunc("/application/getAllAvailability", protected(`[]`))
	mux.HandleFunc("/review/getApplications", protected(`[{"applicationId":1,"applicant":{"id":42,"name":"Anna","surname":"Svensson"},"applicationStatus":"unchecked","versionNumber":0}]`))
	mux.HandleFunc("/translation/getStandardCompetences", protected(`[{"competenceId":1,"name":"ticket sales"}]`))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestPortal(t *testing.T, upstreamURL string, store session.Store) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	client, err := upstream.NewClient(config.UpstreamConfig{BaseURL: upstreamURL, TimeoutSeconds: 5}, logger, metrics)
	require.NoError(t, err)

	dispatcher := events.NewInMemoryDispatcher()
	sessionGuard := guard.New(store, dispatcher, logger, testCookieName)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics)
	RegisterRoutes(app, RouteConfig{
		Health:    handlers.NewHealthHandler("portal-test", "test", nil),
		Auth:      handlers.NewAuthHandler(client, store, dispatcher, testCookieName),
		Catalog:   handlers.NewCatalogHandler(client, store, dispatcher),
		Applicant: handlers.NewApplicantHandler(client, store, dispatcher),
		Recruiter: handlers.NewRecruiterHandler(client, store, dispatcher),
		Guard:     sessionGuard,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, cookie *nethttp.Cookie) (*nethttp.Response, map[string]any) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func sessionCookie(t *testing.T, resp *nethttp.Response) *nethttp.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func login(t *testing.T, app *fiber.App, username, password string) *nethttp.Cookie {
	t.Helper()
	resp, _ := doJSON(t, app, nethttp.MethodPost, "/auth/login",
		map[string]string{"username": username, "password": password}, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	return sessionCookie(t, resp)
}

func TestLoginBadCredentials(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: time.Hour}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/auth/login",
		map[string]string{"username": "anna", "password": "wrong"}, nil)

	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "INVALID_CREDENTIALS", errBody["code"])
	assert.Equal(t, "wrong username or password", errBody["message"])
}

func TestLoginPopulatesSession(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: time.Hour}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	cookie := login(t, app, "anna", "applicant-pw")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "applicant", data["role"])
	assert.Equal(t, float64(42), data["personId"])
}

func TestAnonymousGuardedRouteRedirects(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: time.Hour}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/catalog/competences", nil, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, int64(0), fake.protectedHits.Load())
}

func TestApplicantFlowThenExpiry(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: 2 * time.Second}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	cookie := login(t, app, "anna", "applicant-pw")

	// Fresh token: the applicant route renders.
	resp, body := doJSON(t, app, nethttp.MethodGet, "/applicant/availability", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["data"])
	hitsAfterFirst := fake.protectedHits.Load()
	require.Equal(t, int64(1), hitsAfterFirst)

	// Wait past exp: the same navigation now bounces to login without a
	// single upstream call, and the session is gone.
	time.Sleep(2200 * time.Millisecond)

	resp, body = doJSON(t, app, nethttp.MethodGet, "/applicant/availability", nil, cookie)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "SESSION_EXPIRED", errBody["code"])
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, hitsAfterFirst, fake.protectedHits.Load())

	resp, body = doJSON(t, app, nethttp.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]any)["authenticated"])
}

func TestRecruiterRevokedMidSession(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: time.Hour}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	cookie := login(t, app, "rob", "recruiter-pw")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/recruiter/applications", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	applications := body["data"].([]any)
	require.Len(t, applications, 1)

	// The server revokes the token while the portal still thinks it is live.
	fake.revoked.Store(true)

	resp, body = doJSON(t, app, nethttp.MethodGet, "/recruiter/applications", nil, cookie)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", body["error"].(map[string]any)["code"])
	assert.Equal(t, "/login", body["redirect"])

	// The 401 tore the whole session down.
	resp, body = doJSON(t, app, nethttp.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]any)["authenticated"])
}

func TestWrongRoleKeepsSession(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: time.Hour}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	cookie := login(t, app, "anna", "applicant-pw")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/recruiter/applications", nil, cookie)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])
	assert.Equal(t, "/login", body["redirect"])
	assert.Equal(t, int64(0), fake.protectedHits.Load())

	// Being turned away from the recruiter dashboard must not sign the
	// applicant out.
	resp, body = doJSON(t, app, nethttp.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["authenticated"])
	assert.Equal(t, "applicant", data["role"])

	resp, _ = doJSON(t, app, nethttp.MethodGet, "/applicant/availability", nil, cookie)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestLogoutClearsSession(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: time.Hour}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	cookie := login(t, app, "rob", "recruiter-pw")

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["data"].(map[string]any)["authenticated"])

	// Logging out twice is harmless.
	resp, _ = doJSON(t, app, nethttp.MethodPost, "/auth/logout", nil, cookie)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestCatalogReachableByBothRoles(t *testing.T) {
	fake := &fakeRecruitmentAPI{secret: []byte("upstream-secret"), tokenTTL: time.Hour}
	store := session.NewMemoryStore(time.Hour)
	defer store.Close()
	app := newTestPortal(t, fake.server(t).URL, store)

	for _, account := range []struct{ username, password string }{
		{"anna", "applicant-pw"},
		{"rob", "recruiter-pw"},
	} {
		cookie := login(t, app, account.username, account.password)
		resp, body := doJSON(t, app, nethttp.MethodGet, "/catalog/competences", nil, cookie)
		require.Equal(t, nethttp.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body["data"])
	}
}
