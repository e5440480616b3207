package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/notebook/internal/logging"
	"github.com/dmitrijs2005/notebook/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	s, _ := newTestServer(t, nil)

	r := do(t, s.Handler(), http.MethodGet, "/health", "", nil)
	assert.Len(t, r.hdr.Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "  abc-123  ")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 300))
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Len(t, rec.Header().Get("X-Request-ID"), 128)
}

func TestAuthGate_Rejects(t *testing.T) {
	s, tokens := newTestServer(t, nil)
	id, _ := registerUser(t, s.Handler(), "Ann", "ann@x.io", "secret")

	expired := auth.NewTokenService(testSecret, -time.Minute)
	expiredToken, err := expired.GenerateToken(id)
	require.NoError(t, err)

	foreign, err := auth.NewTokenService("other-secret", time.Hour).GenerateToken(id)
	require.NoError(t, err)

	valid, err := tokens.GenerateToken(id)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"missing", ""},
		{"garbage", "not-a-token"},
		{"expired", expiredToken},
		{"wrong secret", foreign},
		{"tampered", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, route := range []struct{ method, path string }{
				{http.MethodPost, "/api/auth/getuser"},
				{http.MethodGet, "/api/notes/getnotes"},
				{http.MethodPost, "/api/notes/createnote"},
				{http.MethodPut, "/api/notes/updatenote/x"},
				{http.MethodDelete, "/api/notes/deletenote/x"},
			} {
				r := do(t, s.Handler(), route.method, route.path, tt.token, nil)
				assert.Equal(t, http.StatusUnauthorized, r.code, route.path)
				assert.Equal(t, false, r.body["success"])
				assert.Equal(t, "Please authenticate using valid token", r.body["message"])
			}
		})
	}
}

func TestAuthGate_StoresUserID(t *testing.T) {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	s := NewServer(":0", time.Second, logging.Nop{}, tokens, Services{})

	r := gin.New()
	r.GET("/probe", s.authGate(), func(c *gin.Context) {
		fromReq, _ := auth.UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"gin": userIDFromContext(c), "ctx": fromReq})
	})

	token, err := tokens.GenerateToken("u-42")
	require.NoError(t, err)

	resp := do(t, r, http.MethodGet, "/probe", token, nil)
	require.Equal(t, http.StatusOK, resp.code)
	assert.Equal(t, "u-42", resp.body["gin"])
	assert.Equal(t, "u-42", resp.body["ctx"])
}

func TestRecovery(t *testing.T) {
	s := NewServer(":0", time.Second, logging.Nop{}, auth.NewTokenService("k", time.Hour), Services{})
	s.engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	r := do(t, s.Handler(), http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, r.code)
	assert.Equal(t, "internal error", r.body["message"])
}

func TestCORS_Preflight(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/notes/getnotes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "auth-token, content-type")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "auth-token, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	assert.Empty(t, rec.Body.String())
}

func TestCORS_PreflightDefaultHeaders(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "auth-token")
}

func TestCORS_SimpleRequests(t *testing.T) {
	s, _ := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))

	r := do(t, s.Handler(), http.MethodGet, "/api/notes/getnotes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, r.code)
	assert.Equal(t, "*", r.hdr.Get("Access-Control-Allow-Origin"))
}
