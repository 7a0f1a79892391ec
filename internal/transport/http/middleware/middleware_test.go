package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"youwatch-api/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthJWT(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("middleware-secret-middleware-secret"), Issuer: "yw", Audience: "yw-test"}
	r := gin.New()
	r.GET("/open", AuthJWT(j, auth.Rule{}), func(c *gin.Context) {
		_, ok := PrincipalFrom(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})
	r.GET("/criador", AuthJWT(j, auth.Rule{Role: auth.RoleCriador}), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, p.Email)
	})

	criador, err := j.Issue("ana@x.com", auth.RoleCriador)
	require.NoError(t, err)
	usuario, err := j.Issue("bia@x.com", auth.RoleUsuario)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/open", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/criador", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/criador", "garbage").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/criador", usuario).Code)

	w := serve(r, http.MethodGet, "/criador", criador)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@x.com", w.Body.String())

	other := &auth.JWTer{Secret: []byte("another-secret-another-secret-12345"), Issuer: "yw", Audience: "yw-test"}
	forged, err := other.Issue("ana@x.com", auth.RoleCriador)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/criador", forged).Code)
}

func TestRateLimitPerIP(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimitPerIP(1, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", "").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(0, 0), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", "").Code)
	}
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.GET("/slow", Timeout(10*time.Millisecond), func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	assert.Equal(t, http.StatusGatewayTimeout, serve(r, http.MethodGet, "/slow", "").Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/", RequestID(), func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyRequestID)) })

	w := serve(r, http.MethodGet, "/", "")
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(KeyRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(KeyRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestAccessLogMasksSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/x?senha=hunter22&q=ok", "")
	serve(r, http.MethodGet, "/boom", "")

	entries := logs.All()
	require.Len(t, entries, 2)
	q := entries[0].ContextMap()["query"].(map[string][]string)
	assert.Equal(t, []string{"****"}, q["senha"])
	assert.Equal(t, []string{"ok"}, q["q"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
