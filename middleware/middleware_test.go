package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogicum/middleware"
	"blogicum/services"
	"blogicum/testutil"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const cookieName = "blogicum_session"

func whoAmI(c *gin.Context) {
	if actor := middleware.CurrentActor(c); actor != nil {
		c.String(http.StatusOK, actor.Username)
		return
	}
	c.String(http.StatusOK, "anonymous")
}

func TestLoadActor(t *testing.T) {
	db := testutil.OpenTest(t)
	alice := testutil.CreateUser(t, db, "alice")
	issuer := utils.NewTokenIssuer("secret", time.Hour, utils.NewRealClock())

	r := gin.New()
	r.Use(middleware.LoadActor(issuer, services.NewUserService(db), cookieName, zap.NewNop().Sugar()))
	r.GET("/whoami", whoAmI)

	token, err := issuer.Generate(alice.ID)
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("garbage token is anonymous and cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "not-a-jwt"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "anonymous", w.Body.String())
		assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=;")
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, "anonymous", w.Body.String())
	})
}

func TestLoginRequiredRedirectsWithNext(t *testing.T) {
	r := gin.New()
	r.GET("/posts/create/", middleware.LoginRequired(utils.URLs{}), whoAmI)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts/create/", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login/?next=%2Fposts%2Fcreate%2F", w.Header().Get("Location"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://allowed.test"}))
	r.GET("/", whoAmI)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://allowed.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://allowed.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsEchoedOrMinted(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", whoAmI)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimit(2))
	r.GET("/", whoAmI)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler(zap.NewNop().Sugar(), func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "oops page")
	}))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "oops page", w.Body.String())
}

func TestMetricsCountsByRoute(t *testing.T) {
	metrics := middleware.NewMetrics()
	r := gin.New()
	r.Use(metrics.Middleware())
	r.GET("/posts/:id/", whoAmI)
	r.GET("/metrics", metrics.Handler())

	for _, path := range []string{"/posts/1/", "/posts/2/"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var line string
	for _, l := range strings.Split(w.Body.String(), "\n") {
		if strings.HasPrefix(l, "blogicum_http_requests_total{") && strings.Contains(l, `route="/posts/:id/"`) {
			line = l
		}
	}
	require.NotEmpty(t, line)
	assert.True(t, strings.HasSuffix(line, " 2"), line)
}
