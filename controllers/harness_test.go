package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blogicum/config"
	"blogicum/models"
	"blogicum/routes"
	"blogicum/testutil"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// harness runs the whole application against an in-memory database.
type harness struct {
	t      *testing.T
	cfg    *config.Config
	db     *gorm.DB
	clock  *utils.StubClock
	issuer *utils.TokenIssuer
	router *gin.Engine
}

func newHarness(t *testing.T, overrides ...func(*config.Config)) *harness {
	t.Helper()

	cfg := config.Default()
	cfg.RateLimitRPM = 0
	for _, o := range overrides {
		o(cfg)
	}

	db := testutil.OpenTest(t)
	clock := utils.NewStubClock()
	return &harness{
		t:      t,
		cfg:    cfg,
		db:     db,
		clock:  clock,
		issuer: utils.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL, clock),
		router: routes.NewRouter(cfg, db, zap.NewNop().Sugar(), clock),
	}
}

func (h *harness) request(method, path string, form url.Values, as *models.User) *httptest.ResponseRecorder {
	h.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if as != nil {
		token, err := h.issuer.Generate(as.ID)
		require.NoError(h.t, err)
		req.AddCookie(&http.Cookie{Name: h.cfg.SessionCookieName, Value: token})
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) get(path string, as *models.User) *httptest.ResponseRecorder {
	return h.request(http.MethodGet, path, nil, as)
}

func (h *harness) post(path string, form url.Values, as *models.User) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return h.request(http.MethodPost, path, form, as)
}

func requireRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	require.Equal(t, location, w.Header().Get("Location"))
}

func withTitle(title string) func(*models.Post) {
	return func(p *models.Post) { p.Title = title }
}

func withID(id uint) func(*models.Post) {
	return func(p *models.Post) { p.ID = id }
}
