package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pagesapi "cms-app/internal/api/pages"
	"cms-app/internal/domain/media"
	"cms-app/internal/domain/templates"
	"cms-app/internal/infra/memstore"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-secret"

func newRouter(t *testing.T) (*gin.Engine, *memstore.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memstore.New()
	r := gin.New()
	RegisterRoutes(r, pagesapi.NewHandler(st, media.Config{StaticURL: "/static/"}, nil), secret)
	return r, st
}

func adminToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"sub":  "editor@example.com",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAdminRequiresToken(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/pages/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCreateBlock_KeepsHTMLContent(t *testing.T) {
	r, st := newRouter(t)

	body := `{"name":"<b>intro</b>","type":"html","content":"<p>Hello <a href=\"https://example.com\">there</a></p>"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/blocks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	b, err := st.TemplateBlock(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, "intro", b.Name)
	assert.Equal(t, templates.BlockHTML, b.Type)
	assert.Contains(t, b.Content, `<a href="https://example.com"`)
}
