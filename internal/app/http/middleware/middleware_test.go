package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(testSecret), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"editor": c.GetString(EditorKey)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := adminRouter()
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Token abc", http.StatusUnauthorized},
		{"bad signature", "Bearer " + signed(t, jwt.MapClaims{"role": "admin", "exp": exp}, "other"), http.StatusUnauthorized},
		{"wrong role", "Bearer " + signed(t, jwt.MapClaims{"role": "editor", "exp": exp}, testSecret), http.StatusForbidden},
		{"no role", "Bearer " + signed(t, jwt.MapClaims{"exp": exp}, testSecret), http.StatusUnauthorized},
		{"no expiry", "Bearer " + signed(t, jwt.MapClaims{"role": "admin"}, testSecret), http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}, testSecret), http.StatusUnauthorized},
		{"admin", "Bearer " + signed(t, jwt.MapClaims{"role": "admin", "sub": "ed@example.com", "exp": exp}, testSecret), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthMiddleware_SetsEditor(t *testing.T) {
	r := adminRouter()
	tok := signed(t, jwt.MapClaims{"role": "admin", "sub": "ed@example.com", "exp": time.Now().Add(time.Hour).Unix()}, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"editor":"ed@example.com"}`, w.Body.String())
}

func TestAuthMiddleware_RejectsNoneAlg(t *testing.T) {
	r := adminRouter()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_NoSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", AuthMiddleware(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSanitizeAndCleanInputMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"title":"<b>Hello</b>","n":3}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Hello","n":3}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{nope`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/echo", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSanitizeAndCleanInputMiddleware_NestedAndRaw(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware("content"))
	r.POST("/echo", func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	in := `{"name":"<i>Promo</i>","content":"<p>kept</p>","tags":["<b>a</b>"],"meta":{"title":"<script>x</script>Hi"}}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(in))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Promo","content":"<p>kept</p>","tags":["a"],"meta":{"title":"Hi"}}`, w.Body.String())
}
