package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAuthTestRouter(verify SessionVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(verify), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": UserID(c)})
	})
	return r
}

func get(r *gin.Engine, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidBearerSetsPrincipal(t *testing.T) {
	r := newAuthTestRouter(func(token string) (string, error) {
		if token != "good" {
			t.Fatalf("verifier saw %q", token)
		}
		return "u1", nil
	})

	w := get(r, "Bearer good")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != `{"uid":"u1"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestRequireAuth_SchemeCaseInsensitive(t *testing.T) {
	r := newAuthTestRouter(func(string) (string, error) { return "u1", nil })
	if w := get(r, "bearer ok"); w.Code != http.StatusOK {
		t.Fatalf("lowercase scheme: status = %d", w.Code)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	verifyFail := func(string) (string, error) { return "", errors.New("bad token") }

	cases := []struct {
		name   string
		verify SessionVerifier
		authz  string
	}{
		{"no header", verifyFail, ""},
		{"wrong scheme", verifyFail, "Basic abc"},
		{"empty token", verifyFail, "Bearer "},
		{"verifier error", verifyFail, "Bearer bad"},
		{"empty principal", func(string) (string, error) { return "", nil }, "Bearer odd"},
	}
	for _, tc := range cases {
		r := newAuthTestRouter(tc.verify)
		if w := get(r, tc.authz); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", tc.name, w.Code)
		}
	}
}

func TestUserID_AnonymousIsEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if uid := UserID(c); uid != "" {
		t.Fatalf("anonymous UserID = %q", uid)
	}
}
