package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"main/middleware"
	"main/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
	utils.InitJWT()
	os.Exit(m.Run())
}

func newAuthedRouter() *gin.Engine {
	router := gin.New()
	router.GET("/whoami", middleware.AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router := newAuthedRouter()

	token, err := utils.GenerateAccessToken("user-42", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if want := `"user_id":"user-42"`; !strings.Contains(w.Body.String(), want) {
		t.Errorf("body = %s, want it to carry %s", w.Body.String(), want)
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	router := newAuthedRouter()

	expired, err := utils.GenerateAccessToken("user-42", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestInternalAuthMiddleware(t *testing.T) {
	os.Setenv("INTERNAL_API_TOKEN", "hunter2")
	defer os.Unsetenv("INTERNAL_API_TOKEN")

	router := gin.New()
	router.POST("/internal/ping", middleware.InternalAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodPost, "/internal/ping", nil)
	req.Header.Set("X-Internal-Token", "hunter2")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/internal/ping", nil)
	req.Header.Set("X-Internal-Token", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token status = %d, want 401", w.Code)
	}
}
