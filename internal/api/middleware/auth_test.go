package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minishop/store-api/internal/core/domain"
	"github.com/minishop/store-api/internal/core/service"
)

func issueToken(t *testing.T, tokens *service.TokenService, id string) string {
	t.Helper()
	token, err := tokens.Issue(&domain.User{
		ID:       id,
		FullName: "Alice Example",
		Email:    "alice@example.com",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, "user_1"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens)(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "user_1" {
			t.Fatalf("user_id not set")
		}
		claims, ok := c.Get(CtxClaims).(*service.TokenClaims)
		if !ok || claims.Email != "alice@example.com" {
			t.Fatalf("claims not set: %+v", c.Get(CtxClaims))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	otherKey := service.NewTokenService("other", time.Hour)
	expired := service.NewTokenService("secret", time.Millisecond)
	expiredToken := issueToken(t, expired, "user_1")
	time.Sleep(10 * time.Millisecond)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", issueToken(t, tokens, "user_1")},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-token"},
		{"wrong key", "Bearer " + issueToken(t, otherKey, "user_1")},
		{"expired", "Bearer " + expiredToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := Auth(tokens)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			err := handler(c)
			if err == nil {
				t.Fatalf("expected error")
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusForbidden {
				t.Fatalf("expected 403 HTTPError, got %v", err)
			}
		})
	}
}

func TestOwns(t *testing.T) {
	if !Owns("user_1", "user_1") {
		t.Fatalf("expected owner match")
	}
	if Owns("user_1", "user_2") {
		t.Fatalf("expected mismatch")
	}
	if Owns("", "") {
		t.Fatalf("empty ids must never own anything")
	}
}

func TestRequireOwner(t *testing.T) {
	e := echo.New()
	tokens := service.NewTokenService("secret", time.Hour)

	run := func(tokenID, pathID string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPut, "/user/"+pathID, nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, tokenID))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/user/:id")
		c.SetParamNames("id")
		c.SetParamValues(pathID)

		chain := Auth(tokens)(RequireOwner("id")(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		}))
		return rec, chain(c)
	}

	if rec, err := run("idA", "idA"); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("owner rejected: err=%v code=%d", err, rec.Code)
	}

	// structurally valid token for a different user must be forbidden
	_, err := run("idB", "idA")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}
