package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mylatitude/engage/internal/shared/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string) string {
	t.Helper()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserType: "patient",
		Email:    "anna@example.com",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return token
}

func runRequest(strict bool, authorization string) (*httptest.ResponseRecorder, *User) {
	var seen *User
	handler := Middleware(config.AuthConfig{JWTSecret: testSecret}, strict)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetUser(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestMiddlewareLenient(t *testing.T) {
	t.Run("missing token passes through", func(t *testing.T) {
		rec, user := runRequest(false, "")
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
		if user != nil {
			t.Error("No user expected without a token")
		}
	})

	t.Run("garbage token passes through", func(t *testing.T) {
		rec, user := runRequest(false, "Bearer not-a-jwt")
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
		if user != nil {
			t.Error("No user expected for an unparsable token")
		}
	})

	t.Run("valid token populates the user", func(t *testing.T) {
		rec, user := runRequest(false, "Bearer "+signToken(t, testSecret))
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
		if user == nil {
			t.Fatal("Expected user in context")
		}
		if user.Subject != "1" || user.UserType != "patient" {
			t.Errorf("Unexpected user: %+v", user)
		}
	})
}

func TestMiddlewareStrict(t *testing.T) {
	t.Run("missing token rejected", func(t *testing.T) {
		rec, _ := runRequest(true, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong signature rejected", func(t *testing.T) {
		rec, _ := runRequest(true, "Bearer "+signToken(t, "other-secret"))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token accepted", func(t *testing.T) {
		rec, user := runRequest(true, "Bearer "+signToken(t, testSecret))
		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
		if user == nil || user.Email != "anna@example.com" {
			t.Errorf("Expected authenticated user, got %+v", user)
		}
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, ok := bearerToken(req); ok {
		t.Error("No header should yield no token")
	}

	req.Header.Set("Authorization", "Basic abc")
	if _, ok := bearerToken(req); ok {
		t.Error("Non-bearer scheme should yield no token")
	}

	req.Header.Set("Authorization", "bearer abc123")
	token, ok := bearerToken(req)
	if !ok || token != "abc123" {
		t.Errorf("Scheme matching is case insensitive, got '%s' ok=%v", token, ok)
	}
}
