package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func authedHandler() (http.Handler, *string) {
	var seenUserID string
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seenUserID
}

func TestAuthenticateAcceptsBearerToken(t *testing.T) {
	handler, seenUserID := authedHandler()

	token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-42", "exp": time.Now().Add(time.Hour).Unix()})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if *seenUserID != "user-42" {
		t.Fatalf("expected user-42 in context, got %q", *seenUserID)
	}
}

func TestAuthenticateAcceptsQueryToken(t *testing.T) {
	handler, seenUserID := authedHandler()

	token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-7"})
	req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for query token, got %d", rec.Code)
	}
	if *seenUserID != "user-7" {
		t.Fatalf("expected user-7 in context, got %q", *seenUserID)
	}
}

func TestAuthenticateNumericSubject(t *testing.T) {
	handler, seenUserID := authedHandler()

	token := signToken(t, testSecret, jwt.MapClaims{"sub": float64(12345)})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if *seenUserID != "12345" {
		t.Fatalf("expected numeric subject as string, got %q", *seenUserID)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	handler, _ := authedHandler()

	cases := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no token", func(*http.Request) {}},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.jwt") }},
		{"wrong secret", func(r *http.Request) {
			token := signToken(t, "other-secret", jwt.MapClaims{"sub": "user-1"})
			r.Header.Set("Authorization", "Bearer "+token)
		}},
		{"expired token", func(r *http.Request) {
			token := signToken(t, testSecret, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()})
			r.Header.Set("Authorization", "Bearer "+token)
		}},
		{"missing sub", func(r *http.Request) {
			token := signToken(t, testSecret, jwt.MapClaims{"aud": "someone"})
			r.Header.Set("Authorization", "Bearer "+token)
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			c.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
