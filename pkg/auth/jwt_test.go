package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func sign(t *testing.T, method jwt.SigningMethod, secret []byte, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "operator-1",
		Issuer:    "impactchain",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestNewJWTValidator_ShortSecret(t *testing.T) {
	if _, err := NewJWTValidator([]byte("short"), ""); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestValidateToken(t *testing.T) {
	v, err := NewJWTValidator(testSecret, "impactchain")
	if err != nil {
		t.Fatalf("NewJWTValidator failed: %v", err)
	}

	claims, err := v.ValidateToken(sign(t, jwt.SigningMethodHS256, testSecret, validClaims()))
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Subject != "operator-1" {
		t.Fatalf("subject = %q", claims.Subject)
	}

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil
	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"
	noSubject := validClaims()
	noSubject.Subject = ""

	tests := map[string]string{
		"expired":      sign(t, jwt.SigningMethodHS256, testSecret, expired),
		"no expiry":    sign(t, jwt.SigningMethodHS256, testSecret, noExpiry),
		"wrong issuer": sign(t, jwt.SigningMethodHS256, testSecret, wrongIssuer),
		"no subject":   sign(t, jwt.SigningMethodHS256, testSecret, noSubject),
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("ffffffffffffffffffffffffffffffff"), validClaims()),
		"wrong alg":    sign(t, jwt.SigningMethodHS512, testSecret, validClaims()),
		"garbage":      "not.a.token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := v.ValidateToken(token); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	v, err := NewJWTValidator(testSecret, "")
	if err != nil {
		t.Fatalf("NewJWTValidator failed: %v", err)
	}

	var gotSubject string
	handler := v.Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"invalid", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid", "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, validClaims()), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/npos", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
	if gotSubject != "operator-1" {
		t.Fatalf("subject in context = %q", gotSubject)
	}
}

func TestIssueToken(t *testing.T) {
	v, err := NewJWTValidator(testSecret, "impactchain")
	if err != nil {
		t.Fatalf("NewJWTValidator failed: %v", err)
	}

	token, err := IssueToken(testSecret, "operator-2", "impactchain", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	claims, err := v.ValidateToken(token)
	if err != nil {
		t.Fatalf("issued token rejected: %v", err)
	}
	if claims.Subject != "operator-2" {
		t.Fatalf("subject = %q", claims.Subject)
	}

	if _, err := IssueToken([]byte("short"), "operator-2", "", time.Hour); err == nil {
		t.Fatal("expected error for short secret")
	}
	if _, err := IssueToken(testSecret, "", "", time.Hour); err == nil {
		t.Fatal("expected error for empty subject")
	}
}
