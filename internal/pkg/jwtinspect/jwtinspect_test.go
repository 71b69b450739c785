package jwtinspect

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signed(t, jwt.MapClaims{"sub": "u1", "exp": exp.Unix()})

	got, ok, err := ExpiresAt(token)
	if err != nil || !ok {
		t.Fatalf("ExpiresAt() = %v, %v, %v", got, ok, err)
	}
	if !got.Equal(exp) {
		t.Fatalf("ExpiresAt() = %v, want %v", got, exp)
	}
}

func TestExpiresAtNoClaim(t *testing.T) {
	token := signed(t, jwt.MapClaims{"sub": "u1"})

	_, ok, err := ExpiresAt(token)
	if err != nil || ok {
		t.Fatalf("ExpiresAt() ok = %v, err = %v, want no exp claim", ok, err)
	}
}

func TestExpiresAtMalformed(t *testing.T) {
	if _, _, err := ExpiresAt("opaque-session-token"); err != ErrMalformed {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()

	tests := map[string]struct {
		token string
		want  bool
	}{
		"Live":      {signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), false},
		"Expired":   {signed(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}), true},
		"NoExp":     {signed(t, jwt.MapClaims{"sub": "u1"}), false},
		"NotAJWT":   {"opaque-session-token", false},
		"EmptyFine": {"", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Expired(tc.token, now); got != tc.want {
				t.Fatalf("Expired() = %v, want %v", got, tc.want)
			}
		})
	}
}
