package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret")

	token, err := tm.GenerateAccessToken("u1", map[string]any{"user_id": "u1", "role": "admin"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := tm.DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken() error = %v", err)
	}
	if got := GetUserIDFromToken(claims); got != "u1" {
		t.Errorf("user id = %q, want u1", got)
	}
	if got := GetRoleFromToken(claims); got != "admin" {
		t.Errorf("role = %q, want admin", got)
	}
	if got := GetTokenID(claims); got != "u1" {
		t.Errorf("jti = %q, want u1", got)
	}
	if !IsAccessToken(claims) {
		t.Error("IsAccessToken() = false")
	}
}

func TestDecodeTokenWrongKey(t *testing.T) {
	token, err := NewTokenManager("one").GenerateAccessToken("u1", nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := NewTokenManager("two").DecodeToken(token); err == nil {
		t.Error("DecodeToken() with a different key should fail")
	}
}

func TestDecodeTokenExpired(t *testing.T) {
	tm := NewTokenManager("secret")
	token, err := tm.GenerateAccessTokenWithExpiry("u1", nil, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessTokenWithExpiry() error = %v", err)
	}
	if _, err := tm.DecodeToken(token); err == nil {
		t.Error("DecodeToken() of an expired token should fail")
	}
}

func TestMissingKey(t *testing.T) {
	tm := NewTokenManager("")
	if _, err := tm.GenerateAccessToken("u1", nil); !errors.Is(err, ErrNeedTokenProvider) {
		t.Errorf("GenerateAccessToken() error = %v, want ErrNeedTokenProvider", err)
	}
	if _, err := tm.DecodeToken("x"); !errors.Is(err, ErrNeedTokenProvider) {
		t.Errorf("DecodeToken() error = %v, want ErrNeedTokenProvider", err)
	}
}
