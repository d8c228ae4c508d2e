package auth

import (
	"errors"
	"testing"
	"time"

	"paymentapi/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "s3cret", Issuer: "paymentapi", Expiry: time.Minute}
	token, err := GenerateToken(cfg, "ops@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	claims, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.Subject != "ops@example.com" || claims.Role != RoleOperator {
		t.Errorf("Unexpected claims %+v", claims)
	}
}

func TestParseTokenRejects(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "s3cret", Issuer: "paymentapi", Expiry: time.Minute}
	token, _ := GenerateToken(cfg, "ops")

	other := &config.JWTConfig{Secret: "different", Issuer: "paymentapi"}
	if _, err := ParseToken(other, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected wrong secret to fail, got %v", err)
	}

	wrongIssuer := &config.JWTConfig{Secret: "s3cret", Issuer: "someone-else"}
	if _, err := ParseToken(wrongIssuer, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected wrong issuer to fail, got %v", err)
	}

	expired := &config.JWTConfig{Secret: "s3cret", Issuer: "paymentapi", Expiry: -time.Minute}
	old, _ := GenerateToken(expired, "ops")
	if _, err := ParseToken(cfg, old); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected expired token to fail, got %v", err)
	}

	if _, err := ParseToken(cfg, ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected empty token to fail, got %v", err)
	}
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	if _, err := GenerateToken(&config.JWTConfig{}, "ops"); err == nil {
		t.Error("Expected error without secret")
	}
}
