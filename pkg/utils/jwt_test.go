package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", "u@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "u@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "u@example.com", "secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token, "other"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	token, err := GenerateJWT("user-1", "u@example.com", "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestGenerateAPIToken(t *testing.T) {
	token, err := GenerateAPIToken("schema-1", "secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateAPIToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	other, err := GenerateAPIToken("schema-2", "secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("GenerateAPIToken: %v", err)
	}
	if token == other {
		t.Error("tokens for different schemas should differ")
	}
}
