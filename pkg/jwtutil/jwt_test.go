package jwtutil

import (
	"strings"
	"testing"

	"github.com/rems1212/Employee-Canteen/internal/model"
	"github.com/rems1212/Employee-Canteen/pkg/config"
)

func testUser() *model.User {
	return &model.User{
		ID:      7,
		Name:    "Asha",
		Email:   "asha@example.com",
		Role:    model.RoleManager,
		Canteen: model.Canteen2,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 7 || claims.Email != "asha@example.com" {
		t.Errorf("claims identity = %d/%s", claims.UserID, claims.Email)
	}
	if claims.Role != model.RoleManager {
		t.Errorf("claims role = %s, want manager", claims.Role)
	}
	if claims.Canteen != model.Canteen2 {
		t.Errorf("claims canteen = %s, want canteen 2", claims.Canteen)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("tampered token validated")
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	token, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	Initialize(&config.JWTConfig{SigningKey: "key-two", ExpirationHours: 1})
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with a different key validated")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: -1})

	token, err := GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}
