package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stack-Tech-1/dept-exec-backend/domain/user"
)

func testJWTManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		SecretKey:           "test-secret-key",
		AccessTokenDuration: time.Hour,
		Issuer:              "dept-exec-backend-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := testJWTManager()

	token, err := manager.GenerateAccessToken("user-1", "ada@dept.edu", user.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("GenerateAccessToken() returned empty token")
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Email != "ada@dept.edu" {
		t.Errorf("Email = %q, want ada@dept.edu", claims.Email)
	}
	if claims.Role != user.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, user.RoleAdmin)
	}
	if claims.Issuer != "dept-exec-backend-test" {
		t.Errorf("Issuer = %q, want dept-exec-backend-test", claims.Issuer)
	}
}

func TestTokenCarriesExecRole(t *testing.T) {
	manager := testJWTManager()

	token, err := manager.GenerateAccessToken("user-2", "eve@dept.edu", user.RoleExec)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Role != user.RoleExec {
		t.Errorf("Role = %q, want %q", claims.Role, user.RoleExec)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := testJWTManager()
	other := NewJWTManager(JWTConfig{
		SecretKey:           "different-secret",
		AccessTokenDuration: time.Hour,
		Issuer:              "dept-exec-backend-test",
	})

	token, err := other.GenerateAccessToken("user-1", "ada@dept.edu", user.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		SecretKey:           "test-secret-key",
		AccessTokenDuration: -time.Minute,
		Issuer:              "dept-exec-backend-test",
	})

	token, err := manager.GenerateAccessToken("user-1", "ada@dept.edu", user.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	manager := testJWTManager()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "not-a-token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateToken(%q) error = %v, want ErrInvalidToken", tt.token, err)
			}
		})
	}
}

func TestAccessTokenDurationSeconds(t *testing.T) {
	manager := testJWTManager()
	if got := manager.AccessTokenDuration(); got != 3600 {
		t.Errorf("AccessTokenDuration() = %d, want 3600", got)
	}
}
