package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func testUser(role models.Role) *models.User {
	return &models.User{
		ID:    uuid.New(),
		Name:  "Token User",
		Email: "token@example.com",
		Role:  role,
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(newTestConfig())
	user := testUser(models.RoleAdmin)

	token, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	principal, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if principal.ID != user.ID {
		t.Fatalf("principal ID = %v, want %v", principal.ID, user.ID)
	}
	if principal.Email != user.Email {
		t.Fatalf("principal email = %q, want %q", principal.Email, user.Email)
	}
	if principal.Role != models.RoleAdmin || !principal.IsAdmin() {
		t.Fatalf("principal role = %q, want admin", principal.Role)
	}
}

func TestTokenService_Expired(t *testing.T) {
	cfg := newTestConfig()
	cfg.JWTExpiry = -time.Minute
	svc := NewTokenService(cfg)

	token, err := svc.Issue(testUser(models.RoleUser))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify expired = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := NewTokenService(newTestConfig())
	token, err := svc.Issue(testUser(models.RoleUser))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	last := token[len(token)-1]
	flip := byte('A')
	if last == 'A' {
		flip = 'B'
	}
	tampered := token[:len(token)-1] + string(flip)

	if _, err := svc.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify tampered = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := NewTokenService(newTestConfig())
	token, err := svc.Issue(testUser(models.RoleUser))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := newTestConfig()
	other.JWTSecret = "a-different-secret"
	if _, err := NewTokenService(other).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Verify with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(newTestConfig())
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Verify(%q) = %v, want ErrInvalidToken", raw, err)
		}
	}
}

func TestPrincipalFromClaims_InvalidRole(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":   uuid.New().String(),
		"email": "x@example.com",
		"role":  "superuser",
	}
	if _, err := PrincipalFromClaims(claims); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("PrincipalFromClaims with bad role = %v, want ErrInvalidToken", err)
	}
}

func TestPrincipalFromClaims_MissingSub(t *testing.T) {
	claims := jwt.MapClaims{"email": "x@example.com", "role": "user"}
	if _, err := PrincipalFromClaims(claims); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("PrincipalFromClaims without sub = %v, want ErrInvalidToken", err)
	}
}
