package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "test-secret-at-least-32-chars-long-for-security"

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	manager := NewJWTManager(testSecret, "ledgerdesk-test", 15*time.Minute)
	actorID := uuid.New()

	token, err := manager.GenerateAccessToken(actorID, "employee", "Bob Books")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	id, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if id.ID != actorID {
		t.Errorf("expected actorID %s, got %s", actorID, id.ID)
	}
	if id.Role != "employee" {
		t.Errorf("expected role 'employee', got %q", id.Role)
	}
	if id.Name != "Bob Books" {
		t.Errorf("expected name 'Bob Books', got %q", id.Name)
	}
}

func TestJWTManager_GenerateAndValidate_AdminRole(t *testing.T) {
	manager := NewJWTManager(testSecret, "ledgerdesk-test", 15*time.Minute)

	token, err := manager.GenerateAccessToken(uuid.New(), "admin", "Jane Admin")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	id, err := manager.ValidateToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if id.Role != "admin" {
		t.Errorf("expected role 'admin', got %q", id.Role)
	}
}

func TestJWTManager_Validate_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, "ledgerdesk-test", -1*time.Minute)

	token, err := manager.GenerateAccessToken(uuid.New(), "employee", "Bob")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := manager.ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWTManager_Validate_WrongSecret(t *testing.T) {
	manager := NewJWTManager(testSecret, "ledgerdesk-test", 15*time.Minute)
	other := NewJWTManager("another-secret-also-32-chars-long-at-least", "ledgerdesk-test", 15*time.Minute)

	token, err := manager.GenerateAccessToken(uuid.New(), "employee", "Bob")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := other.ValidateToken(context.Background(), token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestJWTManager_Validate_WrongIssuer(t *testing.T) {
	manager := NewJWTManager(testSecret, "ledgerdesk-test", 15*time.Minute)
	other := NewJWTManager(testSecret, "someone-else", 15*time.Minute)

	token, err := manager.GenerateAccessToken(uuid.New(), "employee", "Bob")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	_, err = other.ValidateToken(context.Background(), token)
	if err == nil {
		t.Fatal("expected error for wrong issuer")
	}
	if !strings.Contains(err.Error(), "issuer") {
		t.Errorf("expected issuer error, got %v", err)
	}
}

func TestJWTManager_Validate_Garbage(t *testing.T) {
	manager := NewJWTManager(testSecret, "ledgerdesk-test", 15*time.Minute)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := manager.ValidateToken(context.Background(), token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}
