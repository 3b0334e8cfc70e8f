package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	token, err := mgr.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, err := mgr.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user 42, got %d", id)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewManager("secret-b", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	mgr := NewManager("test-secret", -time.Minute)

	token, err := mgr.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := mgr.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	mgr := NewManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := mgr.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
