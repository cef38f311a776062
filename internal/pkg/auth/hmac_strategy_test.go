package auth

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestHMACRoundTrip(t *testing.T) {
	s := NewHMACStrategy("secret", Options{})
	token, err := s.IssueToken(42, "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	userID, role, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 || role != "admin" {
		t.Fatalf("parsed %d/%s", userID, role)
	}
}

func TestHMACRejectsTamperedToken(t *testing.T) {
	s := NewHMACStrategy("secret", Options{})
	token, _ := s.IssueToken(42, "customer")

	raw, _ := base64.StdEncoding.DecodeString(token)
	tampered := strings.Replace(string(raw), "42:customer", "42:admin", 1)
	forged := base64.StdEncoding.EncodeToString([]byte(tampered))

	if _, _, err := s.ParseToken(forged); err != ErrInvalidToken {
		t.Fatalf("expected invalid token for role escalation, got %v", err)
	}
}

func TestHMACRejectsWrongSecret(t *testing.T) {
	issuer := NewHMACStrategy("one", Options{})
	verifier := NewHMACStrategy("two", Options{})
	token, _ := issuer.IssueToken(1, "customer")

	if _, _, err := verifier.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestHMACRejectsExpiredToken(t *testing.T) {
	s := NewHMACStrategy("secret", Options{})
	payload := fmt.Sprintf("1:customer:%d", time.Now().Add(-time.Hour).Unix())
	token := base64.StdEncoding.EncodeToString([]byte(payload + ":" + s.sign(payload)))

	if _, _, err := s.ParseToken(token); err != ErrInvalidToken {
		t.Fatalf("expected expired token rejection, got %v", err)
	}
}

func TestHMACRejectsGarbage(t *testing.T) {
	s := NewHMACStrategy("secret", Options{})
	for _, token := range []string{"", "not-base64!!", base64.StdEncoding.EncodeToString([]byte("a:b"))} {
		if _, _, err := s.ParseToken(token); err != ErrInvalidToken {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestIssueTokenRejectsRoleWithSeparator(t *testing.T) {
	s := NewHMACStrategy("secret", Options{})
	if _, err := s.IssueToken(1, "ad:min"); err != ErrInvalidToken {
		t.Fatalf("expected rejection, got %v", err)
	}
}
