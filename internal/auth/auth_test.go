package auth

import (
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if !CheckPassword(hash, "s3cret-password") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("wrong password accepted")
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewService("test-secret-key-for-tokens", time.Hour)

	token, err := svc.IssueToken(42, "admin", true)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username admin, got %s", claims.Username)
	}
	if !claims.IsAdmin {
		t.Error("expected admin flag to be set")
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	issuer := NewService("secret-one", time.Hour)
	verifier := NewService("secret-two", time.Hour)

	token, err := issuer.IssueToken(1, "user", false)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("test-secret-key-for-tokens", -time.Minute)

	token, err := svc.IssueToken(1, "user", false)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := NewService("test-secret-key-for-tokens", time.Hour)

	if _, err := svc.VerifyToken("not-a-token"); err == nil {
		t.Error("malformed token must be rejected")
	}
}
