package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken(42, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotAccountID, err := GetAccountIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetAccountIDFromToken error: %v", err)
	}
	if gotAccountID != 42 {
		t.Fatalf("accountID mismatch: got %d want 42", gotAccountID)
	}
}

func TestGetAccountIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken(1, secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err = GetAccountIDFromToken(tok, secret); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestGetAccountIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err = GetAccountIDFromToken(tok, []byte("wrong-secret")); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestGetAccountIDFromToken_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := GetAccountIDFromToken("not.a.jwt", []byte("k")); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
