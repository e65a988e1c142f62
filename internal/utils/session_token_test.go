package utils

import (
	"errors"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	sid, err := NewSessionID()
	if err != nil {
		t.Fatalf("NewSessionID: %v", err)
	}
	if len(sid) != 48 {
		t.Fatalf("unexpected session id length: %d", len(sid))
	}

	token, err := NewSessionToken("secret", sid, time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	got, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if got != sid {
		t.Fatalf("session id mismatch: got %q want %q", got, sid)
	}
}

func TestSessionTokenWrongSecretRejected(t *testing.T) {
	token, err := NewSessionToken("secret", "abc", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if _, err := ParseSessionToken("other", token); !errors.Is(err, ErrInvalidSessionToken) {
		t.Fatalf("expected ErrInvalidSessionToken, got %v", err)
	}
}

func TestSessionTokenExpiredRejected(t *testing.T) {
	token, err := NewSessionToken("secret", "abc", -time.Minute)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if _, err := ParseSessionToken("secret", token); !errors.Is(err, ErrInvalidSessionToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}
