package utils // package utils provides helpers for session identifiers and cookie tokens

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionToken is returned when a cookie token fails signature or
// claim validation.
var ErrInvalidSessionToken = errors.New("invalid session token")

// NewSessionID returns a random hex session identifier.  The identifier is
// the key of the server-side session record; it never reaches the client
// unsigned.
func NewSessionID() (string, error) {
	return randomHex(24) // 24 bytes -> 48 hex chars
}

// NewSessionToken wraps a session ID in a signed HS256 token with the
// session's expiry.  The signature keeps clients from minting or altering
// session identifiers; the authoritative state still lives server-side and
// disappears when the session record does.
func NewSessionToken(secret, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseSessionToken validates a cookie token and returns the embedded
// session ID.
func ParseSessionToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSessionToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidSessionToken
	}
	return sid, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
