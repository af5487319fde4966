// Package auth signs and verifies the session tokens carried in the
// fna_session cookie. Tokens are payload.signature pairs, HMAC-SHA256 over
// the base64 payload, same construction the rest of the stack uses for
// stateless identity.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// CookieName is the session cookie used by the API.
const CookieName = "fna_session"

// Claims is the identity stored in a session token.
type Claims struct {
	AgentID   string `json:"sub"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
}

var (
	ErrMissingSecret = errors.New("session secret not configured")
	ErrInvalidToken  = errors.New("invalid session token")
)

// Sessions signs and verifies session tokens with a fixed secret and TTL.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions constructs a Sessions helper. An empty secret falls back to a
// dev-only value; config.Load warns when that happens in production.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	if strings.TrimSpace(secret) == "" {
		secret = "dev-session-secret"
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Sessions{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the given claims, stamping Iat and Exp.
func (s *Sessions) Issue(claims Claims) (string, error) {
	if claims.AgentID == "" {
		return "", errors.New("agent id is required")
	}

	now := s.now().UTC()
	claims.Iat = now.Unix()
	claims.Exp = now.Add(s.ttl).Unix()

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

// Verify checks a token's signature and expiry and returns its claims.
func (s *Sessions) Verify(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return Claims{}, ErrInvalidToken
	}

	if !hmac.Equal([]byte(parts[1]), []byte(s.sign(parts[0]))) {
		return Claims{}, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.AgentID == "" {
		return Claims{}, ErrInvalidToken
	}
	if claims.Exp > 0 && s.now().UTC().Unix() > claims.Exp {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

// TTL reports the configured session lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) sign(input string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
