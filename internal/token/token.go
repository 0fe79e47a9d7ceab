// Package token issues and verifies the signed identity assertions that bind
// a (UserID, Username) pair to HTTP requests and WebSocket connections.
package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed claims, or a revoked token.
var ErrInvalidToken = errors.New("token: invalid or expired token")

// Identity is the verified (UserID, Username) pair carried by a token.
type Identity struct {
	UserID   string
	Username string
}

// RevocationList records tokens invalidated before their natural expiry.
// Implemented by the redis-backed storage service.
type RevocationList interface {
	RevokeToken(token string, ttl time.Duration) error
	IsTokenRevoked(token string) (bool, error)
}

// Service signs and verifies HS256 JWTs.
type Service struct {
	secret  []byte
	expire  time.Duration
	revoked RevocationList
}

func NewService(secret string, expire time.Duration, revoked RevocationList) *Service {
	return &Service{secret: []byte(secret), expire: expire, revoked: revoked}
}

// Expire returns the configured token lifetime (used for cookie max-age).
func (s *Service) Expire() time.Duration { return s.expire }

// Issue creates a signed token for the given identity.
func (s *Service) Issue(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(s.expire).Unix(),
		"iss":      "relaychat-service",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature, expiry and revocation state of tokenString
// and returns the identity it asserts.
func (s *Service) Verify(tokenString string) (Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return Identity{}, ErrInvalidToken
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsTokenRevoked(tokenString)
		if err != nil {
			return Identity{}, err
		}
		if revoked {
			return Identity{}, ErrInvalidToken
		}
	}

	return Identity{UserID: userID, Username: username}, nil
}

// Revoke invalidates a still-valid token for the remainder of its lifetime.
// Invalid tokens are ignored: there is nothing left to revoke.
func (s *Service) Revoke(tokenString string) error {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || s.revoked == nil {
		return nil
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	remaining := time.Until(exp.Time)
	if remaining <= 0 {
		return nil
	}
	return s.revoked.RevokeToken(tokenString, remaining)
}
