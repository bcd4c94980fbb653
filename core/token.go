package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the resolved (username, role) pair derived from a valid token.
type Identity struct {
	Username string
	Role     string
}

// TokenClaims is the payload carried by issued tokens.
type TokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens. Validation is a
// predicate: any malformed, tampered, expired, or revoked token is simply
// invalid, never an error the caller has to handle.
type TokenService struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	revoked RevocationStore // optional; nil disables revocation checks
}

func NewTokenService(cfg Config, revoked RevocationStore) *TokenService {
	return &TokenService{
		secret:  []byte(cfg.JWTSecret),
		issuer:  cfg.JWTIssuer,
		ttl:     time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		revoked: revoked,
	}
}

// Issue signs a new HS256 token embedding username, role, and expiry.
func (s *TokenService) Issue(username, role string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        randomHex(16),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses and verifies a token string. It returns the embedded
// identity and true only for a well-formed, correctly signed, unexpired,
// and unrevoked token.
func (s *TokenService) Validate(ctx context.Context, tokenString string) (Identity, bool) {
	claims, ok := s.parse(tokenString)
	if !ok {
		return Identity{}, false
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil || revoked {
			// Fail closed when the revocation store is unreachable.
			return Identity{}, false
		}
	}

	return Identity{Username: claims.Username, Role: claims.Role}, true
}

// Revoke denylists a token until its natural expiry. The token must still be
// verifiable; revoking garbage is rejected.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, ok := s.parse(tokenString)
	if !ok {
		return ErrUnauthorized
	}
	if s.revoked == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, ttl)
}

func (s *TokenService) parse(tokenString string) (*TokenClaims, bool) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Username == "" {
		return nil, false
	}
	return claims, true
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		for i := range b {
			b[i] = byte(i + 1)
		}
	}
	return hex.EncodeToString(b)
}
