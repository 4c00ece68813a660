// Package token issues and verifies signed session tokens and computes the
// digest under which a session is stored.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acoudray/clubhouse/internal/errs"
)

// DefaultTTL is the fixed lifetime embedded in every issued token.
const DefaultTTL = 30 * 24 * time.Hour

// claims is the token payload: the user id plus standard timing claims.
type claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 tokens with a process-wide secret key.
type Codec struct {
	key []byte
	ttl time.Duration
}

// NewCodec constructs a Codec. An empty ttl falls back to DefaultTTL.
func NewCodec(key []byte, ttl time.Duration) (*Codec, error) {
	if len(key) == 0 {
		return nil, errors.New("token: empty signing key")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{key: key, ttl: ttl}, nil
}

// Issue creates a signed token carrying userID, issuance time, and expiry.
func (c *Codec) Issue(userID int64) (string, error) {
	now := time.Now()
	cl := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := tok.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the user id embedded in raw. Malformed input, a bad
// signature, and an expired token all collapse to errs.ErrInvalidToken.
func (c *Codec) Verify(raw string) (int64, error) {
	tok, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.key, nil
	})
	if err != nil {
		return 0, errs.ErrInvalidToken
	}
	cl, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid {
		return 0, errs.ErrInvalidToken
	}
	return cl.UserID, nil
}

// Digest returns the sha256 hex digest of a raw token. It is a deterministic
// storage index for session lookup, never an authentication decision.
func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
