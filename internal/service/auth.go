// Package service contains application services for authentication,
// authorization, and the club's resources.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/acoudray/clubhouse/internal/crypto"
	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/limiter"
	"github.com/acoudray/clubhouse/internal/model"
	"github.com/acoudray/clubhouse/internal/repository"
	"github.com/acoudray/clubhouse/internal/token"
)

// AuthService defines registration and session authentication operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password string) (userID int64, err error)
	// Login verifies credentials, issues a signed token, and opens a session.
	Login(ctx context.Context, email, password, ip string) (rawToken string, err error)
	// Authenticate turns an Authorization header into a verified user id.
	Authenticate(ctx context.Context, authHeader string) (userID int64, err error)
	// Logout revokes the session matching the Authorization header's token.
	Logout(ctx context.Context, authHeader string) error
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	codec    *token.Codec
	lim      limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	codec *token.Codec,
	lim limiter.Limiter,
) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, sessions: sessions, codec: codec, lim: lim}
}

const bearerPrefix = "Bearer "

// bearerToken extracts the raw token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	raw := strings.TrimPrefix(header, bearerPrefix)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Register creates a new user record.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (int64, error) {
	if email == "" || password == "" {
		return 0, errs.ErrBadRequest
	}
	hash, err := pkgcrypto.HashPassword(password)
	if err != nil {
		return 0, err
	}
	return s.users.Create(ctx, email, hash)
}

// Login authenticates credentials with rate limiting by (email, ip) and
// returns the raw signed token. The raw token is never reconstructible from
// storage afterwards; only its digest is kept.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip string) (string, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", errs.ErrRateLimited
		}
		return "", errs.ErrWrongPassword
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	raw, err := s.codec.Issue(u.ID)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", errors.New("token issuance returned empty token")
	}

	sid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	sess := &model.Session{ID: sid, TokenDigest: token.Digest(raw), UserID: u.ID}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", err
	}
	return raw, nil
}

// Authenticate verifies the token's signature and expiry, then requires a
// live session under the token digest bound to the same user. A deleted
// session invalidates an otherwise valid token.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, authHeader string) (int64, error) {
	raw, ok := bearerToken(authHeader)
	if !ok {
		return 0, errs.ErrNoToken
	}

	userID, err := s.codec.Verify(raw)
	if err != nil {
		return 0, errs.ErrInvalidToken
	}

	sess, err := s.sessions.GetByDigest(ctx, token.Digest(raw))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return 0, errs.ErrInvalidToken
		}
		return 0, err
	}
	// A signed token can outlive its session, and a new session can be opened
	// under another user; the stored binding must match the token.
	if sess.UserID != userID {
		return 0, errs.ErrInvalidToken
	}
	return userID, nil
}

// Logout deletes the session stored under the token's digest. A missing
// header reports errs.ErrLogoutNoToken, which maps to an internal error
// rather than 401; the asymmetry with Authenticate is long-standing API
// behavior. Logging out an unknown token succeeds.
func (s *AuthServiceImpl) Logout(ctx context.Context, authHeader string) error {
	raw, ok := bearerToken(authHeader)
	if !ok {
		return errs.ErrLogoutNoToken
	}
	if err := s.sessions.DeleteByDigest(ctx, token.Digest(raw)); err != nil && !errors.Is(err, errs.ErrNotFound) {
		return err
	}
	return nil
}
