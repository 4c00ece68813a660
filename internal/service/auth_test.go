package service

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgcrypto "github.com/acoudray/clubhouse/internal/crypto"
	"github.com/acoudray/clubhouse/internal/errs"
	"github.com/acoudray/clubhouse/internal/limiter"
	"github.com/acoudray/clubhouse/internal/model"
	"github.com/acoudray/clubhouse/internal/repository"
	"github.com/acoudray/clubhouse/internal/token"
)

type fakeUsers struct {
	byID   map[int64]*model.User
	nextID int64

	createErr error
	getErr    error
	updateErr error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*model.User{}, nextID: 1}
}

func (f *fakeUsers) add(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = f.nextID
	}
	if u.ID >= f.nextID {
		f.nextID = u.ID + 1
	}
	cpy := u
	f.byID[cpy.ID] = &cpy
	return &cpy
}

func (f *fakeUsers) Create(_ context.Context, email, passwordHash string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return 0, errs.ErrAlreadyExists
		}
	}
	u := f.add(model.User{Email: email, PasswordHash: passwordHash})
	return u.ID, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cur, ok := f.byID[u.ID]
	if !ok {
		return errs.ErrNotFound
	}
	cur.Email, cur.Privilege, cur.Wallet = u.Email, u.Privilege, u.Wallet
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSessions struct {
	byDigest map[string]*model.Session

	createErr error
	getErr    error
	delErr    error
}

var _ repository.SessionRepository = (*fakeSessions)(nil)

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byDigest: map[string]*model.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, s *model.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byDigest[s.TokenDigest]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *s
	f.byDigest[s.TokenDigest] = &cpy
	return nil
}

func (f *fakeSessions) GetByDigest(_ context.Context, digest string) (*model.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.byDigest[digest]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (f *fakeSessions) DeleteByDigest(_ context.Context, digest string) error {
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.byDigest[digest]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byDigest, digest)
	return nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, nil
}

func newAuthService(t *testing.T, users *fakeUsers, sessions *fakeSessions, lim *fakeLimiter) *AuthServiceImpl {
	t.Helper()
	codec, err := token.NewCodec([]byte("test-signing-key"), time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return NewAuthService(users, sessions, codec, lim)
}

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := pkgcrypto.HashPassword(pw)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return h
}

func TestAuth_Register_Basics(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	s := newAuthService(t, users, newFakeSessions(), &fakeLimiter{allowOK: true})

	if _, err := s.Register(context.Background(), "", ""); !errors.Is(err, errs.ErrBadRequest) {
		t.Fatalf("want ErrBadRequest on empty email/password, got %v", err)
	}

	id, err := s.Register(context.Background(), "alice@club.example", "pwd")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == 0 {
		t.Fatalf("zero user id")
	}

	if _, err := s.Register(context.Background(), "alice@club.example", "pwd2"); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists on duplicate email, got %v", err)
	}

	users.createErr = errors.New("boom")
	if _, err := s.Register(context.Background(), "bob@club.example", "pwd"); err == nil {
		t.Fatalf("want propagated repo error")
	}
}

func TestAuth_Login_RateLimiterAndCreds(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	users.add(model.User{ID: 1, Email: "alice@club.example", PasswordHash: mustHash(t, "correct")})
	sessions := newFakeSessions()
	lim := &fakeLimiter{allowOK: true}
	s := newAuthService(t, users, sessions, lim)

	lim.allowErr = errors.New("lim-err")
	if _, err := s.Login(context.Background(), "alice@club.example", "correct", "1.2.3.4"); err == nil {
		t.Fatalf("want limiter error propagate")
	}
	lim.allowErr = nil

	lim.allowOK = false
	if _, err := s.Login(context.Background(), "alice@club.example", "correct", "1.2.3.4"); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited, got %v", err)
	}
	lim.allowOK = true

	if _, err := s.Login(context.Background(), "nobody@club.example", "x", ""); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound on missing user, got %v", err)
	}

	lim.failBlocked = true
	if _, err := s.Login(context.Background(), "alice@club.example", "wrong", ""); !errors.Is(err, errs.ErrRateLimited) {
		t.Fatalf("want ErrRateLimited after blocking failure, got %v", err)
	}

	lim.failBlocked = false
	if _, err := s.Login(context.Background(), "alice@club.example", "wrong", ""); !errors.Is(err, errs.ErrWrongPassword) {
		t.Fatalf("want ErrWrongPassword, got %v", err)
	}

	raw, err := s.Login(context.Background(), "alice@club.example", "correct", "127.0.0.1:123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if raw == "" {
		t.Fatalf("empty token")
	}
	if lim.successCalls == 0 {
		t.Fatalf("expected Success() to be called")
	}
	if _, ok := sessions.byDigest[token.Digest(raw)]; !ok {
		t.Fatalf("session not stored under token digest")
	}
}

func TestAuth_LoginThenAuthenticate_RoundTrip(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	users.add(model.User{ID: 7, Email: "alice@club.example", PasswordHash: mustHash(t, "pw")})
	s := newAuthService(t, users, newFakeSessions(), &fakeLimiter{allowOK: true})

	raw, err := s.Login(context.Background(), "alice@club.example", "pw", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	id, err := s.Authenticate(context.Background(), "Bearer "+raw)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if id != 7 {
		t.Fatalf("id=%d, want 7", id)
	}
}

func TestAuth_Authenticate_Failures(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	users.add(model.User{ID: 1, Email: "alice@club.example", PasswordHash: mustHash(t, "pw")})
	sessions := newFakeSessions()
	s := newAuthService(t, users, sessions, &fakeLimiter{allowOK: true})

	for name, header := range map[string]string{
		"missing header": "",
		"bare prefix":    "Bearer ",
		"spaces only":    "Bearer    ",
	} {
		if _, err := s.Authenticate(context.Background(), header); !errors.Is(err, errs.ErrNoToken) {
			t.Fatalf("%s: want ErrNoToken, got %v", name, err)
		}
	}

	if _, err := s.Authenticate(context.Background(), "Bearer not-a-token"); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("garbage: want ErrInvalidToken, got %v", err)
	}

	// valid signature but no session
	raw, err := s.codec.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := s.Authenticate(context.Background(), "Bearer "+raw); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("no session: want ErrInvalidToken, got %v", err)
	}

	// session bound to a different user than the token claims
	sessions.byDigest[token.Digest(raw)] = &model.Session{TokenDigest: token.Digest(raw), UserID: 99}
	if _, err := s.Authenticate(context.Background(), "Bearer "+raw); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("user mismatch: want ErrInvalidToken, got %v", err)
	}
}

func TestAuth_Logout_RevokesSession(t *testing.T) {
	t.Parallel()

	users := newFakeUsers()
	users.add(model.User{ID: 1, Email: "alice@club.example", PasswordHash: mustHash(t, "pw")})
	s := newAuthService(t, users, newFakeSessions(), &fakeLimiter{allowOK: true})

	raw, err := s.Login(context.Background(), "alice@club.example", "pw", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := s.Authenticate(context.Background(), "Bearer "+raw); err != nil {
		t.Fatalf("Authenticate before logout: %v", err)
	}

	if err := s.Logout(context.Background(), "Bearer "+raw); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	// token is still signature-valid and unexpired, but the session is gone
	if _, err := s.Authenticate(context.Background(), "Bearer "+raw); !errors.Is(err, errs.ErrInvalidToken) {
		t.Fatalf("after logout: want ErrInvalidToken, got %v", err)
	}

	// logging out an already-revoked token succeeds
	if err := s.Logout(context.Background(), "Bearer "+raw); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestAuth_Logout_NoTokenIsDistinctKind(t *testing.T) {
	t.Parallel()

	s := newAuthService(t, newFakeUsers(), newFakeSessions(), &fakeLimiter{allowOK: true})

	err := s.Logout(context.Background(), "")
	if !errors.Is(err, errs.ErrLogoutNoToken) {
		t.Fatalf("want ErrLogoutNoToken, got %v", err)
	}
	// the logout kind is not the authenticate kind
	if errors.Is(err, errs.ErrNoToken) {
		t.Fatalf("logout no-token must stay distinct from authenticate no-token")
	}
}
