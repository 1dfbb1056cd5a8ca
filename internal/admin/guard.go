// Package admin gates the back office behind the shared admin password.
package admin

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"petcare15/internal/utils"
	"petcare15/pkg/types"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultMaxAttempts     = 5
	DefaultLockoutDuration = 15 * time.Minute
	DefaultSessionMaxAge   = 24 * time.Hour
)

type Options struct {
	// bcrypt hash of the admin password
	PasswordHash    string
	MaxAttempts     int
	LockoutDuration time.Duration

	CookieName    string
	SessionMaxAge time.Duration
	SecureCookie  bool
	HashKey       []byte
	BlockKey      []byte

	Now func() time.Time
}

// LockoutError is returned while login attempts are suspended. Started is set
// on the attempt that triggered the lockout.
type LockoutError struct {
	Until   time.Time
	Started bool
}

func (e *LockoutError) Error() string {
	return fmt.Sprintf("%s: locked out until %s", types.ErrLockedOut, e.Until.Format(time.RFC3339))
}

func (e *LockoutError) Unwrap() error {
	return types.ErrLockedOut
}

// throttle is the process-wide login state. It is not persisted and resets
// with the process.
type throttle struct {
	failedAttempts int
	lockoutUntil   time.Time
}

type session struct {
	Nonce    string
	IssuedAt int64
}

// Guard throttles admin logins and issues and verifies session cookies. A
// single counter covers every caller.
type Guard struct {
	mu    sync.Mutex
	state throttle

	hash        []byte
	maxAttempts int
	lockout     time.Duration

	cookieName string
	maxAge     time.Duration
	secure     bool
	codec      *securecookie.SecureCookie

	now func() time.Time
}

func NewGuard(opts Options) (*Guard, error) {
	if opts.PasswordHash == "" {
		return nil, errors.New("admin password hash is required")
	}

	if _, err := bcrypt.Cost([]byte(opts.PasswordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.LockoutDuration <= 0 {
		opts.LockoutDuration = DefaultLockoutDuration
	}
	if opts.SessionMaxAge <= 0 {
		opts.SessionMaxAge = DefaultSessionMaxAge
	}
	if opts.CookieName == "" {
		opts.CookieName = "admin_session"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if len(opts.HashKey) == 0 {
		opts.HashKey = securecookie.GenerateRandomKey(64)
	}
	if len(opts.BlockKey) == 0 {
		opts.BlockKey = securecookie.GenerateRandomKey(32)
	}

	codec := securecookie.New(opts.HashKey, opts.BlockKey)
	codec.MaxAge(int(opts.SessionMaxAge.Seconds()))

	return &Guard{
		hash:        []byte(opts.PasswordHash),
		maxAttempts: opts.MaxAttempts,
		lockout:     opts.LockoutDuration,
		cookieName:  opts.CookieName,
		maxAge:      opts.SessionMaxAge,
		secure:      opts.SecureCookie,
		codec:       codec,
		now:         opts.Now,
	}, nil
}

// Login checks password and returns a session token on success. The lockout
// window is checked before the password, so a correct password is refused
// while it is active.
func (g *Guard) Login(password string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Before(g.state.lockoutUntil) {
		return "", &LockoutError{Until: g.state.lockoutUntil}
	}

	err := bcrypt.CompareHashAndPassword(g.hash, []byte(password))
	if err == nil {
		g.state = throttle{}
		return g.issue(now)
	}

	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return "", fmt.Errorf("failed to compare admin password: %w", err)
	}

	g.state.failedAttempts++
	if g.state.failedAttempts >= g.maxAttempts {
		g.state.lockoutUntil = now.Add(g.lockout)
		return "", &LockoutError{Until: g.state.lockoutUntil, Started: true}
	}

	return "", types.ErrIncorrectPassword
}

func (g *Guard) issue(now time.Time) (string, error) {
	token, err := g.codec.Encode(g.cookieName, session{
		Nonce:    utils.NanoID(),
		IssuedAt: now.Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode admin session: %w", err)
	}

	return token, nil
}

// Check reports whether token is a session this guard issued and that has not
// expired.
func (g *Guard) Check(token string) bool {
	if token == "" {
		return false
	}

	var s session
	if err := g.codec.Decode(g.cookieName, token, &s); err != nil {
		return false
	}

	if s.Nonce == "" {
		return false
	}

	return g.now().Before(time.Unix(s.IssuedAt, 0).Add(g.maxAge))
}

// CheckRequest verifies the session cookie carried by r.
func (g *Guard) CheckRequest(r *http.Request) bool {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return false
	}

	return g.Check(cookie.Value)
}

func (g *Guard) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(g.maxAge.Seconds()),
		Path:     "/",
	})
}

// Logout clears the session cookie. Tokens are not tracked server side.
func (g *Guard) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func (g *Guard) CookieName() string {
	return g.cookieName
}

func (g *Guard) LockoutDuration() time.Duration {
	return g.lockout
}

// State returns the current failure count and lockout deadline.
func (g *Guard) State() (int, time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.failedAttempts, g.state.lockoutUntil
}

func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = throttle{}
}
