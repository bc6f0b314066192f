package session

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-lead-analytics/internal/adapter"
	"github.com/feral-file/ff-lead-analytics/internal/domain"
)

// MaxTokenLength bounds the accepted cookie value
const MaxTokenLength = 128

// Config holds the correlation cookie settings
type Config struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Identity is the correlation token of one request
type Identity struct {
	Token string
	// Minted is true when the request carried no usable token
	Minted bool
}

// Resolver reads, mints and persists correlation tokens
type Resolver struct {
	cfg   Config
	clock adapter.Clock
}

// NewResolver creates a new resolver, applying cookie defaults for empty settings
func NewResolver(cfg Config, clock adapter.Clock) *Resolver {
	if cfg.CookieName == "" {
		cfg.CookieName = domain.DEFAULT_SESSION_COOKIE_NAME
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = domain.DEFAULT_SESSION_COOKIE_MAX_AGE
	}
	return &Resolver{cfg: cfg, clock: clock}
}

// CookieName returns the name of the correlation cookie
func (r *Resolver) CookieName() string {
	return r.cfg.CookieName
}

// Resolve returns the request's token, minting a new one when it is absent or malformed
func (r *Resolver) Resolve(req *http.Request) Identity {
	if token, ok := r.Peek(req); ok {
		return Identity{Token: token}
	}
	return Identity{Token: r.Mint(), Minted: true}
}

// Peek returns the request's token without minting
func (r *Resolver) Peek(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(r.cfg.CookieName)
	if err != nil {
		return "", false
	}
	if !WellFormed(cookie.Value) {
		return "", false
	}
	return cookie.Value, true
}

// Mint creates a new token: a ULID of the current millisecond and 80 random bits
func (r *Resolver) Mint() string {
	id, err := ulid.New(ulid.Timestamp(r.clock.Now()), rand.Reader)
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}

// Persist sets the correlation cookie on the response
func (r *Resolver) Persist(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     r.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(r.cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// WellFormed checks that a token is non-empty, bounded and URL safe
func WellFormed(token string) bool {
	if token == "" || len(token) > MaxTokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= '0' && c <= '9',
			c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
