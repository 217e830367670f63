package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vidshare/internal/pkg/jwtutil"
)

// ErrNoSession means the request carries no valid, live session.
var ErrNoSession = errors.New("no authenticated session")

const cookieName = "vidshare_session"

// Principal is any authenticated identity; the concrete user type stays out
// of this package.
type Principal interface {
	PrincipalID() uint
}

// Manager issues and resolves browser sessions. The cookie holds a signed
// token whose only payload is a random session ID; the ID maps to the
// principal in the Store until logout or TTL expiry.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
	}
}

// Issue starts an authenticated session for p and sets the cookie.
func (m *Manager) Issue(ctx context.Context, c *gin.Context, p Principal) error {
	sessionID := uuid.NewString()
	if err := m.store.Save(ctx, sessionID, p.PrincipalID(), m.ttl); err != nil {
		return err
	}

	token, err := jwtutil.GenerateToken(m.secret, m.ttl, sessionID)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
	return nil
}

// Current returns the principal ID for the request's session, or
// ErrNoSession. A missing cookie, a bad signature and an expired or revoked
// session all look the same to callers.
func (m *Manager) Current(ctx context.Context, c *gin.Context) (uint, error) {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return 0, ErrNoSession
	}

	claims, err := jwtutil.ParseToken(m.secret, token)
	if err != nil {
		return 0, ErrNoSession
	}

	principalID, ok, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNoSession
	}
	return principalID, nil
}

// Clear revokes the session and drops the cookie.
func (m *Manager) Clear(ctx context.Context, c *gin.Context) error {
	token, err := c.Cookie(cookieName)
	if err == nil && token != "" {
		if claims, parseErr := jwtutil.ParseToken(m.secret, token); parseErr == nil {
			if delErr := m.store.Delete(ctx, claims.SessionID); delErr != nil {
				return delErr
			}
		}
	}

	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	return nil
}
