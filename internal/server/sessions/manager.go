// Package sessions keeps the server-side session table. A session is the
// sole authorization signal: it is created on successful login, destroyed on
// logout, and looked up by the session gate on every protected request.
//
// The cookie handed to the client is an HS256-signed token carrying only the
// opaque session ID; the username stays server-side.
package sessions

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/msavelyev/notedesk/internal/common"
)

type claims struct {
	jwt.RegisteredClaims
	SessionID string
}

type Manager struct {
	secret   []byte
	validity time.Duration

	mu     sync.RWMutex
	active map[string]string // session ID -> username
}

func NewManager(secret string, validity time.Duration) *Manager {
	return &Manager{
		secret:   []byte(secret),
		validity: validity,
		active:   make(map[string]string),
	}
}

// Create establishes a session for username and returns the signed cookie
// token.
func (m *Manager) Create(username string) (string, error) {
	sid := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.validity)),
		},
		SessionID: sid,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.active[sid] = username
	m.mu.Unlock()

	return signed, nil
}

// Resolve validates the cookie token and returns the session's username.
// A missing, expired or tampered token resolves to common.ErrNoSession.
func (m *Manager) Resolve(tokenString string) (string, error) {
	sid, err := m.sessionID(tokenString)
	if err != nil {
		return "", common.ErrNoSession
	}

	m.mu.RLock()
	username, ok := m.active[sid]
	m.mu.RUnlock()

	if !ok {
		return "", common.ErrNoSession
	}

	return username, nil
}

// Destroy clears the session referenced by the token. Destroying an
// unknown session is not an error.
func (m *Manager) Destroy(tokenString string) {
	sid, err := m.sessionID(tokenString)
	if err != nil {
		return
	}

	m.mu.Lock()
	delete(m.active, sid)
	m.mu.Unlock()
}

func (m *Manager) sessionID(tokenString string) (string, error) {
	c := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", common.ErrNoSession
	}

	return c.SessionID, nil
}
