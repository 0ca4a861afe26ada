package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "smartwash/internal/errors"
)

// CookieName is the browser cookie carrying the session token.
const CookieName = "smartwash_session"

// TTL is how long a session stays valid after login.
const TTL = 24 * time.Hour

// ContextKey is where the resolved Identity is stored on the request context.
const ContextKey = "identity"

// Claims is the JWT payload of a session cookie. The token carries only
// the session id (jti); the identity itself lives in the Store.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager mints, resolves and destroys sessions. The cookie token is a
// signed JWT whose jti points at the identity record in the Store, so a
// tampered cookie fails signature validation and a logged-out session
// fails the store lookup.
type Manager struct {
	secret []byte
	store  Store
}

// NewManager creates a session manager signing tokens with secret.
func NewManager(secret string, store Store) *Manager {
	return &Manager{
		secret: []byte(secret),
		store:  store,
	}
}

// Create binds an identity to a fresh session and returns the cookie token.
func (m *Manager) Create(ctx context.Context, ident Identity) (string, error) {
	sessionID := uuid.New().String()
	if err := m.store.Save(ctx, sessionID, ident, TTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Resolve validates a cookie token and returns the identity it points at.
func (m *Manager) Resolve(ctx context.Context, token string) (*Identity, error) {
	sessionID, err := m.parseSessionID(token)
	if err != nil {
		return nil, apperrors.ErrSessionNotFound
	}
	return m.store.Get(ctx, sessionID)
}

// Destroy erases the session a cookie token points at.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	sessionID, err := m.parseSessionID(token)
	if err != nil {
		return apperrors.ErrSessionNotFound
	}
	return m.store.Delete(ctx, sessionID)
}

func (m *Manager) parseSessionID(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.ID, nil
}
