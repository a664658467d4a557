package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// Session is the authenticated identity held server-side for one browser
// session.
type Session struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

// Manager owns the mapping from an opaque session id to a Session.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager creates a session manager on top of a Store.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start establishes session state for a user and returns the new session id.
func (m *Manager) Start(ctx context.Context, userID uint, role string) (string, error) {
	sid := uuid.New().String()
	payload, err := json.Marshal(Session{UserID: userID, Role: role})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := m.store.Set(ctx, sessionKeyPrefix+sid, payload, m.ttl); err != nil {
		return "", err
	}
	return sid, nil
}

// Current returns the session for sid, or nil if none exists.
func (m *Manager) Current(ctx context.Context, sid string) (*Session, error) {
	data, err := m.store.Get(ctx, sessionKeyPrefix+sid)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		// Corrupt payload is treated as no session.
		return nil, nil
	}
	return &sess, nil
}

// End clears all session state for sid.
func (m *Manager) End(ctx context.Context, sid string) error {
	return m.store.Delete(ctx, sessionKeyPrefix+sid)
}
