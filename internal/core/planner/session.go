package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kiervincent5/travel-planner/internal/ports"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

const (
	AuthActionLogin  = "login"
	AuthActionLogout = "logout"
)

// SessionManager reads and writes the session keys of one user namespace
type SessionManager struct {
	store ports.KeyValueStore
}

func NewSessionManager(store ports.KeyValueStore) *SessionManager {
	return &SessionManager{store: store}
}

// CurrentSession returns nil when either key is missing or the user record
// does not parse.
func (m *SessionManager) CurrentSession(ctx context.Context) (*Session, error) {
	token, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session token: %w", err)
	}

	rawUser, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session user: %w", err)
	}

	var user SessionUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, nil
	}
	if token == "" {
		return nil, nil
	}

	return &Session{Token: token, User: user}, nil
}

func (m *SessionManager) StartSession(ctx context.Context, token string, user SessionUser) error {
	if token == "" {
		return errors.NewValidationError("session token cannot be empty")
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := m.store.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}
	if err := m.store.Set(ctx, KeyUser, string(encoded)); err != nil {
		return fmt.Errorf("write session user: %w", err)
	}
	return nil
}

// EndSession removes the session keys. Plans and handoffs stay.
func (m *SessionManager) EndSession(ctx context.Context) error {
	if err := m.store.Remove(ctx, KeyToken); err != nil {
		return fmt.Errorf("remove session token: %w", err)
	}
	if err := m.store.Remove(ctx, KeyUser); err != nil {
		return fmt.Errorf("remove session user: %w", err)
	}
	return nil
}

// AuthView is what the navigation shows for the current session
type AuthView struct {
	LoggedIn bool   `json:"loggedIn"`
	Username string `json:"username,omitempty"`
	Action   string `json:"action"`
}

func DeriveAuthView(session *Session) AuthView {
	if session == nil {
		return AuthView{Action: AuthActionLogin}
	}
	return AuthView{
		LoggedIn: true,
		Username: session.User.Username,
		Action:   AuthActionLogout,
	}
}
