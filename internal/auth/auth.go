package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"nio/internal/db"
)

const tokenKey = "auth.token"

var ErrEmptyToken = errors.New("token is empty")

// Authenticator tracks the personal API token. A token given through
// configuration takes precedence over the stored one.
type Authenticator struct {
	db       *sql.DB
	override string

	mu    sync.RWMutex
	token string
}

func New(conn *sql.DB, override string) *Authenticator {
	return &Authenticator{db: conn, override: strings.TrimSpace(override)}
}

// Check loads the token and reports whether the user is authenticated.
func (a *Authenticator) Check(ctx context.Context) (bool, error) {
	if a.override != "" {
		a.setToken(a.override)
		return true, nil
	}
	if a.db == nil {
		return false, nil
	}
	token, err := db.GetSetting(ctx, a.db, tokenKey)
	if errors.Is(err, db.ErrNotFound) {
		a.setToken("")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check auth: %w", err)
	}
	a.setToken(token)
	return strings.TrimSpace(token) != "", nil
}

func (a *Authenticator) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if a.db != nil {
		if err := db.PutSetting(ctx, a.db, tokenKey, token); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}
	a.setToken(token)
	return nil
}

func (a *Authenticator) Logout(ctx context.Context) error {
	if a.db != nil {
		if err := db.DeleteSetting(ctx, a.db, tokenKey); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
	}
	a.setToken("")
	return nil
}

// Token is the current personal token, empty when anonymous.
func (a *Authenticator) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *Authenticator) setToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}
