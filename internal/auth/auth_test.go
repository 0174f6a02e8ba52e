package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"nio/internal/db"
)

func newTestAuth(t *testing.T, override string) *Authenticator {
	t.Helper()
	conn, err := db.Open(filepath.Join(t.TempDir(), "nio.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return New(conn, override)
}

func TestCheckWithoutToken(t *testing.T) {
	a := newTestAuth(t, "")
	ok, err := a.Check(context.Background())
	if err != nil || ok {
		t.Fatalf("Check() = %v, %v, want false, nil", ok, err)
	}
}

func TestLoginPersistsToken(t *testing.T) {
	ctx := context.Background()
	a := newTestAuth(t, "")

	if err := a.Login(ctx, "  secret  "); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	fresh := New(a.db, "")
	ok, err := fresh.Check(ctx)
	if err != nil || !ok {
		t.Fatalf("Check() = %v, %v, want true, nil", ok, err)
	}
	if fresh.Token() != "secret" {
		t.Fatalf("Token() = %q, want %q", fresh.Token(), "secret")
	}

	if err := fresh.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if ok, _ := fresh.Check(ctx); ok {
		t.Fatalf("Check() after logout = true")
	}
}

func TestLoginRejectsBlankToken(t *testing.T) {
	a := newTestAuth(t, "")
	if err := a.Login(context.Background(), "   "); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("Login() error = %v, want ErrEmptyToken", err)
	}
}

func TestOverrideTakesPrecedence(t *testing.T) {
	a := newTestAuth(t, "from-env")
	ok, err := a.Check(context.Background())
	if err != nil || !ok {
		t.Fatalf("Check() = %v, %v, want true, nil", ok, err)
	}
	if a.Token() != "from-env" {
		t.Fatalf("Token() = %q, want from-env", a.Token())
	}
}
