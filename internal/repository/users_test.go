package repository

import (
	"context"
	"errors"
	"testing"

	"ombela/internal/domain"
	"ombela/internal/localstore"
)

func newUsers(t *testing.T, kv localstore.Store) *Users {
	t.Helper()
	u, err := NewUsers(context.Background(), kv, nil)
	if err != nil {
		t.Fatalf("new users: %v", err)
	}
	return u
}

func TestUsers_AddAndLookup(t *testing.T) {
	ctx := context.Background()
	u := newUsers(t, localstore.NewMemory())

	user, err := u.Add(ctx, domain.User{Name: "Ana", Email: "ana@example.com", Password: "s3gredo", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected id 1, got %d", user.ID)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("creation time not stamped")
	}

	byEmail, err := u.ByEmail("ana@example.com")
	if err != nil || byEmail.ID != user.ID {
		t.Fatalf("by email: %v %v", byEmail, err)
	}
	byID, err := u.ByID(user.ID)
	if err != nil || byID.Email != "ana@example.com" {
		t.Fatalf("by id: %v %v", byID, err)
	}
	if _, err := u.ByEmail("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUsers_EmailMustBeUnique(t *testing.T) {
	ctx := context.Background()
	u := newUsers(t, localstore.NewMemory())

	_, _ = u.Add(ctx, domain.User{Name: "Ana", Email: "ana@example.com", Password: "a"})
	if _, err := u.Add(ctx, domain.User{Name: "Outra Ana", Email: "ana@example.com", Password: "b"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUsers_Authenticate(t *testing.T) {
	ctx := context.Background()
	u := newUsers(t, localstore.NewMemory())
	_, _ = u.Add(ctx, domain.User{Name: "Ana", Email: "ana@example.com", Password: "s3gredo"})

	user, err := u.Authenticate("ana@example.com", "s3gredo")
	if err != nil || user.Name != "Ana" {
		t.Fatalf("expected match, got %v %v", user, err)
	}
	if _, err := u.Authenticate("ana@example.com", "wrong"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on wrong password, got %v", err)
	}
	if _, err := u.Authenticate("nobody@example.com", "s3gredo"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on unknown email, got %v", err)
	}
}

func TestUsers_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemory()

	u := newUsers(t, kv)
	created, _ := u.Add(ctx, domain.User{Name: "Zola", Email: "z@example.com", Password: "pw", StoreName: "Loja Z", Role: domain.RoleSeller})

	reloaded := newUsers(t, kv)
	got, err := reloaded.ByID(created.ID)
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if got.Name != created.Name || got.Email != created.Email || got.Password != created.Password ||
		got.StoreName != created.StoreName || got.Role != created.Role || !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("round trip differs: %+v vs %+v", got, created)
	}

	next, _ := reloaded.Add(ctx, domain.User{Name: "B", Email: "b@example.com", Password: "pw"})
	if next.ID != 2 {
		t.Fatalf("expected id 2 after reload, got %d", next.ID)
	}
}

func TestSession_LoginLogoutPersist(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemory()

	s, err := NewSession(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.IsLoggedIn() {
		t.Fatalf("fresh session should be empty")
	}

	user := domain.User{ID: 7, Name: "Ana", Email: "ana@example.com", Password: "pw", Role: domain.RoleCustomer}
	if err := s.Login(ctx, user); err != nil {
		t.Fatalf("login: %v", err)
	}
	if got := s.Current(); got == nil || got.ID != 7 {
		t.Fatalf("unexpected current user: %v", got)
	}

	// a reload restores the session
	restored, err := NewSession(ctx, kv, nil)
	if err != nil {
		t.Fatalf("restore session: %v", err)
	}
	if got := restored.Current(); got == nil || got.Email != "ana@example.com" {
		t.Fatalf("session not restored: %v", got)
	}

	if err := restored.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if restored.IsLoggedIn() {
		t.Fatalf("still logged in after logout")
	}
	if _, ok, _ := kv.Get(ctx, keySession); ok {
		t.Fatalf("persisted session should be removed on logout")
	}
}

func TestSession_LoginOverwrites(t *testing.T) {
	ctx := context.Background()
	s, _ := NewSession(ctx, localstore.NewMemory(), nil)

	_ = s.Login(ctx, domain.User{ID: 1, Name: "Ana"})
	_ = s.Login(ctx, domain.User{ID: 2, Name: "Bruno"})
	if got := s.Current(); got == nil || got.ID != 2 {
		t.Fatalf("login did not overwrite: %v", got)
	}
}

func TestSession_CorruptDataCleared(t *testing.T) {
	ctx := context.Background()
	kv := localstore.NewMemory()
	_ = kv.Set(ctx, keySession, []byte("not json"))

	s, err := NewSession(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.IsLoggedIn() {
		t.Fatalf("corrupt session should load as logged out")
	}
}
