package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"ombela/internal/domain"
	"ombela/internal/localstore"
)

// Users is the account store. Email is the lookup key and must be unique.
type Users struct {
	mu     sync.RWMutex
	kv     localstore.Store
	log    *slog.Logger
	users  []domain.User
	nextID int64
}

func NewUsers(ctx context.Context, kv localstore.Store, log *slog.Logger) (*Users, error) {
	u := &Users{kv: kv, log: orDefault(log), nextID: 1}
	data, ok, err := kv.Get(ctx, keyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return u, nil
	}
	if err := json.Unmarshal(data, &u.users); err != nil {
		u.log.Error("discarding malformed user data", "key", keyUsers, "err", err)
		u.users = nil
		return u, nil
	}
	for _, usr := range u.users {
		if usr.ID >= u.nextID {
			u.nextID = usr.ID + 1
		}
	}
	return u, nil
}

// Add registers the user, assigning an ID and stamping the creation time.
// A duplicate email is rejected with ErrEmailTaken.
func (u *Users) Add(ctx context.Context, user domain.User) (*domain.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.users {
		if existing.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}
	user.ID = u.nextID
	u.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	u.users = append(u.users, user)
	if err := persist(ctx, u.kv, keyUsers, u.users); err != nil {
		return nil, err
	}
	cp := user
	return &cp, nil
}

func (u *Users) ByEmail(email string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, usr := range u.users {
		if usr.Email == email {
			cp := usr
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (u *Users) ByID(id int64) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, usr := range u.users {
		if usr.ID == id {
			cp := usr
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Authenticate returns the user on an exact plaintext credential match and
// ErrNotFound otherwise. Passwords are not hashed in this system.
func (u *Users) Authenticate(email, password string) (*domain.User, error) {
	usr, err := u.ByEmail(email)
	if err != nil {
		return nil, err
	}
	if usr.Password != password {
		return nil, ErrNotFound
	}
	return usr, nil
}
