package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"ombela/internal/domain"
	"ombela/internal/localstore"
)

// Session holds the zero-or-one logged-in user, persisted under its own key
// so a restart restores it.
type Session struct {
	mu   sync.RWMutex
	kv   localstore.Store
	log  *slog.Logger
	user *domain.User
}

func NewSession(ctx context.Context, kv localstore.Store, log *slog.Logger) (*Session, error) {
	s := &Session{kv: kv, log: orDefault(log)}
	data, ok, err := kv.Get(ctx, keySession)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.log.Error("discarding malformed session data", "key", keySession, "err", err)
		return s, nil
	}
	s.user = &user
	return s, nil
}

// Login overwrites the current session with the given user and persists it.
func (s *Session) Login(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := persist(ctx, s.kv, keySession, user); err != nil {
		return err
	}
	s.user = &user
	return nil
}

// Logout clears the session and removes the persisted entry.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, keySession); err != nil {
		return err
	}
	s.user = nil
	return nil
}

// Current returns a copy of the logged-in user, or nil.
func (s *Session) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

func (s *Session) IsLoggedIn() bool {
	return s.Current() != nil
}
