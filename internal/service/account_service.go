package service

import (
	"context"
	"errors"

	"ombela/internal/domain"
	"ombela/internal/repository"
)

// AccountService handles registration, login and the session pointer.
type AccountService struct {
	users   *repository.Users
	session *repository.Session
}

func NewAccountService(users *repository.Users, session *repository.Session) *AccountService {
	return &AccountService{users: users, session: session}
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// Register validates the account data and stores it. The role defaults to
// customer; sellers carry a store name.
func (s *AccountService) Register(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.Name == "" || user.Email == "" || user.Password == "" {
		return nil, ErrInvalidInput
	}
	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}
	if user.Role != domain.RoleCustomer && user.Role != domain.RoleSeller {
		return nil, ErrInvalidInput
	}
	return s.users.Add(ctx, user)
}

// Login checks the plaintext credentials and persists the session.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.users.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.session.Login(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}

// Current returns the logged-in user, or nil.
func (s *AccountService) Current() *domain.User {
	return s.session.Current()
}
