package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned when registering an address that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. It covers both
	// unknown emails and wrong passwords so callers cannot distinguish them.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service implements registration, login, and token resolution.
type Service struct {
	users  *Store
	tokens *TokenService
}

// NewService creates an auth Service.
func NewService(users *Store, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new user account and returns the stored record.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (*User, error) {
	existing, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       fullName,
		HashedPassword: string(hashed),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login verifies the credentials and returns a signed access token along
// with the user record.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Resolve maps a bearer token to its user. Any failure (bad token, expired,
// unknown user) yields nil so the request proceeds as a guest.
func (s *Service) Resolve(ctx context.Context, token string) *User {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil
	}
	return u
}
