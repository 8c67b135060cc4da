package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"threadly/internal/sheets"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("users: invalid credentials")
	ErrAlreadyRegistered  = errors.New("users: account already exists")
	ErrNotFound           = errors.New("users: not found")
)

// Service reads and writes user rows through the spreadsheet endpoint.
type Service struct {
	sheets *sheets.Client
}

func NewService(client *sheets.Client) *Service {
	return &Service{sheets: client}
}

// FindByEmail returns the first user whose email cell matches exactly.
// Email matching is case-sensitive, as stored.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	res, err := s.sheets.Query(ctx, sheets.QueryOptions{
		Sheet:       Sheet,
		FilterKey:   "email",
		FilterValue: email,
	})
	if err != nil {
		return nil, err
	}
	if len(res.Rows) == 0 {
		return nil, ErrNotFound
	}

	u := fromRow(res.Rows[0])
	return &u, nil
}

// Register creates a new user row. The email must not already exist.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	_, err := s.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user := User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.sheets.Create(ctx, Sheet, sheets.Row{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"password":   user.PasswordHash,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("users: create: %w", err)
	}

	return &user, nil
}

// Authenticate verifies an email/password pair. It hides whether the
// account exists or the password was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// UpdateProfile rewrites name and email, and the password only when a
// new one is supplied.
func (s *Service) UpdateProfile(ctx context.Context, id, name, email, password string) error {
	fields := sheets.Row{
		"name":       name,
		"email":      email,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}
		fields["password"] = hash
	}

	if err := s.sheets.Update(ctx, Sheet, id, fields); err != nil {
		return fmt.Errorf("users: update: %w", err)
	}
	return nil
}
