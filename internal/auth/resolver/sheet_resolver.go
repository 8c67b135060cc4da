package resolver

import (
	"context"
	"errors"

	"threadly/internal/auth"
	"threadly/internal/users"
	"threadly/internal/utils"
)

var ErrUnverifiedEmail = errors.New("resolver: provider email not verified")

// SheetResolver maps an external identity to a row in the users sheet,
// creating the row on first login. OAuth-only accounts get a random
// throwaway password so they can never be entered via the password form.
type SheetResolver struct {
	users *users.Service
}

func NewSheetResolver(userService *users.Service) *SheetResolver {
	return &SheetResolver{users: userService}
}

func (r *SheetResolver) Resolve(ctx context.Context, identity *auth.Identity) (*users.User, error) {
	if !identity.EmailVerified {
		return nil, ErrUnverifiedEmail
	}

	user, err := r.users.FindByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, err
	}

	name := identity.Name
	if name == "" {
		name = identity.Email
	}

	return r.users.Register(ctx, name, identity.Email, utils.RandomString(32))
}
