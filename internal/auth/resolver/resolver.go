package resolver

import (
	"context"

	"threadly/internal/auth"
	"threadly/internal/users"
)

// Resolver determines which user record an external identity belongs
// to. It is the ONLY place where identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(
		ctx context.Context,
		identity *auth.Identity,
	) (*users.User, error)
}
