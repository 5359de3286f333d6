package ports

import (
	"context"
	"time"

	"caixa/contexts/identity-access/access-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// IdentityStore persists provisioned identities. Create must be atomic with
// respect to the display-name uniqueness key and fail with
// ErrDisplayNameConflict when another creator already holds the name.
type IdentityStore interface {
	FindByDisplayName(ctx context.Context, displayName string) (entities.Identity, bool, error)
	Create(ctx context.Context, identity entities.Identity) error
}

// CallerContext is the verified caller resolved from a bearer credential.
type CallerContext struct {
	IdentityID string
	Role       entities.Role
}

type LoginResult struct {
	Token       string
	DisplayName string
	Role        entities.Role
}
