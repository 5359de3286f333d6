package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"caixa/contexts/identity-access/access-service/domain/entities"
	domainerrors "caixa/contexts/identity-access/access-service/domain/errors"
	"caixa/contexts/identity-access/access-service/ports"
)

type Service struct {
	Registry    AccessRegistry
	Identities  ports.IdentityStore
	Issuer      TokenIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Login matches the submitted code against the registry, provisions the
// identity on first use, and mints a credential carrying the descriptor's
// role.
func (s Service) Login(ctx context.Context, accessCode string) (ports.LoginResult, error) {
	descriptor, ok := s.Registry.Match(accessCode)
	if !ok {
		return ports.LoginResult{}, domainerrors.ErrInvalidAccessCode
	}

	identity, err := s.Ensure(ctx, descriptor)
	if err != nil {
		return ports.LoginResult{}, err
	}

	token, err := s.Issuer.Mint(identity, descriptor.Role)
	if err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{
		Token:       token,
		DisplayName: identity.DisplayName,
		Role:        descriptor.Role,
	}, nil
}

// Ensure returns the identity for a matched descriptor, creating it at most
// once under concurrent first use: a losing creator re-reads and returns the
// winner's record instead of surfacing the conflict.
//
// The registry already vouched for the code, so an existing identity is
// returned without comparing the code to its stored fingerprint. Changing a
// code in configuration therefore redirects access to the same identity
// without re-validation; the fingerprint is provenance, not authorization.
func (s Service) Ensure(ctx context.Context, descriptor AccessDescriptor) (entities.Identity, error) {
	existing, found, err := s.Identities.FindByDisplayName(ctx, descriptor.DisplayName)
	if err != nil {
		return entities.Identity{}, err
	}
	if found {
		return existing, nil
	}

	identity, err := s.newIdentity(ctx, descriptor.DisplayName, descriptor.Code)
	if err != nil {
		return entities.Identity{}, err
	}
	if err := s.Identities.Create(ctx, identity); err != nil {
		if errors.Is(err, domainerrors.ErrDisplayNameConflict) {
			winner, foundWinner, readErr := s.Identities.FindByDisplayName(ctx, descriptor.DisplayName)
			if readErr != nil {
				return entities.Identity{}, readErr
			}
			if foundWinner {
				return winner, nil
			}
			return entities.Identity{}, err
		}
		return entities.Identity{}, err
	}

	resolveLogger(s.Logger).Info("identity provisioned",
		"event", "identity_provisioned",
		"module", "identity-access/access-service",
		"layer", "application",
		"display_name", identity.DisplayName,
		"role", string(descriptor.Role),
	)
	return identity, nil
}

// Register creates an identity directly from a name and code. It is kept as
// a backup/testing path beside code-based login; duplicate names surface the
// conflict to the caller instead of falling back to a re-read.
func (s Service) Register(ctx context.Context, displayName string, accessCode string) (entities.Identity, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || strings.TrimSpace(accessCode) == "" {
		return entities.Identity{}, domainerrors.ErrInvalidRegistration
	}

	identity, err := s.newIdentity(ctx, displayName, accessCode)
	if err != nil {
		return entities.Identity{}, err
	}
	if err := s.Identities.Create(ctx, identity); err != nil {
		return entities.Identity{}, err
	}
	return identity, nil
}

func (s Service) newIdentity(ctx context.Context, displayName string, code string) (entities.Identity, error) {
	fingerprint, err := fingerprintCode(code)
	if err != nil {
		return entities.Identity{}, err
	}
	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Identity{}, err
	}
	return entities.Identity{
		IdentityID:            id,
		DisplayName:           displayName,
		CredentialFingerprint: fingerprint,
		CreatedAt:             s.now(),
	}, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func fingerprintCode(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
