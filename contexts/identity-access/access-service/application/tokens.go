package application

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"caixa/contexts/identity-access/access-service/domain/entities"
	domainerrors "caixa/contexts/identity-access/access-service/domain/errors"
	"caixa/contexts/identity-access/access-service/ports"
)

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed role-bearing bearer credentials. Claims carry no
// expiry or issued-at: minting is deterministic for a fixed secret and
// payload, and a credential stays valid until the secret rotates.
type TokenIssuer struct {
	SigningSecret []byte
}

func (t TokenIssuer) Mint(identity entities.Identity, role entities.Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: identity.IdentityID,
		},
	})
	return token.SignedString(t.SigningSecret)
}

// AuthGuard verifies inbound credentials and resolves the caller context.
// The signed role claim is authoritative for the lifetime of the token; no
// identity store round-trip happens here.
type AuthGuard struct {
	SigningSecret []byte
}

func (g AuthGuard) Verify(rawToken string) (ports.CallerContext, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return ports.CallerContext{}, domainerrors.ErrUnauthenticated
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domainerrors.ErrUnauthenticated
		}
		return g.SigningSecret, nil
	})
	if err != nil || !token.Valid {
		return ports.CallerContext{}, domainerrors.ErrUnauthenticated
	}

	role := entities.Role(claims.Role)
	if strings.TrimSpace(claims.Subject) == "" || !role.IsValid() {
		return ports.CallerContext{}, domainerrors.ErrUnauthenticated
	}
	return ports.CallerContext{
		IdentityID: claims.Subject,
		Role:       role,
	}, nil
}
