package application

import (
	"errors"
	"testing"

	"caixa/contexts/identity-access/access-service/domain/entities"
	domainerrors "caixa/contexts/identity-access/access-service/domain/errors"
)

func TestMintVerifyRoundTrip(t *testing.T) {
	issuer := TokenIssuer{SigningSecret: []byte("test-secret")}
	guard := AuthGuard{SigningSecret: []byte("test-secret")}

	token, err := issuer.Mint(entities.Identity{IdentityID: "idn_1"}, entities.RoleUnit)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	caller, err := guard.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if caller.IdentityID != "idn_1" || caller.Role != entities.RoleUnit {
		t.Fatalf("unexpected caller %+v", caller)
	}
}

func TestMintIsDeterministic(t *testing.T) {
	issuer := TokenIssuer{SigningSecret: []byte("test-secret")}
	identity := entities.Identity{IdentityID: "idn_1"}

	first, err := issuer.Mint(identity, entities.RoleMaster)
	if err != nil {
		t.Fatalf("first mint failed: %v", err)
	}
	second, err := issuer.Mint(identity, entities.RoleMaster)
	if err != nil {
		t.Fatalf("second mint failed: %v", err)
	}
	if first != second {
		t.Fatal("expected identical tokens for identical payloads")
	}
}

func TestVerifyRejectsMissingToken(t *testing.T) {
	guard := AuthGuard{SigningSecret: []byte("test-secret")}
	if _, err := guard.Verify("  "); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	guard := AuthGuard{SigningSecret: []byte("test-secret")}
	if _, err := guard.Verify("not-a-jwt"); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	issuer := TokenIssuer{SigningSecret: []byte("test-secret")}
	guard := AuthGuard{SigningSecret: []byte("test-secret")}

	token, err := issuer.Mint(entities.Identity{IdentityID: "idn_1"}, entities.RoleUnit)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := guard.Verify(tampered); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := TokenIssuer{SigningSecret: []byte("test-secret")}
	guard := AuthGuard{SigningSecret: []byte("other-secret")}

	token, err := issuer.Mint(entities.Identity{IdentityID: "idn_1"}, entities.RoleUnit)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := guard.Verify(token); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}

func TestVerifyRejectsUnknownRoleClaim(t *testing.T) {
	issuer := TokenIssuer{SigningSecret: []byte("test-secret")}
	guard := AuthGuard{SigningSecret: []byte("test-secret")}

	token, err := issuer.Mint(entities.Identity{IdentityID: "idn_1"}, entities.Role("admin"))
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := guard.Verify(token); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
}
