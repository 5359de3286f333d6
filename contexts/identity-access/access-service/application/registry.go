package application

import (
	"fmt"
	"strings"

	"caixa/contexts/identity-access/access-service/domain/entities"
	domainerrors "caixa/contexts/identity-access/access-service/domain/errors"
)

// AccessDescriptor is one configured (code, display name, role) triple
// defining who may authenticate and with what role.
type AccessDescriptor struct {
	Code        string
	DisplayName string
	Role        entities.Role
}

// AccessRegistry is the immutable, process-lifetime set of descriptors.
// Built once from configuration at startup and passed by dependency; it is
// never mutated or re-read from ambient state afterwards.
type AccessRegistry struct {
	descriptors []AccessDescriptor
}

func NewAccessRegistry(descriptors []AccessDescriptor) (AccessRegistry, error) {
	seenCodes := make(map[string]struct{}, len(descriptors))
	items := make([]AccessDescriptor, 0, len(descriptors))
	for _, descriptor := range descriptors {
		code := strings.TrimSpace(descriptor.Code)
		name := strings.TrimSpace(descriptor.DisplayName)
		if code == "" {
			return AccessRegistry{}, fmt.Errorf("descriptor %q has empty code: %w", name, domainerrors.ErrInvalidRegistry)
		}
		if name == "" {
			return AccessRegistry{}, fmt.Errorf("descriptor with code ending %q has empty display name: %w", tailOf(code), domainerrors.ErrInvalidRegistry)
		}
		if !descriptor.Role.IsValid() {
			return AccessRegistry{}, fmt.Errorf("descriptor %q has unknown role %q: %w", name, descriptor.Role, domainerrors.ErrInvalidRegistry)
		}
		if _, dup := seenCodes[code]; dup {
			return AccessRegistry{}, fmt.Errorf("duplicate access code ending %q: %w", tailOf(code), domainerrors.ErrInvalidRegistry)
		}
		seenCodes[code] = struct{}{}
		items = append(items, AccessDescriptor{
			Code:        code,
			DisplayName: name,
			Role:        descriptor.Role,
		})
	}
	return AccessRegistry{descriptors: items}, nil
}

// Match scans for an exact code match. Codes are unique within the set, so a
// hit is unambiguous. A miss is a business outcome, not an error.
func (r AccessRegistry) Match(submittedCode string) (AccessDescriptor, bool) {
	for _, descriptor := range r.descriptors {
		if descriptor.Code == submittedCode {
			return descriptor, true
		}
	}
	return AccessDescriptor{}, false
}

// tailOf keeps startup error messages useful without logging a full secret.
func tailOf(code string) string {
	if len(code) <= 2 {
		return "**"
	}
	return "**" + code[len(code)-2:]
}
