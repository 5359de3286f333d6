// Package access implements code-based authentication for the shared ledger.
//
// Layering:
// - domain: identity entity, closed role set, error taxonomy
// - application: access registry, provisioning, token issuing and verification
// - ports: stable boundaries for identity persistence
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Do not import other context adapters into domain/application.
// - The live access registry, not the stored credential fingerprint, decides
//   who may authenticate; see Service.Ensure for the drift contract.
package access
