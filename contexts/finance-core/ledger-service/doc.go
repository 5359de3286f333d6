// Package ledger implements role-scoped access to the shared transaction
// ledger.
//
// Layering:
// - domain: transaction entity, closed role/kind sets, error taxonomy
// - application: list/create/delete operations keyed by caller role
// - ports: stable boundaries for persistence and owner-name resolution
// - adapters: concrete HTTP, memory, and postgres implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under finance-core context.
// - Do not import other context adapters into domain/application; the
//   master view's owner-name join goes through the OwnerDirectory port,
//   wired in bootstrap.
package ledger
