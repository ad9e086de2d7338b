// Package directory hosts the stable, minimal DTOs other services consume for
// directory lifecycle events. Keep these PII-light and versioned independently
// from internal persistence models.
package directory

// ContractVersion identifies the contract schema version for compatibility checks.
// Bump on breaking changes to the shapes below; consumers can pin or roll forward.
const ContractVersion = "v0.1.0"

// PersonEvent is the envelope published for person lifecycle changes
// (created, elevated to admin, updated, deleted). Contact values and account
// secrets never appear here; consumers needing detail query the directory API.
type PersonEvent struct {
	ContractVersion string `json:"contract_version"`
	Action          string `json:"action"`
	PersonID        string `json:"person_id"`
	PrincipalKind   string `json:"principal_kind,omitempty"`
	OccurredAt      string `json:"occurred_at"`
}
