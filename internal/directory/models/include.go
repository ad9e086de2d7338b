package models

// Include enumerates the optional subgraphs a read attaches to a person.
// The zero value fetches the bare person row.
type Include struct {
	// Contacts attaches all contact addresses owned by the person,
	// ordered by identifier ascending.
	Contacts bool

	// Principal attaches the principal when one exists; the field stays nil
	// otherwise. Set Account inside to additionally nest the credential.
	Principal *PrincipalInclude

	// Facilities and Organization attach read-only affiliation data sourced
	// from collaborators outside this core.
	Facilities   bool
	Organization bool
}

// PrincipalInclude refines how much of the principal subgraph to attach.
type PrincipalInclude struct {
	Account bool
}
