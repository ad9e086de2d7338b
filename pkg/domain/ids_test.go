package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "orgdir/pkg/domain-errors"
)

// TestParsePersonID_Invariants validates the parsing invariant:
// identifiers must be valid, non-empty, non-nil UUIDs.
func TestParsePersonID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePersonID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePersonID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParsePersonID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParsePersonID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, PersonID(valid), id)
	})
}

// TestParseID_BoundaryInputs validates parsing rules against hostile inputs.
// Parsing happens at API entry points, so it must reject attack vectors.
func TestParseID_BoundaryInputs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE persons;--", true},
		{"path traversal", "../../../etc/passwd", true},
		{"null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"oversized input", strings.Repeat("a", 1000), true},
		{"empty string", "", true},
		{"nil UUID", uuid.Nil.String(), true},
		{"whitespace only", "   ", true},
		{"uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContactID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestTypeDistinction verifies the newtypes stay distinct. The real check is
// at compile time: assigning a PrincipalID to a PersonID does not compile.
func TestTypeDistinction(t *testing.T) {
	personID := NewPersonID()
	principalID := NewPrincipalID()
	assert.NotEqual(t, uuid.UUID(personID), uuid.UUID(principalID))
}
