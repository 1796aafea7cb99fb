package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "stargate/pkg/domain-errors"
)

// TestParsePersonID_Invariants validates the parsing invariant:
// "IDs must be positive decimal integers"
func TestParsePersonID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePersonID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePersonID("seven")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects zero and negatives", func(t *testing.T) {
		for _, in := range []string{"0", "-3"} {
			_, err := ParsePersonID(in)
			require.Error(t, err, in)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("accepts valid id with surrounding whitespace", func(t *testing.T) {
		id, err := ParsePersonID(" 42 ")
		require.NoError(t, err)
		assert.Equal(t, PersonID(42), id)
		assert.Equal(t, "42", id.String())
	})
}

func TestZeroIDs(t *testing.T) {
	assert.True(t, PersonID(0).IsZero())
	assert.True(t, DutyID(0).IsZero())
	assert.False(t, DetailID(1).IsZero())
}
