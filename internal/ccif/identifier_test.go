package ccif_test

import (
	"testing"

	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	const ctID = "90ed1673-4553-47c6-9336-5cb23947abb2"

	t.Run("bare uuid", func(t *testing.T) {
		id, err := ccif.ParseIdentifier(ctID)
		require.NoError(t, err)
		assert.Equal(t, ctID, id.CommerceToolsID())
		_, ok := id.Version()
		assert.False(t, ok)
	})

	t.Run("uuid with version suffix", func(t *testing.T) {
		id, err := ccif.ParseIdentifier(ctID + "-3")
		require.NoError(t, err)
		assert.Equal(t, ctID, id.CommerceToolsID())
		v, ok := id.Version()
		assert.True(t, ok)
		assert.Equal(t, int64(3), v)
	})

	t.Run("invalid inputs", func(t *testing.T) {
		for _, s := range []string{
			"",
			"not-a-uuid",
			ctID + "3",       // suffix without separator
			ctID + "-",       // empty version
			ctID + "-abc",    // non-numeric version
			ctID + "--1",     // negative version
			"zzed1673-4553-47c6-9336-5cb23947abb2", // bad uuid chars
		} {
			_, err := ccif.ParseIdentifier(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestFormatIdentifier(t *testing.T) {
	const ctID = "90ed1673-4553-47c6-9336-5cb23947abb2"
	assert.Equal(t, ctID+"-7", ccif.FormatIdentifier(ctID, 7))
}
