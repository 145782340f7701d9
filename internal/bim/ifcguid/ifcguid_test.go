package ifcguid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUUIDKnownValue(t *testing.T) {
	// Reference pair produced by common IFC toolkits
	u := uuid.MustParse("00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "0000000000000000000000", FromUUID(u))

	u = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
	assert.Equal(t, "3$$$$$$$$$$$$$$$$$$$$$", FromUUID(u))
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		u := uuid.New()
		id := FromUUID(u)
		require.Len(t, id, Length)
		assert.True(t, Valid(id))

		back, err := ToUUID(id)
		require.NoError(t, err)
		assert.Equal(t, u, back)
	}
}

func TestToUUIDRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"too short", "abc"},
		{"bad character", "2O2Fr-t4X7Zf8NOew3FLOH"},
		{"leading group overflow", "4000000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToUUID(tt.id)
			assert.Error(t, err)
		})
	}
}

func TestLooksLikeID(t *testing.T) {
	assert.True(t, LooksLikeID("2O2Fr0t4X7Zf8NOew3FLOH"))
	assert.False(t, LooksLikeID("2O2Fr$t4X7Zf8NOew3FLOH"), "placeholder marker")
	assert.False(t, LooksLikeID("SANEPAR"))
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
