package shortener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, id := range []uint{0, 1, 61, 62, 12345, 999999999} {
		encoded := EncodeID(id)
		assert.Equal(t, id, DecodeID(encoded), "id %d should round-trip via %q", id, encoded)
	}
}

func TestEncodeIDZero(t *testing.T) {
	assert.Equal(t, "0", EncodeID(0))
}

func TestDecodeIDSkipsInvalidCharacters(t *testing.T) {
	assert.Equal(t, DecodeID("1a"), DecodeID("1-a"))
}

func TestGenerateSecureSlug(t *testing.T) {
	slug, err := GenerateSecureSlug(8)
	require.NoError(t, err)
	assert.Len(t, slug, 8)

	other, err := GenerateSecureSlug(8)
	require.NoError(t, err)
	assert.NotEqual(t, slug, other, "two slugs should practically never collide")
}

func TestGenerateSecureSlugRejectsInvalidLength(t *testing.T) {
	_, err := GenerateSecureSlug(0)
	require.Error(t, err)
}
