package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHMACSHA256_EmptySecret(t *testing.T) {
	h, err := NewHMACSHA256("")

	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestHMACSHA256(t *testing.T) {
	h, err := NewHMACSHA256("key")
	require.NoError(t, err)

	// well-known HMAC-SHA256 vector
	got, err := h.Hash("The quick brown fox jumps over the lazy dog")
	require.NoError(t, err)
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", string(got))

	assert.True(t, h.Verify(string(got), "The quick brown fox jumps over the lazy dog"))
	assert.False(t, h.Verify(string(got), "the quick brown fox jumps over the lazy dog"))
	assert.False(t, h.Verify("not-hex", "anything"))

	other, err := NewHMACSHA256("another-key")
	require.NoError(t, err)
	otherSum, err := other.Hash("The quick brown fox jumps over the lazy dog")
	require.NoError(t, err)
	assert.NotEqual(t, got, otherSum)
}
