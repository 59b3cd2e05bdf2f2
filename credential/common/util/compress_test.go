package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressRoundTrip(t *testing.T) {
	original := []byte("a fairly compressible payload payload payload payload")

	compressed, err := Compress(original)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)

	decompressed, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestBase64URLRoundTrip(t *testing.T) {
	original := make([]byte, 2048)
	original[100] = 0xff

	encoded, err := CompressToBase64URL(original)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "=")

	decoded, err := DecompressFromBase64URL(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecompressFromBase64URLErrors(t *testing.T) {
	t.Run("Invalid base64url", func(t *testing.T) {
		_, err := DecompressFromBase64URL("!!!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base64url")
	})

	t.Run("Valid base64url but not gzip", func(t *testing.T) {
		_, err := DecompressFromBase64URL("aGVsbG8")
		require.Error(t, err)
	})
}
