package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox "), 200)

	compressed := Compress(data)
	assert.Less(t, len(compressed), len(data))

	decompressed, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestRoundTripEmpty(t *testing.T) {
	decompressed, err := Decompress(Compress(nil))
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestDecompressRejectsGarbage(t *testing.T) {
	_, err := Decompress([]byte("definitely not zstd"))
	require.Error(t, err)
}
