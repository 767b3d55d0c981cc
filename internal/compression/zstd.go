// Package compression wraps the zstd codec used for snapshot payloads and
// remote transfer.
package compression

import "github.com/klauspost/compress/zstd"

var encoder, _ = zstd.NewWriter(nil,
	zstd.WithEncoderLevel(zstd.SpeedDefault),
	zstd.WithEncoderConcurrency(1),
)

var decoder, _ = zstd.NewReader(nil)

// Compress returns the zstd frame for data.
func Compress(data []byte) []byte {
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Decompress decodes a zstd frame produced by Compress.
func Decompress(data []byte) ([]byte, error) {
	return decoder.DecodeAll(data, nil)
}
