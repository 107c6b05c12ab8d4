package replay

import (
	"bytes"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// Load reads a replay file from disk. Files may be stored raw or inside a
// zstd envelope.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay %s: %w", path, err)
	}
	rec, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load replay %s: %w", path, err)
	}
	return rec, nil
}

// LoadBytes decodes a replay buffer, unwrapping a zstd envelope if present.
func LoadBytes(data []byte) (*Record, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		defer dec.Close()
		inner, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, &DecodeError{Index: -1, Err: wrapCause(ErrDecompress, err)}
		}
		data = inner
	}
	return Decode(data)
}

// Pack wraps an encoded replay in a zstd envelope, the inverse of LoadBytes.
func Pack(buf []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(buf, nil), nil
}
