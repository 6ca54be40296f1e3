package codec

import (
	"encoding/hex"

	"github.com/fprime-community/fpdt/bytestream"
)

// Buffer decodes opaque bytes: either exactly `length` bytes when length is
// given (>= 0), or the rest of the (confined) stream when length is
// unspecified/negative. A length of 0 yields an empty buffer without
// reading anything.
//
// Decode/Encode produce/consume HexBytes (a []byte with hex-string JSON
// rendering, matching the "hex-encoded raw payload" requirement in
// spec.md §6).
type Buffer struct{}

// NewBuffer constructs a Buffer codec.
func NewBuffer() *Buffer { return &Buffer{} }

// HexBytes is a byte slice that renders as a hex string in JSON output.
type HexBytes []byte

func (h HexBytes) MarshalJSON() ([]byte, error) {
	return []byte(`"` + hex.EncodeToString(h) + `"`), nil
}

func (b *Buffer) Decode(r *bytestream.Reader, length int) (Value, error) {
	if length == 0 {
		return HexBytes{}, nil
	}

	if length > 0 {
		data, err := r.ReadExact(length)
		if err != nil {
			return nil, err
		}

		return HexBytes(data), nil
	}

	data, err := r.ReadRest()
	if err != nil {
		return nil, err
	}

	return HexBytes(data), nil
}

func (b *Buffer) Encode(v Value, w *bytestream.Writer) error {
	switch data := v.(type) {
	case HexBytes:
		return w.Write(data)
	case []byte:
		return w.Write(data)
	default:
		return typeMismatch("HexBytes", v)
	}
}
