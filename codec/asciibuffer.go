package codec

import "github.com/fprime-community/fpdt/bytestream"

// AsciiBuffer reads the same shape as Buffer (explicit length, or the rest
// of the stream) then decodes the bytes as ASCII.
//
// Decode/Encode produce/consume string.
type AsciiBuffer struct {
	inner *Buffer
}

// NewAsciiBuffer constructs an AsciiBuffer codec.
func NewAsciiBuffer() *AsciiBuffer {
	return &AsciiBuffer{inner: NewBuffer()}
}

func (a *AsciiBuffer) Decode(r *bytestream.Reader, length int) (Value, error) {
	raw, err := a.inner.Decode(r, length)
	if err != nil {
		return nil, err
	}

	return string(raw.(HexBytes)), nil
}

func (a *AsciiBuffer) Encode(v Value, w *bytestream.Writer) error {
	s, ok := v.(string)
	if !ok {
		return typeMismatch("string", v)
	}

	return a.inner.Encode(HexBytes(s), w)
}
