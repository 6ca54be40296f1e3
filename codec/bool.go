package codec

import "github.com/fprime-community/fpdt/bytestream"

// Bool encodes/decodes a single byte as a boolean. Unlike every other codec
// in this package, round trip is asymmetric by design: encoding always
// produces the configured canonical byte for true/false, but decoding
// treats any byte other than FalseByte as true, so a non-canonical "true"
// encoding does not round-trip byte-for-byte.
type Bool struct {
	TrueByte  byte
	FalseByte byte
}

// NewBool constructs a Bool codec with the given canonical true/false
// bytes.
func NewBool(trueByte, falseByte byte) *Bool {
	return &Bool{TrueByte: trueByte, FalseByte: falseByte}
}

func (b *Bool) Decode(r *bytestream.Reader, _ int) (Value, error) {
	raw, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	return raw != b.FalseByte, nil
}

func (b *Bool) Encode(v Value, w *bytestream.Writer) error {
	bv, ok := v.(bool)
	if !ok {
		return typeMismatch("bool", v)
	}

	if bv {
		return w.WriteByte(b.TrueByte)
	}

	return w.WriteByte(b.FalseByte)
}
