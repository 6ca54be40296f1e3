package codec

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
)

// LengthPrefixedString decodes a length field (the FwBuffSize alias,
// normally) followed by that many ASCII bytes. Encode writes both fields;
// the invariant that the length field equals the following payload's byte
// count holds by construction since Encode derives the length from the
// string itself.
//
// Decode/Encode produce/consume string.
type LengthPrefixedString struct {
	Length Codec
}

// NewLengthPrefixedString constructs a LengthPrefixedString codec whose
// length field is read/written with length.
func NewLengthPrefixedString(length Codec) *LengthPrefixedString {
	return &LengthPrefixedString{Length: length}
}

func (s *LengthPrefixedString) Decode(r *bytestream.Reader, _ int) (Value, error) {
	lenVal, err := s.Length.Decode(r, NoLength)
	if err != nil {
		return nil, err
	}

	n, ok := AsInt64(lenVal)
	if !ok {
		return nil, fmt.Errorf("fpdt: codec: string length field is not integral")
	}

	data, err := r.ReadExact(int(n))
	if err != nil {
		return nil, err
	}

	return string(data), nil
}

func (s *LengthPrefixedString) Encode(v Value, w *bytestream.Writer) error {
	str, ok := v.(string)
	if !ok {
		return typeMismatch("string", v)
	}

	lenVal, err := intToUnderlying(s.Length, int64(len(str)))
	if err != nil {
		return err
	}

	if err := s.Length.Encode(lenVal, w); err != nil {
		return err
	}

	return w.Write([]byte(str))
}
