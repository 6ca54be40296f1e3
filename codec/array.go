package codec

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
)

// Array is a fixed-count, homogeneous-element composite codec. Decode
// always produces exactly Size elements; Encode requires exactly Size
// elements, preserving the invariant |elements| == size at every point in
// the value's lifetime.
//
// Decode/Encode produce/consume []Value of length Size, elements in the
// order they appear on the wire.
type Array struct {
	Element Codec
	Size    int
}

// NewArray constructs an Array codec over element of the given fixed size.
func NewArray(element Codec, size int) *Array {
	return &Array{Element: element, Size: size}
}

func (a *Array) Decode(r *bytestream.Reader, _ int) (Value, error) {
	out := make([]Value, a.Size)
	for i := 0; i < a.Size; i++ {
		v, err := a.Element.Decode(r, NoLength)
		if err != nil {
			return nil, fmt.Errorf("fpdt: codec: array element %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}

func (a *Array) Encode(v Value, w *bytestream.Writer) error {
	elems, ok := v.([]Value)
	if !ok {
		return typeMismatch("[]Value", v)
	}

	if len(elems) != a.Size {
		return fmt.Errorf("fpdt: codec: array expects %d elements, got %d", a.Size, len(elems))
	}

	for i, elem := range elems {
		if err := a.Element.Encode(elem, w); err != nil {
			return fmt.Errorf("fpdt: codec: array element %d: %w", i, err)
		}
	}

	return nil
}
