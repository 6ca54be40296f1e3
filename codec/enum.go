package codec

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
)

// EnumValue is the decoded representation of an Enum: the raw underlying
// integer plus its resolved name, when known. An unrecognized underlying
// value is surfaced as Known == false with Name left empty rather than
// failing the decode, so framing can keep going (spec.md §4.4).
type EnumValue struct {
	Raw   int64
	Name  string
	Known bool
}

// MarshalJSON renders {"value": N, "name": "X"}, or {"value": N} when the
// value is not recognized.
func (e EnumValue) MarshalJSON() ([]byte, error) {
	if e.Known {
		return []byte(fmt.Sprintf(`{"value":%d,"name":%q}`, e.Raw, e.Name)), nil
	}

	return []byte(fmt.Sprintf(`{"value":%d}`, e.Raw)), nil
}

// Enum decodes an underlying fundamental integer then maps it to a name.
// An unknown value is preserved as its raw integer (EnumValue.Known ==
// false) rather than causing a hard failure, so the top-level Packet.Type
// field (and any dictionary-defined enum) can keep the parser framing.
//
// Decode/Encode produce/consume EnumValue.
type Enum struct {
	Underlying Codec
	ByValue    map[int64]string
	ByName     map[string]int64
}

// NewEnum constructs an Enum codec backed by underlying, with the given
// name<->value mapping.
func NewEnum(underlying Codec, byValue map[int64]string) *Enum {
	byName := make(map[string]int64, len(byValue))
	for v, n := range byValue {
		byName[n] = v
	}

	return &Enum{Underlying: underlying, ByValue: byValue, ByName: byName}
}

func (e *Enum) Decode(r *bytestream.Reader, _ int) (Value, error) {
	raw, err := e.Underlying.Decode(r, NoLength)
	if err != nil {
		return nil, err
	}

	n, ok := AsInt64(raw)
	if !ok {
		return nil, fmt.Errorf("fpdt: codec: enum underlying value %v is not integral", raw)
	}

	name, known := e.ByValue[n]

	return EnumValue{Raw: n, Name: name, Known: known}, nil
}

func (e *Enum) Encode(v Value, w *bytestream.Writer) error {
	ev, ok := v.(EnumValue)
	if !ok {
		return typeMismatch("EnumValue", v)
	}

	native, err := intToUnderlying(e.Underlying, ev.Raw)
	if err != nil {
		return err
	}

	return e.Underlying.Encode(native, w)
}

// intToUnderlying converts a widened int64 back to the exact Go type the
// underlying Fundamental codec expects to Encode.
func intToUnderlying(underlying Codec, n int64) (Value, error) {
	f, ok := underlying.(*Fundamental)
	if !ok {
		return nil, fmt.Errorf("fpdt: codec: enum underlying codec must be Fundamental")
	}

	switch f.kind {
	case KindUint:
		switch f.width {
		case 1:
			return uint8(n), nil
		case 2:
			return uint16(n), nil
		case 4:
			return uint32(n), nil
		case 8:
			return uint64(n), nil
		}
	case KindInt:
		switch f.width {
		case 1:
			return int8(n), nil
		case 2:
			return int16(n), nil
		case 4:
			return int32(n), nil
		case 8:
			return int64(n), nil
		}
	}

	return nil, fmt.Errorf("fpdt: codec: enum underlying codec has unsupported width/kind %d/%d", f.width, f.kind)
}
