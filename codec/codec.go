// Package codec implements the bit-exact serializable type system: the
// Codec contract shared by every wire-level type, the fixed-width
// fundamental codecs (and their configurable aliases), and the composite
// codecs (array, structure, enum) built on top of them.
//
// Every codec satisfies the same contract: Decode consumes exactly the
// bytes its shape requires (or fails with fwerrs.ErrEndOfStream), and
// Encode is its exact inverse. Value is a plain `any` rather than a closed
// Go type because the dictionary binder constructs Structure/Array/Enum
// codecs for user-defined types at run time; the concrete Go types actually
// produced (numeric primitives, []any, *StructValue, EnumValue, ...) are
// documented on each codec.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/fwpool"
)

// Value is the decoded representation produced by a Codec. See the
// per-codec doc comments for the concrete Go type each one produces.
type Value = any

// NoLength indicates a Decode call carries no explicit length hint. Only
// Buffer/AsciiBuffer consult this parameter; every other codec ignores it.
const NoLength = -1

// Codec is the uniform capability set every wire-level type implements:
// decode a value from a stream, and encode a value back to the wire.
type Codec interface {
	// Decode reads a value from r. length is consulted only by codecs whose
	// shape depends on an externally supplied size (Buffer, AsciiBuffer);
	// pass codec.NoLength otherwise.
	Decode(r *bytestream.Reader, length int) (Value, error)

	// Encode writes v to w. v must be the concrete Go type this codec's
	// Decode produces.
	Encode(v Value, w *bytestream.Writer) error
}

// Kind classifies a Fundamental codec's numeric interpretation.
type Kind uint8

const (
	KindInt Kind = iota
	KindUint
	KindFloat
)

// Fundamental is a fixed-width (1, 2, 4, or 8 byte) integer, unsigned
// integer, or IEEE-754 float codec, parametric over byte order.
//
// Decode/Encode produce/consume the narrowest native Go type matching
// (Kind, width): int8/int16/int32/int64, uint8/uint16/uint32/uint64, or
// float32/float64.
type Fundamental struct {
	width int
	kind  Kind
	order binary.ByteOrder
}

// NewFundamental constructs a Fundamental codec for the given width (in
// bytes; must be 1, 2, 4, or 8), kind, and byte order.
func NewFundamental(width int, kind Kind, order binary.ByteOrder) *Fundamental {
	return &Fundamental{width: width, kind: kind, order: order}
}

// Width returns the codec's fixed byte width.
func (f *Fundamental) Width() int { return f.width }

// Kind returns the codec's numeric interpretation.
func (f *Fundamental) Kind() Kind { return f.kind }

func (f *Fundamental) Decode(r *bytestream.Reader, _ int) (Value, error) {
	buf := fwpool.Default.Get(f.width)
	defer fwpool.Default.Put(buf)

	raw, err := r.ReadExact(f.width)
	if err != nil {
		return nil, err
	}
	copy(buf, raw)

	switch f.kind {
	case KindUint:
		switch f.width {
		case 1:
			return buf[0], nil
		case 2:
			return f.order.Uint16(buf), nil
		case 4:
			return f.order.Uint32(buf), nil
		case 8:
			return f.order.Uint64(buf), nil
		}
	case KindInt:
		switch f.width {
		case 1:
			return int8(buf[0]), nil
		case 2:
			return int16(f.order.Uint16(buf)), nil
		case 4:
			return int32(f.order.Uint32(buf)), nil
		case 8:
			return int64(f.order.Uint64(buf)), nil
		}
	case KindFloat:
		switch f.width {
		case 4:
			return math.Float32frombits(f.order.Uint32(buf)), nil
		case 8:
			return math.Float64frombits(f.order.Uint64(buf)), nil
		}
	}

	return nil, fmt.Errorf("fpdt: codec: unsupported fundamental width/kind %d/%d", f.width, f.kind)
}

func (f *Fundamental) Encode(v Value, w *bytestream.Writer) error {
	buf := fwpool.Default.Get(f.width)
	defer fwpool.Default.Put(buf)

	switch f.kind {
	case KindUint:
		switch f.width {
		case 1:
			u, ok := v.(uint8)
			if !ok {
				return typeMismatch("uint8", v)
			}
			buf[0] = u
		case 2:
			u, ok := v.(uint16)
			if !ok {
				return typeMismatch("uint16", v)
			}
			f.order.PutUint16(buf, u)
		case 4:
			u, ok := v.(uint32)
			if !ok {
				return typeMismatch("uint32", v)
			}
			f.order.PutUint32(buf, u)
		case 8:
			u, ok := v.(uint64)
			if !ok {
				return typeMismatch("uint64", v)
			}
			f.order.PutUint64(buf, u)
		}
	case KindInt:
		switch f.width {
		case 1:
			i, ok := v.(int8)
			if !ok {
				return typeMismatch("int8", v)
			}
			buf[0] = byte(i)
		case 2:
			i, ok := v.(int16)
			if !ok {
				return typeMismatch("int16", v)
			}
			f.order.PutUint16(buf, uint16(i))
		case 4:
			i, ok := v.(int32)
			if !ok {
				return typeMismatch("int32", v)
			}
			f.order.PutUint32(buf, uint32(i))
		case 8:
			i, ok := v.(int64)
			if !ok {
				return typeMismatch("int64", v)
			}
			f.order.PutUint64(buf, uint64(i))
		}
	case KindFloat:
		switch f.width {
		case 4:
			fv, ok := v.(float32)
			if !ok {
				return typeMismatch("float32", v)
			}
			f.order.PutUint32(buf, math.Float32bits(fv))
		case 8:
			fv, ok := v.(float64)
			if !ok {
				return typeMismatch("float64", v)
			}
			f.order.PutUint64(buf, math.Float64bits(fv))
		}
	}

	return w.Write(buf)
}

func typeMismatch(want string, got Value) error {
	return fmt.Errorf("fpdt: codec: expected %s, got %T", want, got)
}

// AsInt64 widens any fundamental-produced integer Value to int64; float
// values (and any other type) report false. It is used by Enum to compare a
// decoded underlying value against its name map regardless of the
// underlying codec's exact width/signedness.
func AsInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
