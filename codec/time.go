package codec

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
)

// Time decodes an optional base, an optional context, then u32 seconds and
// u32 microseconds. The base/context fields are each guarded by a boolean
// flag (USE_TIME_BASE / USE_TIME_CONTEXT in spec.md §4.5); when both are
// false, Time is exactly 8 bytes on the wire.
//
// Encode writes exactly what Decode reads (spec.md §9 open question 2: the
// source has an apparent bug where encode calls decode on its own output
// stream; this implementation is the symmetric, bug-free behavior the spec
// mandates instead).
//
// Decode/Encode produce/consume TimeValue.
type Time struct {
	Base           Codec // FwTimeBaseStore alias
	Context        Codec // FwTimeContextStore alias
	Seconds        Codec // u32 big-endian
	Microseconds   Codec // u32 big-endian
	UseTimeBase    bool
	UseTimeContext bool
}

// NewTime constructs a Time codec from its component field codecs and the
// USE_TIME_BASE/USE_TIME_CONTEXT configuration flags.
func NewTime(base, context, seconds, microseconds Codec, useBase, useContext bool) *Time {
	return &Time{
		Base: base, Context: context, Seconds: seconds, Microseconds: microseconds,
		UseTimeBase: useBase, UseTimeContext: useContext,
	}
}

// TimeValue is the decoded representation of a Time field. Base/Context are
// nil when their corresponding flag was disabled at decode time.
type TimeValue struct {
	Base         Value
	Context      Value
	Seconds      uint32
	Microseconds uint32
}

// UnixSeconds returns the time value as fractional Unix seconds
// (seconds + microseconds * 1e-6), per spec.md §4.5.
func (t TimeValue) UnixSeconds() float64 {
	return float64(t.Seconds) + float64(t.Microseconds)*1e-6
}

func (t TimeValue) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"seconds":%d,"microseconds":%d}`, t.Seconds, t.Microseconds)), nil
}

func (tm *Time) Decode(r *bytestream.Reader, _ int) (Value, error) {
	var out TimeValue

	if tm.UseTimeBase {
		base, err := tm.Base.Decode(r, NoLength)
		if err != nil {
			return nil, fmt.Errorf("fpdt: codec: time base: %w", err)
		}
		out.Base = base
	}

	if tm.UseTimeContext {
		ctx, err := tm.Context.Decode(r, NoLength)
		if err != nil {
			return nil, fmt.Errorf("fpdt: codec: time context: %w", err)
		}
		out.Context = ctx
	}

	secVal, err := tm.Seconds.Decode(r, NoLength)
	if err != nil {
		return nil, fmt.Errorf("fpdt: codec: time seconds: %w", err)
	}
	sec, ok := secVal.(uint32)
	if !ok {
		return nil, fmt.Errorf("fpdt: codec: time seconds codec must produce uint32")
	}
	out.Seconds = sec

	usVal, err := tm.Microseconds.Decode(r, NoLength)
	if err != nil {
		return nil, fmt.Errorf("fpdt: codec: time microseconds: %w", err)
	}
	us, ok := usVal.(uint32)
	if !ok {
		return nil, fmt.Errorf("fpdt: codec: time microseconds codec must produce uint32")
	}
	out.Microseconds = us

	return out, nil
}

func (tm *Time) Encode(v Value, w *bytestream.Writer) error {
	tv, ok := v.(TimeValue)
	if !ok {
		return typeMismatch("TimeValue", v)
	}

	if tm.UseTimeBase {
		if err := tm.Base.Encode(tv.Base, w); err != nil {
			return fmt.Errorf("fpdt: codec: time base: %w", err)
		}
	}

	if tm.UseTimeContext {
		if err := tm.Context.Encode(tv.Context, w); err != nil {
			return fmt.Errorf("fpdt: codec: time context: %w", err)
		}
	}

	if err := tm.Seconds.Encode(tv.Seconds, w); err != nil {
		return fmt.Errorf("fpdt: codec: time seconds: %w", err)
	}

	return tm.Microseconds.Encode(tv.Microseconds, w)
}
