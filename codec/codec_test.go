package codec_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
)

func TestRegistryRegistersFullFundamentalProduct(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())

	for _, name := range []string{
		"U8", "I8", "U16", "I16", "U32", "I32", "U64", "I64", "F32", "F64",
		"U8BE", "I16BE", "U32BE", "I64BE", "F32BE",
		"U8LE", "I16LE", "U32LE", "I64LE", "F32LE",
		"U8N", "I16N", "U32N", "I64N", "F32N",
	} {
		_, ok := reg.Lookup(name)
		require.Truef(t, ok, "expected %q to be registered", name)
	}
}

func TestRegistryLEAndBEVariantsDisagreeOnByteOrder(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())

	be, ok := reg.Lookup("U16BE")
	require.True(t, ok)
	le, ok := reg.Lookup("U16LE")
	require.True(t, ok)

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, be.Encode(uint16(258), w))
	require.Equal(t, []byte{0x01, 0x02}, buf)

	buf = nil
	w = bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, le.Encode(uint16(258), w))
	require.Equal(t, []byte{0x02, 0x01}, buf)
}

func TestFundamentalU16BigEndianEncodesAs258(t *testing.T) {
	c := codec.NewFundamental(2, codec.KindUint, binary.BigEndian)

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, c.Encode(uint16(258), w))
	require.Equal(t, []byte{0x01, 0x02}, buf)

	r := bytestream.NewSliceReader([]byte{0x01, 0x02})
	v, err := c.Decode(r, codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, uint16(258), v)
}

func TestFundamentalRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		c     *codec.Fundamental
		value codec.Value
	}{
		{"u8", codec.NewFundamental(1, codec.KindUint, binary.BigEndian), uint8(7)},
		{"i8", codec.NewFundamental(1, codec.KindInt, binary.BigEndian), int8(-7)},
		{"u16be", codec.NewFundamental(2, codec.KindUint, binary.BigEndian), uint16(60000)},
		{"u16le", codec.NewFundamental(2, codec.KindUint, binary.LittleEndian), uint16(60000)},
		{"i32", codec.NewFundamental(4, codec.KindInt, binary.BigEndian), int32(-123456)},
		{"u64", codec.NewFundamental(8, codec.KindUint, binary.BigEndian), uint64(1 << 40)},
		{"f32", codec.NewFundamental(4, codec.KindFloat, binary.BigEndian), float32(3.5)},
		{"f64", codec.NewFundamental(8, codec.KindFloat, binary.BigEndian), float64(2.71828)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf []byte
			w := bytestream.NewWriter(sliceWriter{&buf})
			require.NoError(t, tc.c.Encode(tc.value, w))

			r := bytestream.NewSliceReader(buf)
			got, err := tc.c.Decode(r, codec.NoLength)
			require.NoError(t, err)
			require.Equal(t, tc.value, got)
		})
	}
}

func TestFundamentalDecodeEndOfStream(t *testing.T) {
	c := codec.NewFundamental(4, codec.KindUint, binary.BigEndian)
	r := bytestream.NewSliceReader([]byte{})
	_, err := c.Decode(r, codec.NoLength)
	require.ErrorContains(t, err, "end of stream")
}

func TestBoolDefaults(t *testing.T) {
	b := codec.NewBool(0xFF, 0x00)

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, b.Encode(true, w))
	require.Equal(t, []byte{0xFF}, buf)

	buf = nil
	w = bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, b.Encode(false, w))
	require.Equal(t, []byte{0x00}, buf)

	decode := func(b0 byte) bool {
		v, err := b.Decode(bytestream.NewSliceReader([]byte{b0}), codec.NoLength)
		require.NoError(t, err)
		return v.(bool)
	}

	require.True(t, decode(0xFF))
	require.True(t, decode(0x7E)) // non-canonical true byte still decodes true
	require.False(t, decode(0x00))
}

func TestArrayRoundTrip(t *testing.T) {
	elem := codec.NewFundamental(2, codec.KindUint, binary.BigEndian)
	arr := codec.NewArray(elem, 3)

	values := []codec.Value{uint16(1), uint16(2), uint16(3)}

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, arr.Encode(values, w))
	require.Len(t, buf, 6)

	got, err := arr.Decode(bytestream.NewSliceReader(buf), codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestArrayEncodeWrongSizeFails(t *testing.T) {
	elem := codec.NewFundamental(1, codec.KindUint, binary.BigEndian)
	arr := codec.NewArray(elem, 3)

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	err := arr.Encode([]codec.Value{uint8(1)}, w)
	require.Error(t, err)
}

func TestStructureRoundTripPreservesOrder(t *testing.T) {
	u8 := codec.NewFundamental(1, codec.KindUint, binary.BigEndian)
	u16 := codec.NewFundamental(2, codec.KindUint, binary.BigEndian)
	st := codec.NewStructure([]codec.Member{
		{Name: "a", Codec: u8},
		{Name: "b", Codec: u16},
	})

	sv := codec.NewStructValue([]string{"a", "b"}, map[string]codec.Value{
		"a": uint8(9), "b": uint16(1000),
	})

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, st.Encode(sv, w))
	require.Equal(t, []byte{0x09, 0x03, 0xE8}, buf)

	got, err := st.Decode(bytestream.NewSliceReader(buf), codec.NoLength)
	require.NoError(t, err)
	gotSv := got.(*codec.StructValue)
	require.Equal(t, []string{"a", "b"}, gotSv.Names())
	a, ok := gotSv.Get("a")
	require.True(t, ok)
	require.Equal(t, uint8(9), a)
}

func TestEnumUnknownValuePreservesRaw(t *testing.T) {
	underlying := codec.NewFundamental(1, codec.KindUint, binary.BigEndian)
	e := codec.NewEnum(underlying, map[int64]string{0: "IDLE", 1: "RUN"})

	v, err := e.Decode(bytestream.NewSliceReader([]byte{5}), codec.NoLength)
	require.NoError(t, err)
	ev := v.(codec.EnumValue)
	require.False(t, ev.Known)
	require.Equal(t, int64(5), ev.Raw)

	v, err = e.Decode(bytestream.NewSliceReader([]byte{1}), codec.NoLength)
	require.NoError(t, err)
	ev = v.(codec.EnumValue)
	require.True(t, ev.Known)
	require.Equal(t, "RUN", ev.Name)
}

func TestEnumRoundTrip(t *testing.T) {
	underlying := codec.NewFundamental(1, codec.KindUint, binary.BigEndian)
	e := codec.NewEnum(underlying, map[int64]string{0: "IDLE", 1: "RUN"})

	ev := codec.EnumValue{Raw: 1, Name: "RUN", Known: true}

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, e.Encode(ev, w))
	require.Equal(t, []byte{0x01}, buf)

	got, err := e.Decode(bytestream.NewSliceReader(buf), codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, ev, got)
}

func TestBufferZeroLengthYieldsEmpty(t *testing.T) {
	b := codec.NewBuffer()
	v, err := b.Decode(bytestream.NewSliceReader([]byte{1, 2, 3}), 0)
	require.NoError(t, err)
	require.Equal(t, codec.HexBytes{}, v)
}

func TestBufferReadRest(t *testing.T) {
	b := codec.NewBuffer()
	v, err := b.Decode(bytestream.NewSliceReader([]byte{1, 2, 3}), codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, codec.HexBytes{1, 2, 3}, v)
}

func TestBufferExplicitLength(t *testing.T) {
	b := codec.NewBuffer()
	v, err := b.Decode(bytestream.NewSliceReader([]byte{1, 2, 3, 4}), 2)
	require.NoError(t, err)
	require.Equal(t, codec.HexBytes{1, 2}, v)
}

func TestAsciiBufferRoundTrip(t *testing.T) {
	a := codec.NewAsciiBuffer()

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, a.Encode("hello", w))

	v, err := a.Decode(bytestream.NewSliceReader(buf), codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestLengthPrefixedStringRoundTrip(t *testing.T) {
	length := codec.NewFundamental(2, codec.KindUint, binary.BigEndian)
	s := codec.NewLengthPrefixedString(length)

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, s.Encode("foo", w))
	require.Equal(t, []byte{0x00, 0x03, 'f', 'o', 'o'}, buf)

	v, err := s.Decode(bytestream.NewSliceReader(buf), codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, "foo", v)
}

func TestTimeRoundTripWithBaseAndContext(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	timeCodec, ok := reg.Lookup("Time")
	require.True(t, ok)

	tv := codec.TimeValue{Base: uint16(1), Context: uint8(2), Seconds: 100, Microseconds: 500}

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, timeCodec.Encode(tv, w))
	require.Len(t, buf, 2+1+4+4)

	v, err := timeCodec.Decode(bytestream.NewSliceReader(buf), codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, tv, v)
}

func TestTimeWithoutBaseOrContextIs8Bytes(t *testing.T) {
	cfg := codec.DefaultConfig()
	cfg.UseTimeBase = false
	cfg.UseTimeContext = false
	reg := codec.NewRegistry(cfg)
	timeCodec, _ := reg.Lookup("Time")

	tv := codec.TimeValue{Seconds: 1, Microseconds: 2}

	var buf []byte
	w := bytestream.NewWriter(sliceWriter{&buf})
	require.NoError(t, timeCodec.Encode(tv, w))
	require.Len(t, buf, 8)

	v, err := timeCodec.Decode(bytestream.NewSliceReader(buf), codec.NoLength)
	require.NoError(t, err)
	require.Equal(t, tv, v)
}

// sliceWriter adapts a *[]byte to io.Writer for tests that only need to
// capture Encode output.
type sliceWriter struct{ buf *[]byte }

func (s sliceWriter) Write(p []byte) (int, error) {
	*s.buf = append(*s.buf, p...)
	return len(p), nil
}
