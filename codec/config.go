package codec

import "encoding/binary"

// Config holds the four configurable flags from spec.md §6 that affect
// codec behavior, independent of the type namespace aliases (which live on
// Registry).
type Config struct {
	UseTimeBase    bool
	UseTimeContext bool
	TrueByte       byte
	FalseByte      byte
}

// DefaultConfig returns the documented defaults: both time flags enabled,
// TrueByte 0xFF, FalseByte 0x00.
func DefaultConfig() Config {
	return Config{
		UseTimeBase:    true,
		UseTimeContext: true,
		TrueByte:       0xFF,
		FalseByte:      0x00,
	}
}

// aliasSpec describes one configurable type alias's built-in default, used
// to seed a fresh Registry.
type aliasSpec struct {
	name  string
	width int
	kind  Kind
}

// Configurable aliases and their documented defaults (spec.md §4.2): all
// big-endian.
var builtinAliases = []aliasSpec{
	{"FwBuffSize", 2, KindUint},
	{"FwChanId", 4, KindUint},
	{"FwEnumStore", 4, KindInt},
	{"FwEventId", 4, KindUint},
	{"FwOpcode", 4, KindUint},
	{"FwPacketDescriptor", 4, KindUint},
	{"FwPrmId", 4, KindUint},
	{"FwTimeBaseStore", 2, KindUint},
	{"FwTimeContextStore", 1, KindUint},
	{"FwTlmPacketizeId", 2, KindUint},
}

// builtinFundamentals are the full (width, kind) product registered under
// plain names, per spec.md §4.2's "full product plus default-big-endian
// alias family". These are big-endian, same as their "BE"-suffixed twins
// below.
var builtinFundamentals = []aliasSpec{
	{"U8", 1, KindUint}, {"I8", 1, KindInt},
	{"U16", 2, KindUint}, {"I16", 2, KindInt},
	{"U32", 4, KindUint}, {"I32", 4, KindInt},
	{"U64", 8, KindUint}, {"I64", 8, KindInt},
	{"F32", 4, KindFloat}, {"F64", 8, KindFloat},
}

// fundamentalVariantSpec describes one byte-order-suffixed fundamental type.
type fundamentalVariantSpec struct {
	name  string
	width int
	kind  Kind
	order binary.ByteOrder
}

// builtinFundamentalVariants is the BE/LE/N suffix family alongside the
// plain names above, matching original_source/fpdt.py's
// fundamental_type_specs exactly: 10 plain (big-endian, above) + 10 "BE" +
// 10 "LE" + 10 "N" (host-native byte order) = the full 40-type product
// spec.md §4.2 calls for.
var builtinFundamentalVariants = []fundamentalVariantSpec{
	{"I8BE", 1, KindInt, binary.BigEndian}, {"U8BE", 1, KindUint, binary.BigEndian},
	{"I16BE", 2, KindInt, binary.BigEndian}, {"U16BE", 2, KindUint, binary.BigEndian},
	{"I32BE", 4, KindInt, binary.BigEndian}, {"U32BE", 4, KindUint, binary.BigEndian},
	{"I64BE", 8, KindInt, binary.BigEndian}, {"U64BE", 8, KindUint, binary.BigEndian},
	{"F32BE", 4, KindFloat, binary.BigEndian}, {"F64BE", 8, KindFloat, binary.BigEndian},

	{"I8LE", 1, KindInt, binary.LittleEndian}, {"U8LE", 1, KindUint, binary.LittleEndian},
	{"I16LE", 2, KindInt, binary.LittleEndian}, {"U16LE", 2, KindUint, binary.LittleEndian},
	{"I32LE", 4, KindInt, binary.LittleEndian}, {"U32LE", 4, KindUint, binary.LittleEndian},
	{"I64LE", 8, KindInt, binary.LittleEndian}, {"U64LE", 8, KindUint, binary.LittleEndian},
	{"F32LE", 4, KindFloat, binary.LittleEndian}, {"F64LE", 8, KindFloat, binary.LittleEndian},

	{"I8N", 1, KindInt, binary.NativeEndian}, {"U8N", 1, KindUint, binary.NativeEndian},
	{"I16N", 2, KindInt, binary.NativeEndian}, {"U16N", 2, KindUint, binary.NativeEndian},
	{"I32N", 4, KindInt, binary.NativeEndian}, {"U32N", 4, KindUint, binary.NativeEndian},
	{"I64N", 8, KindInt, binary.NativeEndian}, {"U64N", 8, KindUint, binary.NativeEndian},
	{"F32N", 4, KindFloat, binary.NativeEndian}, {"F64N", 8, KindFloat, binary.NativeEndian},
}
