// Package record implements the four record framers that sit between a raw
// byte stream and the packet decoder: two length-prefixed variants
// (ComLoggerRecord, FprimeGdsRecord), a sync-word-scanning stream wrapper
// around FprimeGdsRecord (FprimeGdsStream), and a sync-byte-scanning
// parameter-database record (PrmDbRecord). The length-prefixed sub-stream
// confinement is load-bearing: it is the only mechanism that bounds the
// "read the rest" payload decoders inside packet.Decode.
package record

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/packet"
)

// Record is the decoded length-prefixed record: the stream offset where the
// packet_size field began (when the source is seekable), the size prefix
// itself, and the decoded packet.
type Record struct {
	Offset     uint64
	HasOffset  bool
	PacketSize uint32
	Packet     *packet.Packet
}

// Framer decodes and encodes one length-prefixed record variant. The two
// spec variants differ only in the width of the size-prefix codec, so both
// ComLoggerRecord and FprimeGdsRecord are Framer values configured with a
// different SizeCodec, rather than distinct types.
type Framer struct {
	Name      string
	SizeCodec codec.Codec
}

// NewComLoggerRecord returns the u16-size-prefixed framer.
func NewComLoggerRecord(reg *codec.Registry) (*Framer, error) {
	return newFramer("ComLoggerRecord", reg, "U16")
}

// NewFprimeGdsRecord returns the u32-size-prefixed framer.
func NewFprimeGdsRecord(reg *codec.Registry) (*Framer, error) {
	return newFramer("FprimeGdsRecord", reg, "U32")
}

func newFramer(name string, reg *codec.Registry, sizeTypeName string) (*Framer, error) {
	sizeCodec, ok := reg.Lookup(sizeTypeName)
	if !ok {
		return nil, fmt.Errorf("fpdt: record: %s alias not registered", sizeTypeName)
	}

	return &Framer{Name: name, SizeCodec: sizeCodec}, nil
}

// Decode reads packet_size, reads exactly that many bytes into a
// sub-stream, and decodes a Packet from the sub-stream. dict and diag are
// forwarded to packet.Decode unchanged; dict may be nil.
func (f *Framer) Decode(r *bytestream.Reader, reg *codec.Registry, dict packet.IdentifierResolver, diag diagnostics.Sink) (*Record, error) {
	offset, hasOffset := r.Offset()

	sizeVal, err := f.SizeCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}
	n, ok := codec.AsInt64(sizeVal)
	if !ok {
		return nil, fmt.Errorf("fpdt: record: %s packet_size is not integral", f.Name)
	}

	packetBytes, err := r.ReadExact(int(n))
	if err != nil {
		return nil, err
	}

	sub := bytestream.NewSubStream(packetBytes)
	pkt, err := packet.Decode(sub, reg, dict, diag)
	if err != nil {
		return nil, err
	}

	return &Record{
		Offset:     offset,
		HasOffset:  hasOffset,
		PacketSize: uint32(n),
		Packet:     pkt,
	}, nil
}

// Encode serializes rec.Packet first (to derive the exact byte count),
// then writes packet_size followed by those bytes, matching the
// encode(F(P)) testable property: total length is
// width(packet_size) + len(encode(P)).
func (f *Framer) Encode(rec *Record, reg *codec.Registry, w *bytestream.Writer) error {
	var packetBuf byteBuffer
	packetWriter := bytestream.NewWriter(&packetBuf)
	if err := rec.Packet.Encode(reg, packetWriter); err != nil {
		return err
	}

	if err := f.SizeCodec.Encode(codec.Value(widthOf(f.SizeCodec, len(packetBuf))), w); err != nil {
		return err
	}

	return w.Write(packetBuf)
}

// widthOf converts a byte count to the native Go type f's underlying
// Fundamental width expects, so Encode can hand packet_size to SizeCodec
// without the caller needing to know whether it's u16 or u32.
func widthOf(c codec.Codec, n int) codec.Value {
	f, ok := c.(*codec.Fundamental)
	if !ok {
		return uint32(n)
	}

	switch f.Width() {
	case 2:
		return uint16(n)
	case 4:
		return uint32(n)
	default:
		return uint32(n)
	}
}

// byteBuffer is a minimal growable io.Writer, used to measure an encoded
// packet's length before writing its size prefix.
type byteBuffer []byte

func (b *byteBuffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}
