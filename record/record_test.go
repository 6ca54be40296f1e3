package record_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/record"
)

func TestComLoggerRecordDecodesLogPacket(t *testing.T) {
	cfg := codec.DefaultConfig()
	cfg.UseTimeBase = false
	cfg.UseTimeContext = false
	reg := codec.NewRegistry(cfg)
	// The fixture below carries a 1-byte packet tag, so narrow the
	// FwPacketDescriptor alias from its 4-byte default.
	u8, _ := reg.Lookup("U8")
	reg.SetAlias("FwPacketDescriptor", u8)

	framer, err := record.NewComLoggerRecord(reg)
	require.NoError(t, err)

	// packet_size=13, tag=LOG(2) as one byte, event_id=1234, seconds=0,
	// microseconds=0, no trailing argument bytes.
	buf := []byte{
		0x00, 0x0D,
		0x02,
		0x00, 0x00, 0x04, 0xD2,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	r := bytestream.NewSliceReader(buf)
	rec, err := framer.Decode(r, reg, nil, diagnostics.NewCollectingSink())
	require.NoError(t, err)

	require.EqualValues(t, 13, rec.PacketSize)
	require.NotNil(t, rec.Packet.Log)
	require.EqualValues(t, 1234, rec.Packet.Log.EventID)
	require.EqualValues(t, 0, rec.Packet.Log.Time.Seconds)
	require.Empty(t, rec.Packet.Log.ArgumentsRaw)
}

func TestComLoggerRecordEncodeRoundTrip(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	framer, err := record.NewComLoggerRecord(reg)
	require.NoError(t, err)

	buf := []byte{
		0x00, 0x0D,
		0x02,
		0x00, 0x00, 0x04, 0xD2,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	var written []byte
	writeCollector := func(p []byte) (int, error) {
		written = append(written, p...)
		return len(p), nil
	}

	rec, err := framer.Decode(bytestream.NewSliceReader(buf), reg, nil, diagnostics.NewCollectingSink())
	require.NoError(t, err)

	w := bytestream.NewWriter(writerFunc(writeCollector))
	require.NoError(t, framer.Encode(rec, reg, w))
	require.Equal(t, buf, written)
}

func TestFprimeGdsStreamSkipsPrefixBytes(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	stream, err := record.NewFprimeGdsStream(reg)
	require.NoError(t, err)

	buf := []byte{
		0xAA, 0xBB,
		0xDE, 0xAD, 0xBE, 0xEF,
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x05,
	}

	r := bytestream.NewSliceReader(buf)
	rec, err := stream.Decode(r, reg, nil, diagnostics.NewCollectingSink())
	require.NoError(t, err)
	require.True(t, rec.HasOffset)
	require.EqualValues(t, 6, rec.Offset)
}

func TestFprimeGdsStreamOverlappingSyncWord(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	stream, err := record.NewFprimeGdsStream(reg)
	require.NoError(t, err)

	buf := []byte{
		0xDE, 0xAD, 0xDE, 0xAD, 0xBE, 0xEF,
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x05,
	}

	r := bytestream.NewSliceReader(buf)
	_, err = stream.Decode(r, reg, nil, diagnostics.NewCollectingSink())
	require.NoError(t, err)
}

func TestPrmDbRecordDecode(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())

	// sync=A5, size=8 (FwPrmId width 4 + 4 bytes value), id=1, value=0xDEADBEEF.
	buf := []byte{
		0xA5,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x00, 0x00, 0x01,
		0xDE, 0xAD, 0xBE, 0xEF,
	}

	r := bytestream.NewSliceReader(buf)
	rec, err := record.DecodePrmDbRecord(r, reg, nil, diagnostics.NewCollectingSink())
	require.NoError(t, err)
	require.EqualValues(t, 1, rec.ParameterID)
	require.Equal(t, codec.HexBytes{0xDE, 0xAD, 0xBE, 0xEF}, rec.ValueRaw)
}

// writerFunc adapts a plain function to io.Writer.
type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
