package render_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/record"
	"github.com/fprime-community/fpdt/render"
)

func decodeOneRecord(t *testing.T, buf []byte) *record.Record {
	t.Helper()

	reg := codec.NewRegistry(codec.DefaultConfig())
	framer, err := record.NewComLoggerRecord(reg)
	require.NoError(t, err)

	rec, err := framer.Decode(bytestream.NewSliceReader(buf), reg, nil, diagnostics.NewCollectingSink())
	require.NoError(t, err)

	return rec
}

func TestBuildRecordViewLogPacket(t *testing.T) {
	buf := []byte{
		0x00, 0x0D,
		0x02,
		0x00, 0x00, 0x04, 0xD2,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	cfg := codec.DefaultConfig()
	cfg.UseTimeBase = false
	cfg.UseTimeContext = false
	reg := codec.NewRegistry(cfg)
	// buf carries a 1-byte packet tag; the default FwPacketDescriptor
	// width is 4 bytes.
	u8, _ := reg.Lookup("U8")
	reg.SetAlias("FwPacketDescriptor", u8)

	framer, err := record.NewComLoggerRecord(reg)
	require.NoError(t, err)
	rec, err := framer.Decode(bytestream.NewSliceReader(buf), reg, nil, diagnostics.NewCollectingSink())
	require.NoError(t, err)

	v, err := render.BuildRecordView(0, rec, nil)
	require.NoError(t, err)

	require.True(t, v.HasEvent)
	require.False(t, v.HasTelem)
	require.False(t, v.HasPayload)
	require.Equal(t, "LOG", v.PacketTypeName)
	require.EqualValues(t, 1234, v.EventID)
	require.Equal(t, "0x4d2", v.EventIDHex)
	require.Empty(t, v.PacketTime)
}

func TestBuildRecordViewCommandPacketUsesPayloadColumn(t *testing.T) {
	buf := []byte{
		0x00, 0x0A,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x09,
		0xAB, 0xCD,
	}

	rec := decodeOneRecord(t, buf)

	v, err := render.BuildRecordView(1, rec, nil)
	require.NoError(t, err)

	require.True(t, v.HasPayload)
	require.False(t, v.HasTelem)
	require.False(t, v.HasEvent)
	require.Equal(t, []byte{0xAB, 0xCD}, v.Payload)
}
