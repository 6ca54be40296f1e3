package packet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/fwtype"
)

func TestDecodeFileStartSubPacket(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	diag := diagnostics.NewCollectingSink()

	// FwPacketDescriptor=3 (FILE), sub-type=0 (START), sequence_index=1,
	// file_size=42, source_path="foo", destination_path="bar".
	data := []byte{
		0x00, 0x00, 0x00, 0x03,
		0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x2A,
		0x03, 'f', 'o', 'o',
		0x03, 'b', 'a', 'r',
	}

	pkt, err := Decode(bytestream.NewSliceReader(data), reg, nil, diag)
	require.NoError(t, err)
	require.Equal(t, fwtype.PacketFile, pkt.Type)
	require.NotNil(t, pkt.File)
	require.Equal(t, fwtype.FileStart, pkt.File.SubType)
	require.EqualValues(t, 1, pkt.File.SequenceIndex)
	require.NotNil(t, pkt.File.Start)
	require.EqualValues(t, 42, pkt.File.Start.FileSize)
	require.Equal(t, "foo", pkt.File.Start.SourcePath)
	require.Equal(t, "bar", pkt.File.Start.DestinationPath)
}

func TestFilePayloadEncodeRoundTripsStart(t *testing.T) {
	payload := &FilePayload{
		SubType:       fwtype.FileStart,
		SequenceIndex: 7,
		Start: &FileStartPayload{
			FileSize:        1024,
			SourcePath:      "a.bin",
			DestinationPath: "b.bin",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, payload.Encode(bytestream.NewWriter(&buf)))

	decoded, err := decodeFile(bytestream.NewSliceReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, payload.SubType, decoded.File.SubType)
	require.Equal(t, payload.SequenceIndex, decoded.File.SequenceIndex)
	require.Equal(t, payload.Start.FileSize, decoded.File.Start.FileSize)
	require.Equal(t, payload.Start.SourcePath, decoded.File.Start.SourcePath)
	require.Equal(t, payload.Start.DestinationPath, decoded.File.Start.DestinationPath)
}

func TestFilePayloadEncodeRoundTripsDataAndEnd(t *testing.T) {
	data := &FilePayload{
		SubType:       fwtype.FileData,
		SequenceIndex: 2,
		Data: &FileDataPayload{
			ByteOffset: 512,
			Data:       []byte{0xDE, 0xAD, 0xBE, 0xEF},
		},
	}

	var dataBuf bytes.Buffer
	require.NoError(t, data.Encode(bytestream.NewWriter(&dataBuf)))
	decodedData, err := decodeFile(bytestream.NewSliceReader(dataBuf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, fwtype.FileData, decodedData.File.SubType)
	require.EqualValues(t, 512, decodedData.File.Data.ByteOffset)
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, decodedData.File.Data.Data)

	end := &FilePayload{
		SubType:       fwtype.FileEnd,
		SequenceIndex: 3,
		End:           &FileEndPayload{Checksum: 0xCAFEBABE},
	}

	var endBuf bytes.Buffer
	require.NoError(t, end.Encode(bytestream.NewWriter(&endBuf)))
	decodedEnd, err := decodeFile(bytestream.NewSliceReader(endBuf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, fwtype.FileEnd, decodedEnd.File.SubType)
	require.EqualValues(t, 0xCAFEBABE, decodedEnd.File.End.Checksum)
}

func TestDecodeFileRejectsUnknownSubType(t *testing.T) {
	data := []byte{0x09, 0x00, 0x00, 0x00, 0x00}
	_, err := decodeFile(bytestream.NewSliceReader(data))
	require.Error(t, err)
}
