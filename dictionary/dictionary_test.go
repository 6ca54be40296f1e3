package dictionary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/dictionary"
	"github.com/fprime-community/fpdt/packet"
)

const fixtureXML = `<dictionary>
  <enums>
    <enum type="Mode">
      <item name="IDLE" value="0" description="idle"/>
      <item name="RUN" value="1" description="running"/>
    </enum>
  </enums>
  <channels>
    <channel component="C" name="mode" id="0x10" type="Mode" format_string="%d"/>
  </channels>
  <commands>
    <command component="C" mnemonic="mode_PRM_SET" opcode="0x20">
      <args>
        <arg name="mode" type="Mode"/>
      </args>
    </command>
  </commands>
  <parameters>
    <parameter component="C" name="mode" id="0x30" default="0"/>
  </parameters>
</dictionary>`

func buildTelemPacketBytes(t *testing.T, chanID uint32, valueRaw []byte) []byte {
	t.Helper()

	var buf []byte
	buf = append(buf, 0x00, 0x00, 0x00, 0x01) // FwPacketDescriptor = TELEM
	buf = append(buf,
		byte(chanID>>24), byte(chanID>>16), byte(chanID>>8), byte(chanID))
	buf = append(buf, make([]byte, 2+1+4+4)...) // zeroed Time (base+context+seconds+us)
	buf = append(buf, valueRaw...)

	return buf
}

func TestBindingResolvesChannelEnumValue(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	diag := diagnostics.NewCollectingSink()
	dict := dictionary.New(reg, diag)

	require.NoError(t, dict.Merge([]byte(fixtureXML)))
	require.NoError(t, dict.Bind())

	_, ok := dict.Channel(0x10)
	require.True(t, ok)

	buf := buildTelemPacketBytes(t, 0x10, []byte{0x00, 0x00, 0x00, 0x01})
	r := bytestream.NewSliceReader(buf)

	pkt, err := packet.Decode(r, reg, dict, diag)
	require.NoError(t, err)
	require.NotNil(t, pkt.Telem)

	ev, ok := pkt.Telem.ResolvedValue.(codec.EnumValue)
	require.True(t, ok)
	require.True(t, ev.Known)
	require.Equal(t, "RUN", ev.Name)
}

func TestBindingWarnsOnUnknownChannel(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	diag := diagnostics.NewCollectingSink()
	dict := dictionary.New(reg, diag)

	require.NoError(t, dict.Merge([]byte(fixtureXML)))
	require.NoError(t, dict.Bind())

	buf := buildTelemPacketBytes(t, 0x99, []byte{0x00, 0x00, 0x00, 0x00})
	r := bytestream.NewSliceReader(buf)

	pkt, err := packet.Decode(r, reg, dict, diag)
	require.NoError(t, err)
	require.Nil(t, pkt.Telem.ResolvedValue)

	found := false
	for _, e := range diag.Entries {
		if e.Code == "unknown_identifier" {
			found = true
		}
	}
	require.True(t, found)
}

func TestParameterResolvesThroughSetCommand(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	diag := diagnostics.NewCollectingSink()
	dict := dictionary.New(reg, diag)

	require.NoError(t, dict.Merge([]byte(fixtureXML)))
	require.NoError(t, dict.Bind())

	paramCodec, ok := dict.ParameterCodecByID(0x30)
	require.True(t, ok)
	require.NotNil(t, paramCodec)

	v, err := paramCodec.Decode(bytestream.NewSliceReader([]byte{0x00, 0x00, 0x00, 0x01}), codec.NoLength)
	require.NoError(t, err)
	ev := v.(codec.EnumValue)
	require.Equal(t, "RUN", ev.Name)
}

func TestCommandArgumentsResolveByOpcode(t *testing.T) {
	reg := codec.NewRegistry(codec.DefaultConfig())
	diag := diagnostics.NewCollectingSink()
	dict := dictionary.New(reg, diag)

	require.NoError(t, dict.Merge([]byte(fixtureXML)))
	require.NoError(t, dict.Bind())

	argsCodec, ok := dict.CommandCodecByOpcode(0x20)
	require.True(t, ok)
	require.NotNil(t, argsCodec)
}
