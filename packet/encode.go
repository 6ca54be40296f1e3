package packet

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/fwtype"
)

// Encode writes p back to the wire using reg's FwPacketDescriptor/FwOpcode/
// FwChanId/FwEventId/Time codecs. COMMAND, TELEM, and LOG payloads are
// written from their raw byte fields (ArgumentsRaw/ValueRaw), not from any
// resolved value, since resolution is lossy with respect to dictionary-less
// round-tripping (spec.md §8's encode(F(P)) == P property only requires the
// raw wire bytes to match).
func (p *Packet) Encode(reg *codec.Registry, w *bytestream.Writer) error {
	tagCodec, ok := reg.Lookup("FwPacketDescriptor")
	if !ok {
		return fmt.Errorf("fpdt: packet: FwPacketDescriptor alias not registered")
	}
	if err := tagCodec.Encode(codec.Value(uint32(p.Type)), w); err != nil {
		return err
	}

	switch p.Type {
	case fwtype.PacketCommand:
		return p.encodeCommand(reg, w)
	case fwtype.PacketTelem:
		return p.encodeTelem(reg, w)
	case fwtype.PacketLog:
		return p.encodeLog(reg, w)
	case fwtype.PacketFile:
		if p.File == nil {
			return fmt.Errorf("fpdt: packet: FILE packet missing File field")
		}
		return p.File.Encode(w)
	default:
		return w.Write(p.Opaque)
	}
}

func (p *Packet) encodeCommand(reg *codec.Registry, w *bytestream.Writer) error {
	if p.Command == nil {
		return fmt.Errorf("fpdt: packet: COMMAND packet missing Command field")
	}

	opcodeCodec, ok := reg.Lookup("FwOpcode")
	if !ok {
		return fmt.Errorf("fpdt: packet: FwOpcode alias not registered")
	}
	if err := opcodeCodec.Encode(codec.Value(p.Command.Opcode), w); err != nil {
		return err
	}

	return w.Write(p.Command.ArgumentsRaw)
}

func (p *Packet) encodeTelem(reg *codec.Registry, w *bytestream.Writer) error {
	if p.Telem == nil {
		return fmt.Errorf("fpdt: packet: TELEM packet missing Telem field")
	}

	idCodec, ok := reg.Lookup("FwChanId")
	if !ok {
		return fmt.Errorf("fpdt: packet: FwChanId alias not registered")
	}
	if err := idCodec.Encode(codec.Value(p.Telem.ChannelID), w); err != nil {
		return err
	}

	timeCodec, ok := reg.Lookup("Time")
	if !ok {
		return fmt.Errorf("fpdt: packet: Time codec not registered")
	}
	if err := timeCodec.Encode(p.Telem.Time, w); err != nil {
		return err
	}

	return w.Write(p.Telem.ValueRaw)
}

func (p *Packet) encodeLog(reg *codec.Registry, w *bytestream.Writer) error {
	if p.Log == nil {
		return fmt.Errorf("fpdt: packet: LOG packet missing Log field")
	}

	idCodec, ok := reg.Lookup("FwEventId")
	if !ok {
		return fmt.Errorf("fpdt: packet: FwEventId alias not registered")
	}
	if err := idCodec.Encode(codec.Value(p.Log.EventID), w); err != nil {
		return err
	}

	timeCodec, ok := reg.Lookup("Time")
	if !ok {
		return fmt.Errorf("fpdt: packet: Time codec not registered")
	}
	if err := timeCodec.Encode(p.Log.Time, w); err != nil {
		return err
	}

	return w.Write(p.Log.ArgumentsRaw)
}
