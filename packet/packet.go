// Package packet implements the tagged-union packet decoder: given a byte
// stream confined to exactly one packet's bytes, it decodes the
// FwPacketDescriptor tag and dispatches to the matching payload decoder
// (spec.md §4.6).
package packet

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/fwtype"
)

// IdentifierResolver looks up opcodes/channel IDs/event IDs in a bound
// dictionary. It is satisfied by *dictionary.Dictionary; the interface
// lives here (rather than importing the dictionary package directly) so
// packet decoding never depends on how identifiers are looked up, only on
// the lookup contract itself.
type IdentifierResolver interface {
	CommandCodecByOpcode(opcode uint32) (codec.Codec, bool)
	ChannelCodecByID(id uint32) (codec.Codec, bool)
	EventCodecByID(id uint32) (codec.Codec, bool)
}

// Packet is the decoded tagged union: Type identifies which of the payload
// fields below is populated.
type Packet struct {
	Type    fwtype.PacketDescriptor
	Command *CommandPayload
	Telem   *TelemPayload
	Log     *LogPayload
	File    *FilePayload
	Opaque  codec.HexBytes // PACKETIZED_TLM, IDLE, and UNKNOWN tags
}

// CommandPayload is the COMMAND packet variant.
type CommandPayload struct {
	Opcode       uint32
	ArgumentsRaw codec.HexBytes
	ResolvedArgs []codec.Value
}

// TelemPayload is the TELEM packet variant.
type TelemPayload struct {
	ChannelID     uint32
	Time          codec.TimeValue
	ValueRaw      codec.HexBytes
	ResolvedValue codec.Value
}

// LogPayload is the LOG (event) packet variant.
type LogPayload struct {
	EventID      uint32
	Time         codec.TimeValue
	ArgumentsRaw codec.HexBytes
	ResolvedArgs []codec.Value
}

// Decode reads a Packet from r, which must be confined to exactly this
// packet's bytes (the record framer is responsible for that confinement).
// reg supplies the FwPacketDescriptor/FwOpcode/FwChanId/FwEventId codecs and
// the Time codec. dict may be nil; when non-nil, it is consulted to resolve
// opcodes/channel/event IDs into typed arguments/values. diag receives one
// warning for every unresolved identifier or unknown packet type; it may
// not be nil.
func Decode(r *bytestream.Reader, reg *codec.Registry, dict IdentifierResolver, diag diagnostics.Sink) (*Packet, error) {
	tagCodec, ok := reg.Lookup("FwPacketDescriptor")
	if !ok {
		return nil, fmt.Errorf("fpdt: packet: FwPacketDescriptor alias not registered")
	}

	tagVal, err := tagCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}

	n, ok := codec.AsInt64(tagVal)
	if !ok {
		return nil, fmt.Errorf("fpdt: packet: tag value is not integral")
	}
	tag := fwtype.PacketDescriptor(uint32(n))

	switch tag {
	case fwtype.PacketCommand:
		return decodeCommand(r, reg, dict, diag)
	case fwtype.PacketTelem:
		return decodeTelem(r, reg, dict, diag)
	case fwtype.PacketLog:
		return decodeLog(r, reg, dict, diag)
	case fwtype.PacketFile:
		return decodeFile(r)
	case fwtype.PacketPacketizedTlm, fwtype.PacketIdle:
		raw, err := r.ReadRest()
		if err != nil {
			return nil, err
		}
		return &Packet{Type: tag, Opaque: raw}, nil
	default:
		diag.Warn("unknown_packet_type", fmt.Sprintf("unknown packet type tag %d", uint32(tag)), map[string]any{"tag": uint32(tag)})
		raw, err := r.ReadRest()
		if err != nil {
			return nil, err
		}
		return &Packet{Type: tag, Opaque: raw}, nil
	}
}

func decodeCommand(r *bytestream.Reader, reg *codec.Registry, dict IdentifierResolver, diag diagnostics.Sink) (*Packet, error) {
	opcodeCodec, ok := reg.Lookup("FwOpcode")
	if !ok {
		return nil, fmt.Errorf("fpdt: packet: FwOpcode alias not registered")
	}

	opcodeVal, err := opcodeCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}
	opcode, _ := codec.AsInt64(opcodeVal)

	argsRaw, err := r.ReadRest()
	if err != nil {
		return nil, err
	}

	payload := &CommandPayload{Opcode: uint32(opcode), ArgumentsRaw: argsRaw}

	if dict != nil {
		if argsCodec, found := dict.CommandCodecByOpcode(uint32(opcode)); found {
			if argsCodec != nil {
				resolved, err := decodeResolved(argsCodec, argsRaw)
				if err != nil {
					diag.Warn("malformed_command_args", err.Error(), map[string]any{"opcode": uint32(opcode)})
				} else {
					payload.ResolvedArgs = resolved
				}
			}
		} else {
			diag.Warn("unknown_identifier", fmt.Sprintf("unknown command opcode %d", uint32(opcode)), map[string]any{"opcode": uint32(opcode)})
		}
	}

	return &Packet{Type: fwtype.PacketCommand, Command: payload}, nil
}

func decodeTelem(r *bytestream.Reader, reg *codec.Registry, dict IdentifierResolver, diag diagnostics.Sink) (*Packet, error) {
	idCodec, ok := reg.Lookup("FwChanId")
	if !ok {
		return nil, fmt.Errorf("fpdt: packet: FwChanId alias not registered")
	}

	idVal, err := idCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}
	id, _ := codec.AsInt64(idVal)

	timeCodec, ok := reg.Lookup("Time")
	if !ok {
		return nil, fmt.Errorf("fpdt: packet: Time codec not registered")
	}
	timeVal, err := timeCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}

	valueRaw, err := r.ReadRest()
	if err != nil {
		return nil, err
	}

	payload := &TelemPayload{ChannelID: uint32(id), Time: timeVal.(codec.TimeValue), ValueRaw: valueRaw}

	if dict != nil {
		if valueCodec, found := dict.ChannelCodecByID(uint32(id)); found {
			if valueCodec != nil {
				resolved, err := decodeSingleValue(valueCodec, valueRaw)
				if err != nil {
					diag.Warn("malformed_telem_value", err.Error(), map[string]any{"id": uint32(id)})
				} else {
					payload.ResolvedValue = resolved
				}
			}
		} else {
			diag.Warn("unknown_identifier", fmt.Sprintf("unknown channel id %d", uint32(id)), map[string]any{"id": uint32(id)})
		}
	}

	return &Packet{Type: fwtype.PacketTelem, Telem: payload}, nil
}

func decodeLog(r *bytestream.Reader, reg *codec.Registry, dict IdentifierResolver, diag diagnostics.Sink) (*Packet, error) {
	idCodec, ok := reg.Lookup("FwEventId")
	if !ok {
		return nil, fmt.Errorf("fpdt: packet: FwEventId alias not registered")
	}

	idVal, err := idCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}
	id, _ := codec.AsInt64(idVal)

	timeCodec, ok := reg.Lookup("Time")
	if !ok {
		return nil, fmt.Errorf("fpdt: packet: Time codec not registered")
	}
	timeVal, err := timeCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}

	argsRaw, err := r.ReadRest()
	if err != nil {
		return nil, err
	}

	payload := &LogPayload{EventID: uint32(id), Time: timeVal.(codec.TimeValue), ArgumentsRaw: argsRaw}

	if dict != nil {
		if argsCodec, found := dict.EventCodecByID(uint32(id)); found {
			if argsCodec != nil {
				resolved, err := decodeResolved(argsCodec, argsRaw)
				if err != nil {
					diag.Warn("malformed_event_args", err.Error(), map[string]any{"id": uint32(id)})
				} else {
					payload.ResolvedArgs = resolved
				}
			}
		} else {
			diag.Warn("unknown_identifier", fmt.Sprintf("unknown event id %d", uint32(id)), map[string]any{"id": uint32(id)})
		}
	}

	return &Packet{Type: fwtype.PacketLog, Log: payload}, nil
}

// decodeResolved decodes zero or more sequential argument codecs from raw,
// confined to a sub-stream per spec.md §4.1/§4.9's "read the rest"
// confinement rule. argsCodec is a *codec.Structure-like ordered codec
// built by the dictionary binder (one member per argument).
func decodeResolved(argsCodec codec.Codec, raw []byte) ([]codec.Value, error) {
	sub := bytestream.NewSubStream(raw)
	v, err := argsCodec.Decode(sub, codec.NoLength)
	if err != nil {
		return nil, err
	}

	sv, ok := v.(*codec.StructValue)
	if !ok {
		return []codec.Value{v}, nil
	}

	out := make([]codec.Value, 0, len(sv.Names()))
	for _, name := range sv.Names() {
		val, _ := sv.Get(name)
		out = append(out, val)
	}

	return out, nil
}

func decodeSingleValue(valueCodec codec.Codec, raw []byte) (codec.Value, error) {
	sub := bytestream.NewSubStream(raw)
	return valueCodec.Decode(sub, codec.NoLength)
}
