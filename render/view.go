// Package render projects decoded records into the three line-delimited
// output formats (JSON, TSV, VNLOG) over a fixed 25-column schema
// (spec.md §6). It has no opinion on dictionary resolution: RecordView is
// built from whatever packet/dictionary lookups the caller already
// performed, keeping this package a pure projection-to-text layer outside
// the three core subsystems.
package render

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/dictionary"
	"github.com/fprime-community/fpdt/fwtype"
	"github.com/fprime-community/fpdt/packet"
	"github.com/fprime-community/fpdt/record"
)

// RecordView is the flattened, format-agnostic projection of one decoded
// record plus whatever dictionary metadata its identifiers resolved to.
// Every field corresponds to one of the 25 fixed columns; absent values
// are the zero value of their type, which each Writer renders as its own
// format's empty-cell convention.
type RecordView struct {
	RecordIndex     int
	HasOffset       bool
	RecordOffset    uint64
	PacketSize      uint32
	PacketTypeName  string
	PacketTypeValue uint32
	// PacketTime has no source in the data model (neither Record nor
	// Packet carries a time outside TELEM/LOG); it is always empty. The
	// column is still emitted since the schema is fixed-width.
	PacketTime string

	HasTelem          bool
	TelemID           uint32
	TelemIDHex        string
	TelemTopologyName string
	TelemComponent    string
	TelemName         string
	TelemTime         string
	TelemValueRawSize int
	TelemValueRaw     []byte
	TelemValue        codec.Value
	HasTelemValue     bool

	HasEvent              bool
	EventID               uint32
	EventIDHex            string
	EventTopologyName     string
	EventComponent        string
	EventName             string
	EventSeverity         string
	EventTime             string
	EventArgumentsRawSize int
	EventArgumentsRaw     []byte

	// Payload carries the raw bytes (hex-encoded by each Writer) for any
	// packet variant that has no dedicated column set of its own (COMMAND,
	// FILE, PACKETIZED_TLM, IDLE, and unrecognized tags). TELEM/LOG leave it
	// empty since their detail lives in the dedicated columns above.
	HasPayload bool
	Payload    []byte
}

// BuildRecordView flattens one decoded record.Record into a RecordView.
// dict may be nil; when non-nil it supplies topology name/component/
// mnemonic/severity metadata for TELEM and LOG packets.
func BuildRecordView(index int, rec *record.Record, dict *dictionary.Dictionary) (RecordView, error) {
	v := RecordView{
		RecordIndex:     index,
		HasOffset:       rec.HasOffset,
		RecordOffset:    rec.Offset,
		PacketSize:      rec.PacketSize,
		PacketTypeName:  rec.Packet.Type.String(),
		PacketTypeValue: uint32(rec.Packet.Type),
	}

	switch rec.Packet.Type {
	case fwtype.PacketTelem:
		t := rec.Packet.Telem
		v.HasTelem = true
		v.TelemID = t.ChannelID
		v.TelemIDHex = fmt.Sprintf("0x%x", t.ChannelID)
		v.TelemTime = fmt.Sprintf("%.6f", t.Time.UnixSeconds())
		v.TelemValueRawSize = len(t.ValueRaw)
		v.TelemValueRaw = t.ValueRaw
		if t.ResolvedValue != nil {
			v.HasTelemValue = true
			v.TelemValue = t.ResolvedValue
		}
		if dict != nil {
			if ch, ok := dict.Channel(t.ChannelID); ok {
				v.TelemTopologyName = ch.TopologyName
				v.TelemComponent = ch.Component
				v.TelemName = ch.Name
			}
		}
	case fwtype.PacketLog:
		l := rec.Packet.Log
		v.HasEvent = true
		v.EventID = l.EventID
		v.EventIDHex = fmt.Sprintf("0x%x", l.EventID)
		v.EventTime = fmt.Sprintf("%.6f", l.Time.UnixSeconds())
		v.EventArgumentsRawSize = len(l.ArgumentsRaw)
		v.EventArgumentsRaw = l.ArgumentsRaw
		if dict != nil {
			if ev, ok := dict.Event(l.EventID); ok {
				v.EventTopologyName = ev.TopologyName
				v.EventComponent = ev.Component
				v.EventName = ev.Name
				v.EventSeverity = ev.Severity.String()
			}
		}
	default:
		payload, err := encodePayload(rec.Packet)
		if err != nil {
			return RecordView{}, err
		}
		v.HasPayload = true
		v.Payload = payload
	}

	return v, nil
}

func encodePayload(pkt *packet.Packet) ([]byte, error) {
	switch pkt.Type {
	case fwtype.PacketCommand:
		return pkt.Command.ArgumentsRaw, nil
	case fwtype.PacketFile:
		var buf bytes.Buffer
		w := bytestream.NewWriter(&buf)
		if err := pkt.File.Encode(w); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return pkt.Opaque, nil
	}
}

func hexOrEmpty(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	return hex.EncodeToString(data)
}
