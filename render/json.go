package render

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonRow mirrors the 25-column schema with omitempty semantics so a JSON
// consumer sees absent fields dropped rather than null-valued, matching the
// document-oriented convention JSON readers expect.
type jsonRow struct {
	RecordIndex     int    `json:"record_index"`
	RecordOffset    uint64 `json:"record_offset,omitempty"`
	PacketSize      uint32 `json:"packet_size"`
	PacketTypeName  string `json:"packet_type_name"`
	PacketTypeValue uint32 `json:"packet_type_value"`
	PacketTime      string `json:"packet_time,omitempty"`

	TelemID             uint32 `json:"telem_id,omitempty"`
	TelemIDHex          string `json:"telem_id_hex,omitempty"`
	TelemTopologyName   string `json:"telem_topology_name,omitempty"`
	TelemComponent      string `json:"telem_component,omitempty"`
	TelemName           string `json:"telem_name,omitempty"`
	TelemTime           string `json:"telem_time,omitempty"`
	TelemValueRawSize   int    `json:"telem_value_raw_size,omitempty"`
	TelemValueRaw       string `json:"telem_value_raw,omitempty"`
	TelemValue          any    `json:"telem_value,omitempty"`

	EventID               uint32 `json:"event_id,omitempty"`
	EventIDHex            string `json:"event_id_hex,omitempty"`
	EventTopologyName     string `json:"event_topology_name,omitempty"`
	EventComponent        string `json:"event_component,omitempty"`
	EventName             string `json:"event_name,omitempty"`
	EventSeverity         string `json:"event_severity,omitempty"`
	EventTime             string `json:"event_time,omitempty"`
	EventArgumentsRawSize int    `json:"event_arguments_raw_size,omitempty"`
	EventArgumentsRaw     string `json:"event_arguments_raw,omitempty"`

	Payload string `json:"payload,omitempty"`
}

// JSON writes one JSON object per line (a "jsonlines" stream, matching the
// one-record-per-line convention the TSV and VNLOG writers share).
type JSON struct {
	w   io.Writer
	enc *json.Encoder
}

// NewJSON builds a JSON writer over w.
func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w, enc: json.NewEncoder(w)}
}

func (j *JSON) WriteRecord(v RecordView) error {
	row := jsonRow{
		RecordIndex:     v.RecordIndex,
		PacketSize:      v.PacketSize,
		PacketTypeName:  v.PacketTypeName,
		PacketTypeValue: v.PacketTypeValue,
		PacketTime:      v.PacketTime,
	}
	if v.HasOffset {
		row.RecordOffset = v.RecordOffset
	}

	if v.HasTelem {
		row.TelemID = v.TelemID
		row.TelemIDHex = v.TelemIDHex
		row.TelemTopologyName = v.TelemTopologyName
		row.TelemComponent = v.TelemComponent
		row.TelemName = v.TelemName
		row.TelemTime = v.TelemTime
		row.TelemValueRawSize = v.TelemValueRawSize
		row.TelemValueRaw = hexOrEmpty(v.TelemValueRaw)
		if v.HasTelemValue {
			row.TelemValue = v.TelemValue
		}
	}

	if v.HasEvent {
		row.EventID = v.EventID
		row.EventIDHex = v.EventIDHex
		row.EventTopologyName = v.EventTopologyName
		row.EventComponent = v.EventComponent
		row.EventName = v.EventName
		row.EventSeverity = v.EventSeverity
		row.EventTime = v.EventTime
		row.EventArgumentsRawSize = v.EventArgumentsRawSize
		row.EventArgumentsRaw = hexOrEmpty(v.EventArgumentsRaw)
	}

	if v.HasPayload {
		row.Payload = hexOrEmpty(v.Payload)
	}

	if err := j.enc.Encode(row); err != nil {
		return fmt.Errorf("fpdt: render: json: %w", err)
	}

	return nil
}
