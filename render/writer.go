package render

// Writer emits one RecordView at a time in a specific line-delimited
// format. Callers call WriteRecord once per decoded record, in order.
type Writer interface {
	WriteRecord(v RecordView) error
}

// columns returns the 25 schema columns (spec.md §6) as format-agnostic
// cell values: a string, an integer, or a decoded codec.Value for a present
// cell, or nil for an empty one. Each
// Writer renders nil according to its own format's empty-cell convention.
func columns(v RecordView) []any {
	cols := []any{
		v.RecordIndex,
		offsetOrNil(v),
		v.PacketSize,
		v.PacketTypeName,
		v.PacketTypeValue,
		emptyOrNil(v.PacketTime),
	}

	cols = append(cols, telemColumns(v)...)
	cols = append(cols, eventColumns(v)...)
	cols = append(cols, payloadOrNil(v))

	return cols
}

func offsetOrNil(v RecordView) any {
	if !v.HasOffset {
		return nil
	}
	return v.RecordOffset
}

func telemColumns(v RecordView) []any {
	if !v.HasTelem {
		return []any{nil, nil, nil, nil, nil, nil, nil, nil, nil}
	}

	return []any{
		v.TelemID,
		v.TelemIDHex,
		emptyOrNil(v.TelemTopologyName),
		emptyOrNil(v.TelemComponent),
		emptyOrNil(v.TelemName),
		v.TelemTime,
		v.TelemValueRawSize,
		hexOrEmpty(v.TelemValueRaw),
		resolvedValueOrNil(v),
	}
}

func resolvedValueOrNil(v RecordView) any {
	if !v.HasTelemValue {
		return nil
	}
	return v.TelemValue
}

func eventColumns(v RecordView) []any {
	if !v.HasEvent {
		return []any{nil, nil, nil, nil, nil, nil, nil, nil, nil}
	}

	return []any{
		v.EventID,
		v.EventIDHex,
		emptyOrNil(v.EventTopologyName),
		emptyOrNil(v.EventComponent),
		emptyOrNil(v.EventName),
		emptyOrNil(v.EventSeverity),
		v.EventTime,
		v.EventArgumentsRawSize,
		hexOrEmpty(v.EventArgumentsRaw),
	}
}

func payloadOrNil(v RecordView) any {
	if !v.HasPayload {
		return nil
	}
	return hexOrEmpty(v.Payload)
}

func emptyOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
