package record

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
)

var prmDbSyncWord = []byte{0xA5}

// ParameterResolver looks up a parameter's value codec by its FwPrmId. It is
// satisfied by *dictionary.Dictionary.
type ParameterResolver interface {
	ParameterCodecByID(id uint32) (codec.Codec, bool)
}

// PrmDbRecord is one entry in a parameter-database dump: a sync byte, a
// size, an FwPrmId, and size-minus-id-width raw value bytes. It is
// decode-only; no encoder is provided, since nothing in this tool
// regenerates parameter database dumps, only reads them (DESIGN.md records
// this as an explicit decision, not an oversight).
type PrmDbRecord struct {
	Offset        uint64
	HasOffset     bool
	Size          uint32
	ParameterID   uint32
	ValueRaw      codec.HexBytes
	ResolvedValue codec.Value
}

// DecodePrmDbRecord scans for the A5 sync byte, then decodes one
// PrmDbRecord. dict may be nil; when non-nil, it resolves ParameterID into
// a typed ResolvedValue. Offset is captured before the sync-word scan, not
// after (unlike Stream.Decode, which scans first): this record's reported
// offset is where the scan started, not where the sync byte was found.
func DecodePrmDbRecord(r *bytestream.Reader, reg *codec.Registry, dict ParameterResolver, diag diagnostics.Sink) (*PrmDbRecord, error) {
	offset, hasOffset := r.Offset()

	if err := scanSyncWord(r, prmDbSyncWord); err != nil {
		return nil, err
	}

	sizeCodec, ok := reg.Lookup("U32")
	if !ok {
		return nil, fmt.Errorf("fpdt: record: U32 alias not registered")
	}
	sizeVal, err := sizeCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}
	size, _ := codec.AsInt64(sizeVal)

	idCodec, ok := reg.Lookup("FwPrmId")
	if !ok {
		return nil, fmt.Errorf("fpdt: record: FwPrmId alias not registered")
	}
	idVal, err := idCodec.Decode(r, codec.NoLength)
	if err != nil {
		return nil, err
	}
	id, _ := codec.AsInt64(idVal)

	valueLen := int(size) - fundamentalWidth(idCodec)
	if valueLen < 0 {
		return nil, fmt.Errorf("fpdt: record: PrmDbRecord size %d smaller than FwPrmId width", size)
	}

	valueRaw, err := r.ReadExact(valueLen)
	if err != nil {
		return nil, err
	}

	rec := &PrmDbRecord{
		Offset:      offset,
		HasOffset:   hasOffset,
		Size:        uint32(size),
		ParameterID: uint32(id),
		ValueRaw:    valueRaw,
	}

	if dict != nil {
		if valueCodec, found := dict.ParameterCodecByID(uint32(id)); found {
			if valueCodec != nil {
				sub := bytestream.NewSubStream(valueRaw)
				resolved, err := valueCodec.Decode(sub, codec.NoLength)
				if err != nil {
					diag.Warn("malformed_parameter_value", err.Error(), map[string]any{"id": uint32(id)})
				} else {
					rec.ResolvedValue = resolved
				}
			}
		} else {
			diag.Warn("unknown_identifier", fmt.Sprintf("unknown parameter id %d", uint32(id)), map[string]any{"id": uint32(id)})
		}
	}

	return rec, nil
}

// fundamentalWidth returns c's byte width when c is a *codec.Fundamental
// (true for every built-in configurable alias), defaulting to 4 otherwise.
func fundamentalWidth(c codec.Codec) int {
	if f, ok := c.(*codec.Fundamental); ok {
		return f.Width()
	}

	return 4
}
