package record

import (
	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/codec"
	"github.com/fprime-community/fpdt/diagnostics"
	"github.com/fprime-community/fpdt/packet"
)

var fprimeGdsSyncWord = []byte{0xDE, 0xAD, 0xBE, 0xEF}

// Stream is the FprimeGdsStream framer: it scans a byte stream for the
// literal sync word before decoding an FprimeGdsRecord, so it can resync
// after arbitrary leading bytes (e.g. an uplink/downlink transport prefix).
type Stream struct {
	syncWord []byte
	record   *Framer
}

// NewFprimeGdsStream returns a Stream wrapping the u32-size-prefixed
// FprimeGdsRecord framer.
func NewFprimeGdsStream(reg *codec.Registry) (*Stream, error) {
	rec, err := NewFprimeGdsRecord(reg)
	if err != nil {
		return nil, err
	}

	return &Stream{syncWord: fprimeGdsSyncWord, record: rec}, nil
}

// Decode scans for the sync word, then decodes the record that follows it.
func (s *Stream) Decode(r *bytestream.Reader, reg *codec.Registry, dict packet.IdentifierResolver, diag diagnostics.Sink) (*Record, error) {
	if err := scanSyncWord(r, s.syncWord); err != nil {
		return nil, err
	}

	return s.record.Decode(r, reg, dict, diag)
}

// Encode writes the sync word followed by the encoded record.
func (s *Stream) Encode(rec *Record, reg *codec.Registry, w *bytestream.Writer) error {
	if err := w.Write(s.syncWord); err != nil {
		return err
	}

	return s.record.Encode(rec, reg, w)
}

// scanSyncWord consumes bytes from r until sync has been matched in full,
// using Knuth-Morris-Pratt-style rollback for a literal sync word with no
// repeated prefix/suffix structure: on a partial match that breaks at
// position k>0, restart the match at position 0 without consuming the byte
// that broke it, so overlapping occurrences of the sync word are still
// found (e.g. `DE AD DE AD BE EF` matches starting at the second `DE AD`).
func scanSyncWord(r *bytestream.Reader, sync []byte) error {
	idx := 0
	readNext := true
	var b byte

	for idx < len(sync) {
		if readNext {
			next, err := r.ReadByte()
			if err != nil {
				return err
			}
			b = next
		}

		switch {
		case b == sync[idx]:
			idx++
			readNext = true
		case idx > 0:
			idx = 0
			readNext = false
		default:
			readNext = true
		}
	}

	return nil
}
