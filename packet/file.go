package packet

import (
	"fmt"

	"github.com/fprime-community/fpdt/bytestream"
	"github.com/fprime-community/fpdt/fwerrs"
	"github.com/fprime-community/fpdt/fwtype"
)

// FilePayload is the FILE packet variant. Exactly one of Start/Data/End is
// non-nil, matching SubType; CANCEL carries no further payload.
type FilePayload struct {
	SubType       fwtype.FileSubType
	SequenceIndex uint32
	Start         *FileStartPayload
	Data          *FileDataPayload
	End           *FileEndPayload
}

// FileStartPayload is the FILE/START sub-packet.
type FileStartPayload struct {
	FileSize        uint32
	SourcePath      string
	DestinationPath string
}

// FileDataPayload is the FILE/DATA sub-packet.
type FileDataPayload struct {
	ByteOffset uint32
	Data       []byte
}

// FileEndPayload is the FILE/END sub-packet.
type FileEndPayload struct {
	Checksum uint32
}

func decodeFile(r *bytestream.Reader) (*Packet, error) {
	subTypeByte, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	subType := fwtype.FileSubType(subTypeByte)

	seqRaw, err := r.ReadExact(4)
	if err != nil {
		return nil, err
	}
	seq := be32(seqRaw)

	payload := &FilePayload{SubType: subType, SequenceIndex: seq}

	switch subType {
	case fwtype.FileStart:
		start, err := decodeFileStart(r)
		if err != nil {
			return nil, err
		}
		payload.Start = start
	case fwtype.FileData:
		data, err := decodeFileData(r)
		if err != nil {
			return nil, err
		}
		payload.Data = data
	case fwtype.FileEnd:
		end, err := decodeFileEnd(r)
		if err != nil {
			return nil, err
		}
		payload.End = end
	case fwtype.FileCancel:
		// no further payload
	default:
		return nil, fwerrs.MalformedPacketf("unknown FILE sub-type %d", subTypeByte)
	}

	return &Packet{Type: fwtype.PacketFile, File: payload}, nil
}

func decodeFileStart(r *bytestream.Reader) (*FileStartPayload, error) {
	sizeRaw, err := r.ReadExact(4)
	if err != nil {
		return nil, err
	}

	srcLen, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	src, err := r.ReadExact(int(srcLen))
	if err != nil {
		return nil, err
	}

	dstLen, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	dst, err := r.ReadExact(int(dstLen))
	if err != nil {
		return nil, err
	}

	return &FileStartPayload{
		FileSize:        be32(sizeRaw),
		SourcePath:      string(src),
		DestinationPath: string(dst),
	}, nil
}

func decodeFileData(r *bytestream.Reader) (*FileDataPayload, error) {
	offsetRaw, err := r.ReadExact(4)
	if err != nil {
		return nil, err
	}

	sizeRaw, err := r.ReadExact(2)
	if err != nil {
		return nil, err
	}
	size := be16(sizeRaw)

	data, err := r.ReadExact(int(size))
	if err != nil {
		return nil, err
	}

	return &FileDataPayload{ByteOffset: be32(offsetRaw), Data: data}, nil
}

func decodeFileEnd(r *bytestream.Reader) (*FileEndPayload, error) {
	raw, err := r.ReadExact(4)
	if err != nil {
		return nil, err
	}

	return &FileEndPayload{Checksum: be32(raw)}, nil
}

// Encode writes the FILE packet back to the wire, mirroring Decode exactly.
func (p *FilePayload) Encode(w *bytestream.Writer) error {
	if err := w.WriteByte(byte(p.SubType)); err != nil {
		return err
	}
	if err := w.Write(putBE32(p.SequenceIndex)); err != nil {
		return err
	}

	switch p.SubType {
	case fwtype.FileStart:
		if p.Start == nil {
			return fmt.Errorf("fpdt: packet: FILE/START payload missing Start field")
		}
		if err := w.Write(putBE32(p.Start.FileSize)); err != nil {
			return err
		}
		if err := w.WriteByte(byte(len(p.Start.SourcePath))); err != nil {
			return err
		}
		if err := w.Write([]byte(p.Start.SourcePath)); err != nil {
			return err
		}
		if err := w.WriteByte(byte(len(p.Start.DestinationPath))); err != nil {
			return err
		}
		return w.Write([]byte(p.Start.DestinationPath))
	case fwtype.FileData:
		if p.Data == nil {
			return fmt.Errorf("fpdt: packet: FILE/DATA payload missing Data field")
		}
		if err := w.Write(putBE32(p.Data.ByteOffset)); err != nil {
			return err
		}
		if err := w.Write(putBE16(uint16(len(p.Data.Data)))); err != nil {
			return err
		}
		return w.Write(p.Data.Data)
	case fwtype.FileEnd:
		if p.End == nil {
			return fmt.Errorf("fpdt: packet: FILE/END payload missing End field")
		}
		return w.Write(putBE32(p.End.Checksum))
	case fwtype.FileCancel:
		return nil
	default:
		return fwerrs.MalformedPacketf("unknown FILE sub-type %d", byte(p.SubType))
	}
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func be16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func putBE32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func putBE16(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}
