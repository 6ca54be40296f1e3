// Package fwtype holds the small wire-level enumerations shared by the
// packet, record, and dictionary packages: the top-level packet tag, the
// FILE packet sub-type, and the event severity scale.
package fwtype

import "fmt"

// PacketDescriptor identifies the category of a Packet's payload. It wraps a
// plain uint32 rather than a closed Go enum so that an unrecognized tag can
// be preserved exactly (see spec open question: no placeholder name is
// fabricated for unknown values).
type PacketDescriptor uint32

const (
	PacketCommand        PacketDescriptor = 0
	PacketTelem          PacketDescriptor = 1
	PacketLog            PacketDescriptor = 2
	PacketFile           PacketDescriptor = 3
	PacketPacketizedTlm  PacketDescriptor = 4
	PacketIdle           PacketDescriptor = 5
)

// Known reports whether d is one of the named packet categories above.
func (d PacketDescriptor) Known() bool {
	switch d {
	case PacketCommand, PacketTelem, PacketLog, PacketFile, PacketPacketizedTlm, PacketIdle:
		return true
	default:
		return false
	}
}

// String renders the packet category name, or the raw numeric value for an
// unknown tag.
func (d PacketDescriptor) String() string {
	switch d {
	case PacketCommand:
		return "COMMAND"
	case PacketTelem:
		return "TELEM"
	case PacketLog:
		return "LOG"
	case PacketFile:
		return "FILE"
	case PacketPacketizedTlm:
		return "PACKETIZED_TLM"
	case PacketIdle:
		return "IDLE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint32(d))
	}
}

// FileSubType identifies the sub-packet carried by a FILE packet.
type FileSubType uint8

const (
	FileStart  FileSubType = 0
	FileData   FileSubType = 1
	FileEnd    FileSubType = 2
	FileCancel FileSubType = 3
	// FileNone models an absent/empty file sub-type for callers that need to
	// represent "no FILE sub-packet" distinctly from any wire value.
	FileNone FileSubType = 0xFF
)

func (t FileSubType) String() string {
	switch t {
	case FileStart:
		return "START"
	case FileData:
		return "DATA"
	case FileEnd:
		return "END"
	case FileCancel:
		return "CANCEL"
	case FileNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// EventSeverity is the severity scale carried by dictionary event
// definitions, supplemented from original_source/fpdt.py since spec.md is
// silent on its exact members.
type EventSeverity int

const (
	SeverityFatal      EventSeverity = 1
	SeverityWarningHi  EventSeverity = 2
	SeverityWarningLo  EventSeverity = 3
	SeverityCommand    EventSeverity = 4
	SeverityActivityHi EventSeverity = 5
	SeverityActivityLo EventSeverity = 6
	SeverityDiagnostic EventSeverity = 7
)

// ParseEventSeverity maps a dictionary severity attribute string to its
// EventSeverity value. ok is false for an unrecognized string.
func ParseEventSeverity(s string) (EventSeverity, bool) {
	switch s {
	case "FATAL":
		return SeverityFatal, true
	case "WARNING_HI":
		return SeverityWarningHi, true
	case "WARNING_LO":
		return SeverityWarningLo, true
	case "COMMAND":
		return SeverityCommand, true
	case "ACTIVITY_HI":
		return SeverityActivityHi, true
	case "ACTIVITY_LO":
		return SeverityActivityLo, true
	case "DIAGNOSTIC":
		return SeverityDiagnostic, true
	default:
		return 0, false
	}
}

func (s EventSeverity) String() string {
	switch s {
	case SeverityFatal:
		return "FATAL"
	case SeverityWarningHi:
		return "WARNING_HI"
	case SeverityWarningLo:
		return "WARNING_LO"
	case SeverityCommand:
		return "COMMAND"
	case SeverityActivityHi:
		return "ACTIVITY_HI"
	case SeverityActivityLo:
		return "ACTIVITY_LO"
	case SeverityDiagnostic:
		return "DIAGNOSTIC"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}
