// Package fwerrs defines the sentinel error values shared across the codec,
// packet, record, and dictionary packages.
package fwerrs

import (
	"errors"
	"fmt"
)

var (
	// ErrEndOfStream is returned whenever a read requests more bytes than the
	// underlying source can currently provide, including a clean end of input.
	ErrEndOfStream = errors.New("fpdt: end of stream")

	// ErrMalformedPacket is returned when a tagged sub-value (e.g. a FILE
	// sub-type) carries an invalid discriminator.
	ErrMalformedPacket = errors.New("fpdt: malformed packet")

	// ErrUnknownIdentifier classifies a decoded opcode/channel/event/
	// parameter ID with no match in the bound dictionary. The decoders
	// report that condition as a diagnostics.Sink warning and do not return
	// this error.
	ErrUnknownIdentifier = errors.New("fpdt: unknown identifier")

	// ErrUnknownPacketType classifies a top-level PacketDescriptor tag that
	// does not match any known packet category. packet.Decode reports that
	// condition as a warning and does not return this error.
	ErrUnknownPacketType = errors.New("fpdt: unknown packet type")

	// ErrBindingFailure classifies a type name the dictionary binder cannot
	// resolve. Bind reports that condition as a warning and does not return
	// this error.
	ErrBindingFailure = errors.New("fpdt: dictionary binding failure")

	// ErrConfigurationError is returned for invalid CLI/configuration input.
	ErrConfigurationError = errors.New("fpdt: configuration error")
)

// MalformedPacketf wraps ErrMalformedPacket with a formatted detail message.
func MalformedPacketf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformedPacket}, args...)...)
}

// UnknownIdentifierf wraps ErrUnknownIdentifier with a formatted detail message.
func UnknownIdentifierf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUnknownIdentifier}, args...)...)
}

// BindingFailuref wraps ErrBindingFailure with a formatted detail message.
func BindingFailuref(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBindingFailure}, args...)...)
}

// ConfigurationErrorf wraps ErrConfigurationError with a formatted detail message.
func ConfigurationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConfigurationError}, args...)...)
}

// IsEndOfStream reports whether err is (or wraps) ErrEndOfStream.
func IsEndOfStream(err error) bool {
	return errors.Is(err, ErrEndOfStream)
}
