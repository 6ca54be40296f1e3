// Package diagnostics provides the warning sink collaborator the decoders
// use to report non-fatal conditions (unknown identifiers, binding
// failures, unknown packet types) without coupling the core packages to a
// particular logging backend.
//
// A Sink is injected wherever a warning might be emitted. The default
// implementation adapts logrus, following the same package-level
// FieldLogger-with-setter pattern the pack's CLI tooling uses for its own
// logging; CollectingSink backs tests that need to assert on warning
// content.
package diagnostics

import (
	"github.com/sirupsen/logrus"
)

// Sink receives one structured warning per non-fatal condition. Fields may
// be nil. Implementations must never block or panic.
type Sink interface {
	Warn(code, message string, fields map[string]any)
}

// logrusSink adapts a logrus.FieldLogger to Sink.
type logrusSink struct {
	logger logrus.FieldLogger
}

// NewLogrusSink wraps logger as a Sink. A nil logger falls back to
// logrus's standard logger.
func NewLogrusSink(logger logrus.FieldLogger) Sink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &logrusSink{logger: logger}
}

func (s *logrusSink) Warn(code, message string, fields map[string]any) {
	entry := s.logger.WithField("code", code)
	for k, v := range fields {
		entry = entry.WithField(k, v)
	}

	entry.Warn(message)
}

// defaultSink is the package-level sink used whenever a caller does not
// supply one explicitly, mirroring the pack's package-level logger +
// SetLogger pattern.
var defaultSink Sink = NewLogrusSink(logrus.StandardLogger())

// Default returns the package-level default Sink.
func Default() Sink {
	return defaultSink
}

// SetDefault replaces the package-level default Sink.
func SetDefault(sink Sink) {
	if sink == nil {
		return
	}

	defaultSink = sink
}

// Entry is one recorded warning, used by CollectingSink.
type Entry struct {
	Code    string
	Message string
	Fields  map[string]any
}

// CollectingSink accumulates warnings in memory instead of emitting them,
// for use in tests that assert on diagnostic behavior.
type CollectingSink struct {
	Entries []Entry
}

// NewCollectingSink creates an empty CollectingSink.
func NewCollectingSink() *CollectingSink {
	return &CollectingSink{}
}

func (s *CollectingSink) Warn(code, message string, fields map[string]any) {
	s.Entries = append(s.Entries, Entry{Code: code, Message: message, Fields: fields})
}
