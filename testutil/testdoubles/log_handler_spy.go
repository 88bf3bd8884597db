package testdoubles

import (
	"context"
	"log/slog"
	"sync"
)

// LogHandlerSpy is a slog.Handler that captures log records for testing.
type LogHandlerSpy struct {
	mu      sync.Mutex
	records []slog.Record
}

func NewLogHandlerSpy() *LogHandlerSpy {
	return &LogHandlerSpy{}
}

// Handle implements slog.Handler.
func (s *LogHandlerSpy) Handle(_ context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record.Clone())

	return nil
}

// Enabled implements slog.Handler, every level is captured.
func (s *LogHandlerSpy) Enabled(context.Context, slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler, handler attributes are not captured.
func (s *LogHandlerSpy) WithAttrs([]slog.Attr) slog.Handler {
	return s
}

// WithGroup implements slog.Handler, groups are not captured.
func (s *LogHandlerSpy) WithGroup(string) slog.Handler {
	return s
}

// Records returns a copy of the captured records.
func (s *LogHandlerSpy) Records() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]slog.Record, len(s.records))
	copy(records, s.records)

	return records
}

// HasLog starts a fluent check for a record with level and message.
func (s *LogHandlerSpy) HasLog(level slog.Level, message string) *LogRecordMatcher {
	for _, record := range s.Records() {
		if record.Level == level && record.Message == message {
			return &LogRecordMatcher{record: record, found: true}
		}
	}

	return &LogRecordMatcher{}
}

// LogRecordMatcher checks the attributes of the first matching record.
type LogRecordMatcher struct {
	record slog.Record
	found  bool
}

// WithAttr requires an attribute key, regardless of its value.
func (m *LogRecordMatcher) WithAttr(key string) *LogRecordMatcher {
	if !m.found {
		return m
	}

	m.found = m.attr(key) != nil

	return m
}

// WithAttrValue requires an attribute whose value renders as value.
func (m *LogRecordMatcher) WithAttrValue(key, value string) *LogRecordMatcher {
	if !m.found {
		return m
	}

	attr := m.attr(key)
	m.found = attr != nil && attr.Value.String() == value

	return m
}

// Assert reports whether all checks of the chain passed.
func (m *LogRecordMatcher) Assert() bool {
	return m.found
}

func (m *LogRecordMatcher) attr(key string) *slog.Attr {
	var found *slog.Attr

	m.record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			found = &attr
			return false
		}

		return true
	})

	return found
}
