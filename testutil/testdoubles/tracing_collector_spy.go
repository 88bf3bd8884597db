package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/sevenguis-eventsourced/eventstore"
)

// SpanContextSpy is the eventstore.SpanContext handed out by TracingCollectorSpy.
type SpanContextSpy struct {
	mu         sync.Mutex
	status     string
	attributes map[string]string
}

func (c *SpanContextSpy) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *SpanContextSpy) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attributes == nil {
		c.attributes = make(map[string]string)
	}

	c.attributes[key] = value
}

// SpanRecord is one started span. Status and EndAttributes are set once it is finished.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
}

// TracingCollectorSpy is an eventstore.TracingCollector capturing spans for testing.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpanRecord
	index map[*SpanContextSpy]*SpanRecord
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{index: make(map[*SpanContextSpy]*SpanRecord)}
}

func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpanContextSpy{}
	record := &SpanRecord{Name: name, StartAttributes: maps.Clone(attrs)}

	s.spans = append(s.spans, record)
	s.index[spanCtx] = record

	return ctx, spanCtx
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	spy, ok := spanCtx.(*SpanContextSpy)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.index[spy]
	if !ok {
		return
	}

	record.Status = status
	record.EndAttributes = maps.Clone(attrs)
	record.Finished = true
}

// Spans returns copies of the captured spans named name.
func (s *TracingCollectorSpy) Spans(name string) []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var spans []SpanRecord
	for _, span := range s.spans {
		if span.Name == name {
			spans = append(spans, *span)
		}
	}

	return spans
}
