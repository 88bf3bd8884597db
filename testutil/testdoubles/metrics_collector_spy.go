package testdoubles

import (
	"maps"
	"sync"
	"time"
)

// MetricsCollectorSpy is an eventstore.MetricsCollector capturing every call for testing.
type MetricsCollectorSpy struct {
	mu              sync.Mutex
	durationRecords []DurationRecord
	counterRecords  []CounterRecord
	valueRecords    []ValueRecord
}

type DurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

type CounterRecord struct {
	Metric string
	Labels map[string]string
}

type ValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = append(s.durationRecords, DurationRecord{Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterRecords = append(s.counterRecords, CounterRecord{Metric: metric, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.valueRecords = append(s.valueRecords, ValueRecord{Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

// DurationRecords returns the captured durations of metric.
func (s *MetricsCollectorSpy) DurationRecords(metric string) []DurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []DurationRecord
	for _, record := range s.durationRecords {
		if record.Metric == metric {
			records = append(records, record)
		}
	}

	return records
}

// CounterRecords returns the captured increments of metric.
func (s *MetricsCollectorSpy) CounterRecords(metric string) []CounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []CounterRecord
	for _, record := range s.counterRecords {
		if record.Metric == metric {
			records = append(records, record)
		}
	}

	return records
}

// ValueRecords returns the captured values of metric.
func (s *MetricsCollectorSpy) ValueRecords(metric string) []ValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []ValueRecord
	for _, record := range s.valueRecords {
		if record.Metric == metric {
			records = append(records, record)
		}
	}

	return records
}
