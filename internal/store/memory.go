package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lfsantos/shortener/internal/metrics"
	"github.com/lfsantos/shortener/internal/shortener"
)

// MemoryURLStore is an in-memory implementation of shortener.Repository.
type MemoryURLStore struct {
	mu      sync.RWMutex
	records map[string]*shortener.ShortURLRecord
}

// NewMemoryURLStore creates a new in-memory URL repository.
func NewMemoryURLStore() *MemoryURLStore {
	return &MemoryURLStore{
		records: make(map[string]*shortener.ShortURLRecord),
	}
}

func (m *MemoryURLStore) Insert(_ context.Context, record *shortener.ShortURLRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ShortID]; exists {
		return shortener.ErrDuplicateShortID
	}

	clone := *record
	m.records[record.ShortID] = &clone

	return nil
}

func (m *MemoryURLStore) FindByShortID(_ context.Context, shortID string) (*shortener.ShortURLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[shortID]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	clone := *record

	return &clone, nil
}

func (m *MemoryURLStore) List(_ context.Context, params shortener.ListParams) ([]*shortener.ShortURLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*shortener.ShortURLRecord, 0, len(m.records))

	for _, record := range m.records {
		if params.ActiveOnly && !record.IsActive {
			continue
		}

		clone := *record
		records = append(records, &clone)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if params.Skip > 0 {
		if params.Skip >= len(records) {
			return nil, nil
		}

		records = records[params.Skip:]
	}

	if params.Limit > 0 && params.Limit < len(records) {
		records = records[:params.Limit]
	}

	return records, nil
}

// SetActive flips a record's activation state. Exists to simulate what the
// external health checker does in production; tests use it to exercise the
// inactive paths.
func (m *MemoryURLStore) SetActive(shortID string, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record, ok := m.records[shortID]; ok {
		record.IsActive = active
	}
}

// MemoryMetricStore is an in-memory implementation of metrics.Store.
type MemoryMetricStore struct {
	mu        sync.RWMutex
	metrics   []*metrics.AccessMetric
	insertErr error
}

// NewMemoryMetricStore creates a new in-memory metric store.
func NewMemoryMetricStore() *MemoryMetricStore {
	return &MemoryMetricStore{}
}

func (m *MemoryMetricStore) Insert(_ context.Context, metric *metrics.AccessMetric) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return m.insertErr
	}

	clone := *metric
	m.metrics = append(m.metrics, &clone)

	return nil
}

func (m *MemoryMetricStore) CountSince(_ context.Context, shortID string, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64

	for _, metric := range m.metrics {
		if metric.ShortID == shortID && !metric.AccessedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

// Len returns the number of stored metrics.
func (m *MemoryMetricStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.metrics)
}

// FailInserts makes subsequent inserts return err; pass nil to recover.
func (m *MemoryMetricStore) FailInserts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertErr = err
}

// Compile-time checks.
var (
	_ shortener.Repository = (*MemoryURLStore)(nil)
	_ metrics.Store        = (*MemoryMetricStore)(nil)
)
