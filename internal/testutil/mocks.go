package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cast"

	"mindbloom/internal/providers"
	"mindbloom/internal/store"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// the calls the core is expected to make.
type MockMetrics struct {
	mu               sync.Mutex
	Requests         int
	CacheHits        int
	CacheMisses      int
	DegradedFetches  map[string]int
	Aggregations     int
	EnrichmentSizes  []int
	Persistences     int
	LastHistorySize  int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{DegradedFetches: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncDegradedFetches(domain string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DegradedFetches == nil {
		m.DegradedFetches = make(map[string]int)
	}
	m.DegradedFetches[domain]++
}
func (m *MockMetrics) ObserveAggregationDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Aggregations++
}
func (m *MockMetrics) ObserveEnrichmentBatchSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichmentSizes = append(m.EnrichmentSizes, size)
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}
func (m *MockMetrics) SetHistorySize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastHistorySize = count
}

func (m *MockMetrics) Degraded(domain string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DegradedFetches[domain]
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// FakeStore implements store.Store with scriptable failures. Queries
// and gets can be failed per collection or per record, and a get can
// be blocked on a channel to exercise cancellation paths without real
// timeouts.
type FakeStore struct {
	mu       sync.Mutex
	Data     map[string]map[string]store.Record
	QueryErr map[string]error // keyed by collection
	GetErr   map[string]error // keyed by "collection/id"
	SetErr   map[string]error // keyed by collection
	BlockGet map[string]chan struct{}

	GetCalls   int
	QueryCalls int
	Subs       []*FakeSub
}

type FakeSub struct {
	Collection string
	Field      string
	Value      any
	OnChange   func([]store.Record)
	Cancelled  bool
}

func (s *FakeSub) Cancel() { s.Cancelled = true }

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Data:     make(map[string]map[string]store.Record),
		QueryErr: make(map[string]error),
		GetErr:   make(map[string]error),
		SetErr:   make(map[string]error),
		BlockGet: make(map[string]chan struct{}),
	}
}

// Seed encodes a typed record into a collection under the given id.
func (f *FakeStore) Seed(collection, id string, v any) {
	rec, err := store.Encode(v)
	if err != nil {
		panic(fmt.Sprintf("seed %s/%s: %s", collection, id, err))
	}
	rec["id"] = id
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Data[collection] == nil {
		f.Data[collection] = make(map[string]store.Record)
	}
	f.Data[collection][id] = rec
}

func (f *FakeStore) Get(ctx context.Context, collection, id string) (store.Record, bool, error) {
	f.mu.Lock()
	f.GetCalls++
	block := f.BlockGet[collection+"/"+id]
	err := f.GetErr[collection+"/"+id]
	rec, ok := f.Data[collection][id]
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return rec, true, nil
}

func (f *FakeStore) QueryEqual(_ context.Context, collection, field string, value any) ([]store.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.QueryCalls++
	if err := f.QueryErr[collection]; err != nil {
		return nil, err
	}
	var out []store.Record
	for _, rec := range f.Data[collection] {
		if cast.ToString(rec[field]) == cast.ToString(value) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *FakeStore) Subscribe(collection, field string, value any, onChange func([]store.Record)) store.SubscriptionHandle {
	sub := &FakeSub{Collection: collection, Field: field, Value: value, OnChange: onChange}
	f.mu.Lock()
	f.Subs = append(f.Subs, sub)
	f.mu.Unlock()
	return sub
}

// Fire manually re-runs every live query on a collection, the way a
// remote mutation would.
func (f *FakeStore) Fire(collection string) {
	f.mu.Lock()
	subs := make([]*FakeSub, 0, len(f.Subs))
	for _, sub := range f.Subs {
		if sub.Collection == collection && !sub.Cancelled {
			subs = append(subs, sub)
		}
	}
	f.mu.Unlock()

	for _, sub := range subs {
		recs, _ := f.QueryEqual(context.Background(), sub.Collection, sub.Field, sub.Value)
		sub.OnChange(recs)
	}
}

func (f *FakeStore) Push(_ context.Context, collection string, rec store.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SetErr[collection]; err != nil {
		return "", err
	}
	id := fmt.Sprintf("%s-%d", collection, len(f.Data[collection])+1)
	if f.Data[collection] == nil {
		f.Data[collection] = make(map[string]store.Record)
	}
	rec["id"] = id
	f.Data[collection][id] = rec
	return id, nil
}

func (f *FakeStore) Set(_ context.Context, collection, id string, rec store.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SetErr[collection]; err != nil {
		return err
	}
	if f.Data[collection] == nil {
		f.Data[collection] = make(map[string]store.Record)
	}
	f.Data[collection][id] = rec
	return nil
}

func (f *FakeStore) Increment(_ context.Context, collection, id, field string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SetErr[collection]; err != nil {
		return err
	}
	rec, ok := f.Data[collection][id]
	if !ok {
		return fmt.Errorf("increment %s/%s: no such record", collection, id)
	}
	rec[field] = cast.ToInt64(rec[field]) + delta
	return nil
}

func (f *FakeStore) Delete(_ context.Context, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.Data[collection], id)
	return nil
}
