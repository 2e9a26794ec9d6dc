package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Memory is an in-process Store. It backs local mode and tests. Live
// subscriptions re-fire on every mutation of the subscribed
// collection, mirroring the push behavior of the managed backend.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]Record
	subs map[string][]*memorySub
}

type memorySub struct {
	owner      *Memory
	collection string
	field      string
	value      any
	onChange   func([]Record)
	cancelled  bool
}

func (s *memorySub) Cancel() {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	s.cancelled = true
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]map[string]Record),
		subs: make(map[string][]*memorySub),
	}
}

func (m *Memory) Get(_ context.Context, collection, id string) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.data[collection][id]
	if !ok {
		return nil, false, nil
	}
	return cloneRecord(rec), true, nil
}

func (m *Memory) QueryEqual(_ context.Context, collection, field string, value any) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.matchLocked(collection, field, value), nil
}

func (m *Memory) Subscribe(collection, field string, value any, onChange func([]Record)) SubscriptionHandle {
	m.mu.Lock()
	sub := &memorySub{
		owner:      m,
		collection: collection,
		field:      field,
		value:      value,
		onChange:   onChange,
	}
	m.subs[collection] = append(m.subs[collection], sub)
	initial := m.matchLocked(collection, field, value)
	m.mu.Unlock()

	onChange(initial)
	return sub
}

func (m *Memory) Push(_ context.Context, collection string, rec Record) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	rec = cloneRecord(rec)
	rec["id"] = id
	m.putLocked(collection, id, rec)
	m.mu.Unlock()

	m.notify(collection)
	return id, nil
}

func (m *Memory) Set(_ context.Context, collection, id string, rec Record) error {
	m.mu.Lock()
	m.putLocked(collection, id, cloneRecord(rec))
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

func (m *Memory) Increment(_ context.Context, collection, id, field string, delta int64) error {
	m.mu.Lock()
	rec, ok := m.data[collection][id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("increment %s/%s: no such record", collection, id)
	}
	rec[field] = cast.ToInt64(rec[field]) + delta
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	delete(m.data[collection], id)
	m.mu.Unlock()

	m.notify(collection)
	return nil
}

func (m *Memory) putLocked(collection, id string, rec Record) {
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]Record)
	}
	m.data[collection][id] = rec
}

func (m *Memory) matchLocked(collection, field string, value any) []Record {
	var out []Record
	for _, rec := range m.data[collection] {
		if cast.ToString(rec[field]) == cast.ToString(value) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out
}

// notify re-runs every live query on the mutated collection. Callbacks
// run outside the lock so a subscriber may call back into the store.
func (m *Memory) notify(collection string) {
	m.mu.RLock()
	type firing struct {
		fn   func([]Record)
		recs []Record
	}
	var firings []firing
	for _, sub := range m.subs[collection] {
		if sub.cancelled {
			continue
		}
		firings = append(firings, firing{
			fn:   sub.onChange,
			recs: m.matchLocked(collection, sub.field, sub.value),
		})
	}
	m.mu.RUnlock()

	for _, f := range firings {
		f.fn(f.recs)
	}
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
