package store

import (
	"context"

	json "github.com/goccy/go-json"
)

// Record is one document as held by the remote store. Typed records
// round-trip through Decode/Encode.
type Record map[string]any

// SubscriptionHandle cancels a live query.
type SubscriptionHandle interface {
	Cancel()
}

// Store is the asynchronous document store the whole service is built
// against. Implementations return transient errors as errors; absence
// is not an error (Get reports it via the bool, queries return an
// empty slice).
//
// The process holds a single Store instance, injected into every
// reader and service constructor so tests can substitute a fake.
type Store interface {
	Get(ctx context.Context, collection, id string) (Record, bool, error)
	QueryEqual(ctx context.Context, collection, field string, value any) ([]Record, error)
	Subscribe(collection, field string, value any, onChange func([]Record)) SubscriptionHandle
	Push(ctx context.Context, collection string, rec Record) (string, error)
	Set(ctx context.Context, collection, id string, rec Record) error
	Increment(ctx context.Context, collection, id, field string, delta int64) error
	Delete(ctx context.Context, collection, id string) error
}

// Encode converts a typed record into a store Record.
func Encode(v any) (Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decode fills a typed record from a store Record.
func Decode(rec Record, out any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DecodeAll fills a typed slice from query results.
func DecodeAll(recs []Record, out any) error {
	raw, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
