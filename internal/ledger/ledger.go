// Package ledger defines the contract this service holds against its
// key-addressed, append-only substrate. Services depend only on Store;
// which substrate backs it (memory, postgres, a real distributed ledger)
// is wiring.
//
// The substrate owns atomicity and conflict detection: a Put either commits
// wholesale or fails wholesale, and concurrent writers to the same key are
// serialized by the substrate's transaction ordering. This layer never
// retries a rejected write.
package ledger

import (
	"context"
	"time"
)

// KeyModification is one committed version of a key, as reported by the
// substrate's per-key history stream.
type KeyModification struct {
	TxID      string
	Timestamp time.Time
	IsDelete  bool
	Value     []byte
}

// HistoryIterator streams the versions of a key oldest-first. It is a scoped
// resource: callers must Close it after consumption. Next returns (nil, nil)
// once the stream is exhausted.
type HistoryIterator interface {
	Next() (*KeyModification, error)
	Close() error
}

// Store is the five-operation substrate surface.
//
// Get and GetPrivate return a nil or empty slice for an absent key rather
// than an error; absence is a domain concern, not a substrate failure.
// Substrate I/O failures propagate verbatim.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	History(ctx context.Context, key string) (HistoryIterator, error)
	GetPrivate(ctx context.Context, collection, key string) ([]byte, error)
	PutPrivate(ctx context.Context, collection, key string, value []byte) error
}

// PrivateStore is the restricted-visibility subset of Store. Partitioned uses
// it to route private collections to an independent backend.
type PrivateStore interface {
	GetPrivate(ctx context.Context, collection, key string) ([]byte, error)
	PutPrivate(ctx context.Context, collection, key string, value []byte) error
}

// Partitioned routes private-data operations to a dedicated store while the
// embedded Store serves the public ledger. Partitions are independent: a
// private entry may exist for a key the public ledger has never seen.
type Partitioned struct {
	Store
	Private PrivateStore
}

func (p Partitioned) GetPrivate(ctx context.Context, collection, key string) ([]byte, error) {
	return p.Private.GetPrivate(ctx, collection, key)
}

func (p Partitioned) PutPrivate(ctx context.Context, collection, key string, value []byte) error {
	return p.Private.PutPrivate(ctx, collection, key, value)
}
