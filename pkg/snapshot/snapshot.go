// Package snapshot records dataset loads for auditability.
//
// Every time the server or CLI loads a dataset, a snapshot captures what was
// loaded: the content hash, row count, source, and the upstream freshness
// stamp. Snapshots answer "what data was this chart drawn from" long after
// the upstream CSV has moved on. [MemoryStore] backs tests and single runs;
// [MongoStore] keeps a durable history.
package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Snapshot describes one dataset load.
type Snapshot struct {
	ID string `json:"id" bson:"_id"`

	// Source is the URL or file path the table came from.
	Source string `json:"source" bson:"source"`

	// TableHash is the SHA-256 of the raw dataset bytes.
	TableHash string `json:"table_hash" bson:"table_hash"`

	Rows int `json:"rows" bson:"rows"`

	// LastUpdated is the upstream freshness stamp, verbatim.
	LastUpdated string `json:"last_updated,omitempty" bson:"last_updated,omitempty"`

	LoadedAt time.Time `json:"loaded_at" bson:"loaded_at"`
}

// Store is the interface for snapshot persistence backends.
type Store interface {
	// Record persists a snapshot.
	Record(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recently loaded snapshot, or nil, nil when
	// none have been recorded.
	Latest(ctx context.Context) (*Snapshot, error)

	// List returns up to limit snapshots, newest first.
	List(ctx context.Context, limit int) ([]*Snapshot, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// New builds a snapshot for a dataset loaded now.
func New(source, tableHash string, rows int, lastUpdated string) *Snapshot {
	return &Snapshot{
		ID:          uuid.NewString(),
		Source:      source,
		TableHash:   tableHash,
		Rows:        rows,
		LastUpdated: lastUpdated,
		LoadedAt:    time.Now(),
	}
}
