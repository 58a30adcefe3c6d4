// Package index defines the vector-index contract for VC records.
package index

import (
	"context"

	"github.com/vcatlas/vcatlas/internal/vc"
)

// Match is one nearest-neighbor result, closest first per the index's
// own distance metric.
type Match struct {
	VCName   string
	Distance float64
}

// Index is the external collection of stored VC records. The index owns
// all persisted state; this service only appends and queries. Failures
// are returned as plain errors and surface as server errors upstream.
type Index interface {
	// EnsureSchema creates the collection if it does not exist yet.
	EnsureSchema(ctx context.Context) error

	// Names returns the vc_name of every stored record. The caller
	// scans this list for dedup; there is no name lookup on the index.
	Names(ctx context.Context) ([]string, error)

	// Insert stores a record under the given deterministic id. Records
	// are never updated or deleted through this interface.
	Insert(ctx context.Context, id string, record vc.Record) error

	// Similar returns up to limit records nearest to the query text.
	Similar(ctx context.Context, query string, limit int) ([]Match, error)
}
