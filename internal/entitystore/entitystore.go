// Package entitystore defines the backing collaborator contract: a
// kind-tagged property-bag store. Drivers live under entitystore/<driver>/
// (memory, sqlite, postgres).
package entitystore

import "context"

// Record is one stored entity: its storage id plus the flat property bag.
type Record struct {
	ID    string
	Props Properties
}

// Store is the only boundary the persistence layer talks to.
//
// Put upserts; Delete is a no-op when the id is absent. QueryAll returns every
// record of a kind, sorted ascending by the named integer property when
// orderBy is non-empty. Records missing the order property, and records tied
// on it, keep the driver's native enumeration order.
type Store interface {
	Put(ctx context.Context, kind, id string, props Properties) error
	Delete(ctx context.Context, kind, id string) error
	QueryAll(ctx context.Context, kind, orderBy string) ([]Record, error)
}

// Pinger is implemented by drivers that can report backing-store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
