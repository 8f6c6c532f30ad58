// Package rowid implements the row-id authority that the record engine
// leaves external: a per-lineage allocator handing out unique,
// monotonically increasing ids. The engine's Insert contract requires
// the id of every insert to be the table's next free position; one
// allocator paired with one table lineage satisfies it.
package rowid

import (
	"sync/atomic"

	"github.com/leapstack-labs/tabula/pkg/record"
)

// Allocator issues row ids starting at zero. Safe for concurrent use,
// though the engine itself assumes a single writer per table lineage.
type Allocator struct {
	next atomic.Uint64
}

// New returns an allocator whose first id is 0.
func New() *Allocator {
	return &Allocator{}
}

// Next returns the next id and advances the allocator.
func (a *Allocator) Next() record.RowID {
	return record.RowID(a.next.Add(1) - 1)
}

// Peek returns the id the next call to Next will return.
func (a *Allocator) Peek() record.RowID {
	return record.RowID(a.next.Load())
}
