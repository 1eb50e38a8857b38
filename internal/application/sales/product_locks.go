package sales

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// productLocks serializes sales that touch the same products. Locks are
// always taken in byte order of the product IDs so two overlapping sales
// cannot deadlock each other.
type productLocks struct {
	locks sync.Map // map[uuid.UUID]*sync.Mutex
}

func newProductLocks() *productLocks {
	return &productLocks{}
}

// LockAll locks every given product and returns the unlock function.
// Duplicate IDs are collapsed before locking.
func (p *productLocks) LockAll(productIDs []uuid.UUID) func() {
	unique := make(map[uuid.UUID]struct{}, len(productIDs))
	ids := make([]uuid.UUID, 0, len(productIDs))
	for _, id := range productIDs {
		if _, seen := unique[id]; seen {
			continue
		}
		unique[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		lock, _ := p.locks.LoadOrStore(id, &sync.Mutex{})
		mu := lock.(*sync.Mutex)
		mu.Lock()
		held = append(held, mu)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
