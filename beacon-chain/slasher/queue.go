package slasher

import (
	"sync"

	ethpb "github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/slashing-oracle/proto/prysm/v1alpha1/attestation"
)

// Struct for handling a thread-safe list of indexed attestations.
// Attestations already held by the queue are not added twice.
type attestationsQueue struct {
	lock  sync.RWMutex
	ids   map[[32]byte]bool
	items []*ethpb.IndexedAttestation
}

func newAttestationsQueue() *attestationsQueue {
	return &attestationsQueue{
		ids:   make(map[[32]byte]bool),
		items: make([]*ethpb.IndexedAttestation, 0),
	}
}

// push reports whether the attestation was added.
func (q *attestationsQueue) push(att *ethpb.IndexedAttestation) bool {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.pushLocked(att)
}

func (q *attestationsQueue) pushLocked(att *ethpb.IndexedAttestation) bool {
	id, err := attestation.NewId(att, attestation.Full)
	if err != nil {
		// Malformed attestations are kept so integrity checks can drop and count them.
		q.items = append(q.items, att)
		return true
	}
	if q.ids[id.Root()] {
		return false
	}
	q.ids[id.Root()] = true
	q.items = append(q.items, att)
	return true
}

func (q *attestationsQueue) dequeue() []*ethpb.IndexedAttestation {
	q.lock.Lock()
	defer q.lock.Unlock()
	items := q.items
	q.items = make([]*ethpb.IndexedAttestation, 0)
	q.ids = make(map[[32]byte]bool)
	return items
}

func (q *attestationsQueue) extend(atts []*ethpb.IndexedAttestation) {
	q.lock.Lock()
	defer q.lock.Unlock()
	for _, att := range atts {
		q.pushLocked(att)
	}
}

func (q *attestationsQueue) size() int {
	q.lock.RLock()
	defer q.lock.RUnlock()
	return len(q.items)
}
