package session

import "sync"

// MemoryStore holds a single session in memory. It satisfies the same
// request-bound shape as BoundStore and exists for tests.
type MemoryStore struct {
	mu   sync.Mutex
	sess Session
	ok   bool
}

func NewMemoryStore(sess ...Session) *MemoryStore {
	ms := new(MemoryStore)
	if len(sess) > 0 {
		ms.sess = sess[0]
		ms.ok = true
	}
	return ms
}

func (ms *MemoryStore) Read() (Session, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.sess, ms.ok
}

func (ms *MemoryStore) Save(s Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sess = s
	ms.ok = true
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sess = Session{}
	ms.ok = false
	return nil
}
