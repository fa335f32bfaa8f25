package ingest

import "sync"

// per-document lock registry. ingestion and deletion take the write side;
// queries take the read side, so operations on different documents never
// contend.
type documentLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newDocumentLocks() *documentLocks {
	return &documentLocks{locks: make(map[string]*sync.RWMutex)}
}

func (l *documentLocks) get(documentID string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[documentID]
	if !ok {
		lock = &sync.RWMutex{}
		l.locks[documentID] = lock
	}

	return lock
}
