package service

import "sync"

// billLocks serializes read-modify-write cycles per bill. An entry lives only
// while some caller holds or waits for its lock.
type billLocks struct {
	mu    sync.Mutex
	locks map[string]*billLock
}

type billLock struct {
	mu   sync.Mutex
	refs int
}

func newBillLocks() *billLocks {
	return &billLocks{locks: make(map[string]*billLock)}
}

// lock acquires the lock for billID and returns its release function.
func (l *billLocks) lock(billID string) func() {
	l.mu.Lock()
	bl, ok := l.locks[billID]
	if !ok {
		bl = &billLock{}
		l.locks[billID] = bl
	}
	bl.refs++
	l.mu.Unlock()

	bl.mu.Lock()
	return func() {
		bl.mu.Unlock()

		l.mu.Lock()
		bl.refs--
		if bl.refs == 0 {
			delete(l.locks, billID)
		}
		l.mu.Unlock()
	}
}
