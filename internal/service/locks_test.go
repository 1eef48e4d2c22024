package service

import (
	"sync"
	"testing"
)

func lockCount(l *billLocks) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func TestBillLocksReleaseEntries(t *testing.T) {
	l := newBillLocks()

	unlock := l.lock("a")
	if got := lockCount(l); got != 1 {
		t.Fatalf("entries while held = %d, want 1", got)
	}
	unlock()
	if got := lockCount(l); got != 0 {
		t.Errorf("entries after release = %d, want 0", got)
	}
}

func TestBillLocksSerialize(t *testing.T) {
	l := newBillLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("a")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
	if got := lockCount(l); got != 0 {
		t.Errorf("entries after all releases = %d, want 0", got)
	}
}

func TestBillLocksIndependentBills(t *testing.T) {
	l := newBillLocks()

	unlockA := l.lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		l.lock("b")()
		close(done)
	}()
	<-done

	if got := lockCount(l); got != 1 {
		t.Errorf("entries = %d, want 1", got)
	}
}
