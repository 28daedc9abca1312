package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. Activity and inventory code locks
// on the user ID so claim settlement and capacity changes for one user
// never interleave.
type LockManager struct {
	locks sync.Map
}

func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for key, creating it on first use. The same
// key always yields the same mutex.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
