package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLockSameKeyReturnsSameMutex(t *testing.T) {
	lm := NewLockManager()

	first := lm.GetLock("user-1")
	second := lm.GetLock("user-1")

	assert.Same(t, first, second)
}

func TestGetLockDifferentKeysReturnDifferentMutexes(t *testing.T) {
	lm := NewLockManager()

	assert.NotSame(t, lm.GetLock("user-1"), lm.GetLock("user-2"))
}

func TestGetLockSerializesCounterUpdates(t *testing.T) {
	lm := NewLockManager()

	const goroutines = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			mu := lm.GetLock("shared")
			mu.Lock()
			counter++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, counter)
}
