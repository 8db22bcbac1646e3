package lock

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The table must not grow with every id the process has ever locked; once the
// last holder of a key unlocks, its entry is gone.
func TestKeyedMutex_ReleasesIdleEntries(t *testing.T) {
	km := NewKeyedMutex()

	const keys = 100

	var wg sync.WaitGroup
	for index := range keys {
		wg.Add(1)

		go func() {
			defer wg.Done()

			key := fmt.Sprintf("booking-%d", index)

			km.Lock(key)
			defer km.Unlock(key)
		}()
	}

	wg.Wait()

	assert.Zero(t, km.held())
}

func TestKeyedMutex_ReleasesContendedKey(t *testing.T) {
	km := NewKeyedMutex()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			km.Lock("booking-1")
			defer km.Unlock("booking-1")
		}()
	}

	wg.Wait()

	assert.Zero(t, km.held())
}
