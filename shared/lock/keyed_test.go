package lock_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"nestling/shared/lock"
)

func TestKeyedMutex_SerializesPerKey(t *testing.T) {
	km := lock.NewKeyedMutex()

	const workers = 50

	counter := 0

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			km.Lock("booking-1")
			defer km.Unlock("booking-1")

			counter++
		}()
	}

	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	km := lock.NewKeyedMutex()

	km.Lock("a")
	defer km.Unlock("a")

	done := make(chan struct{})
	go func() {
		km.Lock("b")
		defer km.Unlock("b")
		close(done)
	}()

	<-done
}
