package lock

import "sync"

// KeyedMutex serializes work per key. The application services take the lock
// for a booking or session id around the whole load-mutate-persist-publish
// sequence, so the availability read cannot race the persist of a competing
// booking.
//
// Entries are reference counted: the last holder's Unlock removes the key, so
// the table only holds keys with an active or waiting holder.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*lockEntry),
	}
}

func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()

	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}

	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()

	entry, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()

		return
	}

	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}

	k.mu.Unlock()

	entry.mu.Unlock()
}

// held reports the number of live entries, for tests.
func (k *KeyedMutex) held() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.locks)
}
