package services

import "sync"

// KeyedMutex serializes read-modify-write sequences per record id. Lifecycle
// operations take at most one game lock followed by at most one user lock;
// the merge path takes two game locks in lexicographic id order. That ordering
// keeps the lock graph acyclic.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex returns an empty lock table.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

// Lock acquires the mutex for key, creating it on first use.
func (k *KeyedMutex) Lock(key string) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key.
func (k *KeyedMutex) Unlock(key string) {
	k.get(key).Unlock()
}

func gameKey(gameID string) string { return "game:" + gameID }
func userKey(userID string) string { return "user:" + userID }
