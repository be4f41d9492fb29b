package utils

import "sync"

// KeyedMutex serializes work per key while leaving other keys free to proceed.
// Entries are dropped once no goroutine holds or waits on them.
type KeyedMutex struct {
	mutex sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyLock)}
}

// Lock blocks until key is free and returns the matching unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mutex.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mutex.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mutex.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mutex.Unlock()
	}
}

// Len reports how many keys are currently held or awaited.
func (k *KeyedMutex) Len() int {
	k.mutex.Lock()
	defer k.mutex.Unlock()
	return len(k.locks)
}
