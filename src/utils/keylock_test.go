package utils_test

import (
	"sync"
	"testing"
	"time"

	"cryptoapp/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	t.Run("should serialize holders of the same key", func(t *testing.T) {
		locks := utils.NewKeyedMutex()
		var (
			wg      sync.WaitGroup
			mutex   sync.Mutex
			active  int
			maxSeen int
		)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locks.Lock("1/bitcoin")
				defer unlock()

				mutex.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mutex.Unlock()

				time.Sleep(time.Millisecond)

				mutex.Lock()
				active--
				mutex.Unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxSeen)
		assert.Equal(t, 0, locks.Len())
	})

	t.Run("should not block other keys", func(t *testing.T) {
		locks := utils.NewKeyedMutex()
		unlock := locks.Lock("1/bitcoin")
		defer unlock()

		done := make(chan struct{})
		go func() {
			other := locks.Lock("1/ethereum")
			other()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("lock on a different key was blocked")
		}
		assert.Equal(t, 1, locks.Len())
	})
}
