package mapper

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetteredUUIDs(t *testing.T) {
	src := NewUUIDSource(2)
	assert.Equal(t, "uuid:AA", src.Next())
	assert.Equal(t, "uuid:AB", src.Next())

	assert.Equal(t, "BA", letters(26, 2))
	assert.Equal(t, "ZZ", letters(675, 2))
	assert.Equal(t, "BAA", letters(676, 2))
	assert.Equal(t, "AAAAB", letters(1, 5))
}

func TestLetteredUUIDsAreUniqueAcrossGoroutines(t *testing.T) {
	src := NewUUIDSource(3)
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := src.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 400)
}

func TestRandomUUIDs(t *testing.T) {
	src := NewUUIDSource(0)
	a, b := src.Next(), src.Next()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^urn:uuid:`, a)
}
