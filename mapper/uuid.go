package mapper

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewUUIDSource returns the identifier source for a uuidSize parameter.
// A positive size yields deterministic lettered identifiers (uuid:AA, uuid:AB, ...)
// padded to size letters; zero or a negative size yields random urn:uuid identifiers.
func NewUUIDSource(size int) UUIDSource {
	if size > 0 {
		return &letteredUUIDs{size: size}
	}
	return randomUUIDs{}
}

type randomUUIDs struct{}

func (randomUUIDs) Next() string {
	return "urn:uuid:" + uuid.NewString()
}

type letteredUUIDs struct {
	mu    sync.Mutex
	size  int
	count int
}

func (s *letteredUUIDs) Next() string {
	s.mu.Lock()
	n := s.count
	s.count++
	s.mu.Unlock()
	return "uuid:" + letters(n, s.size)
}

// letters renders n in base 26 using A-Z, left-padded with 'A' to width.
func letters(n, width int) string {
	var digits []byte
	for {
		digits = append(digits, byte('A'+n%26))
		n /= 26
		if n == 0 {
			break
		}
	}
	for len(digits) < width {
		digits = append(digits, 'A')
	}
	var b strings.Builder
	b.Grow(len(digits))
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
	}
	return b.String()
}
