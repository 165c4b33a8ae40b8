package calc

import (
	"crypto/rand"
	"fmt"
	"sync/atomic"
)

var fallbackSeq atomic.Uint64

// newCustomID creates a random id for a user-added row.
func newCustomID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// Fallback -- should never happen.
		return fmt.Sprintf("custom-seq-%d", fallbackSeq.Add(1))
	}
	return fmt.Sprintf("custom-%x", b)
}
