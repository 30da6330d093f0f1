// Package cache stores completed digests keyed by content fingerprint.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/GriffinCanCode/transcript-digest/internal/digest"
)

// Cache is the injectable digest store. Implementations must support
// concurrent readers; entries are immutable once inserted and replaced
// wholesale on overwrite.
type Cache interface {
	Get(ctx context.Context, key string) (digest.Digest, bool)
	Set(ctx context.Context, key string, d digest.Digest, cost int)
}

// Fingerprint derives a deterministic cache key from the original input
// text and the engine identity. Never includes wall-clock time.
func Fingerprint(text, engineID string) string {
	h := sha256.New()
	h.Write([]byte(engineID))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
