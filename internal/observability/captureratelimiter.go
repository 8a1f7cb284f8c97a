package observability

import (
	"hash/fnv"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// CaptureRateLimiter drops repeated Sentry captures of the same message.
//
// It remembers the last capture time per message hash in an LRU cache, so
// memory stays bounded even when many distinct errors occur. If the cache
// is too small relative to the variety of errors, some repeats may still
// get through; that is acceptable for error reporting.
//
// A nil limiter allows every capture.
type CaptureRateLimiter struct {
	cache       *lru.Cache
	minInterval time.Duration
}

// NewCaptureRateLimiter creates a limiter that allows each distinct
// message at most once per minInterval, remembering up to size messages.
func NewCaptureRateLimiter(
	size int,
	minInterval time.Duration,
) (*CaptureRateLimiter, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &CaptureRateLimiter{
		cache:       cache,
		minInterval: minInterval,
	}, nil
}

// Allow reports whether the message should be captured, and if so records
// the capture time.
func (rl *CaptureRateLimiter) Allow(msg string) bool {
	if rl == nil {
		return true
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(msg))
	key := h.Sum64()

	now := time.Now()
	if last, ok := rl.cache.Get(key); ok {
		if now.Sub(last.(time.Time)) < rl.minInterval {
			return false
		}
	}

	rl.cache.Add(key, now)
	return true
}
