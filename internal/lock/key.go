package lock

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

const keyPrefix = "reservation"

// Key serializes identical (restaurant, time bucket, party size) requests
// through one lock. The key is deliberately coarse: two party sizes at the
// same datetime proceed in parallel and rely on the transactional recheck.
func Key(restaurantID uuid.UUID, at time.Time, partySize int, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = 15 * time.Minute
	}
	rounded := at.Truncate(bucket)
	return fmt.Sprintf("%s:%s:%s:%d", keyPrefix, restaurantID, rounded.Format("200601021504"), partySize)
}

// AdvisoryKeyID maps a lock key onto the signed 63-bit integer space the
// Postgres advisory-lock functions take. FNV-64a with the sign bit masked
// keeps the mapping stable across processes.
func AdvisoryKeyID(key string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return int64(h.Sum64() & 0x7FFFFFFFFFFFFFFF) // #nosec G115 -- masked to the positive range
}
