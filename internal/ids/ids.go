package ids

import (
	mathrand "math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
	keyRand   = mathrand.New(mathrand.NewSource(time.Now().UnixNano() ^ 0x5bd1e995))
)

// New returns a lexicographically sortable identifier used for token IDs
// and request correlation.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NumericKey returns a random ten-digit decimal key in [1e9, 2e9),
// the key shape used by the enqueue probe endpoint.
func NumericKey() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return strconv.FormatInt(1_000_000_000+keyRand.Int63n(1_000_000_000), 10)
}
