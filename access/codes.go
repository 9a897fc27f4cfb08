package access

import (
	"math/rand"
	"strconv"
	"sync"
)

// CodeRegistry maps outstanding verification codes to the user they were
// issued for. Codes are random 7-digit decimal strings with no
// uniqueness check, so a collision silently overwrites the earlier
// mapping, and Resolve does not consume the code: a user may hold
// several resolvable codes at once and a code stays redeemable until the
// process restarts or Remove is called.
type CodeRegistry struct {
	mu    sync.Mutex
	codes map[string]int64
}

func NewCodeRegistry() *CodeRegistry {
	return &CodeRegistry{codes: make(map[string]int64)}
}

// Issue generates a new code for userID and records the mapping.
func (r *CodeRegistry) Issue(userID int64) string {
	code := strconv.Itoa(1000000 + rand.Intn(9000000))
	r.mu.Lock()
	r.codes[code] = userID
	r.mu.Unlock()
	return code
}

// Resolve looks up the user a code was issued for without removing it.
func (r *CodeRegistry) Resolve(code string) (int64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	userID, ok := r.codes[code]
	return userID, ok
}

// Remove invalidates a code. Only used in single-use mode.
func (r *CodeRegistry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, code)
}
