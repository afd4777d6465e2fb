// Package prng derives a private, deterministic random source per
// (seed, value, attempt) triple. A single shared, unseeded generator
// would make results non-reproducible and let concurrent callers steal
// each other's draws; instead every call site gets its own *rand.Rand,
// seeded from a SHA-256 digest of its inputs, so the same triple always
// produces the same stream and no goroutine observes another's draws.
package prng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// Seeded returns a new, independent random source derived from
// hash(seed || "\x00" || value || "\x00" || attempt). Two calls with
// identical arguments always yield generators that produce identical
// sequences; callers must never share a *rand.Rand across goroutines.
func Seeded(seed, value string, attempt int) *rand.Rand {
	h := sha256.New()
	h.Write([]byte(seed))
	h.Write([]byte{0})
	h.Write([]byte(value))
	h.Write([]byte{0})
	var attemptBuf [8]byte
	binary.BigEndian.PutUint64(attemptBuf[:], uint64(attempt))
	h.Write(attemptBuf[:])

	sum := h.Sum(nil)
	seedInt := int64(binary.BigEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seedInt))
}

// Int63n draws a single deterministic value in [0, n) for the given
// triple, without the caller having to construct a *rand.Rand. n must
// be positive.
func Int63n(seed, value string, attempt int, n int64) int64 {
	return Seeded(seed, value, attempt).Int63n(n)
}

// Shuffle deterministically permutes a []string copy of items for the
// given triple and returns the permuted copy, leaving items untouched.
func Shuffle(seed, value string, attempt int, items []string) []string {
	r := Seeded(seed, value, attempt)
	out := make([]string, len(items))
	copy(out, items)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
