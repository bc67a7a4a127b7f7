package app

import (
    crand "crypto/rand"
    "encoding/binary"
    "math/rand"
    "sync/atomic"
    "time"

    "github.com/google/uuid"
)

// newGameID returns a random game identifier.
func newGameID() string { return uuid.NewString() }

// newSeed draws a seed from crypto/rand, falling back to the clock.
func newSeed() int64 {
    var b [8]byte
    if _, err := crand.Read(b[:]); err != nil {
        return time.Now().UnixNano()
    }
    return int64(binary.LittleEndian.Uint64(b[:]))
}

// seeder hands out piece generators. With a fixed base seed every game gets
// base, base+1, ... so runs are reproducible.
type seeder struct {
    base int64
    n    atomic.Int64
}

func (s *seeder) next() *rand.Rand {
    if s.base == 0 {
        return rand.New(rand.NewSource(newSeed()))
    }
    return rand.New(rand.NewSource(s.base + s.n.Add(1) - 1))
}
