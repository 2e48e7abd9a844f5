package wheel

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// Seeded returns a deterministic generator derived from text
func Seeded(text string) *rand.Rand {
	h := sha256.Sum256([]byte(text))
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(h[:8]),
		binary.LittleEndian.Uint64(h[8:16]),
	))
}

// Random returns a generator seeded from the runtime's entropy source
func Random() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
