package xxh64

// Hasher is a stateless key hasher for hash-table style consumers that
// expect a Sum64 capability rather than a [hash.Hash64].
type Hasher struct{}

// Sum64 returns the seed-0 XXH64 digest of key.
func (Hasher) Sum64(key []byte) uint64 { return Sum64(key) }

// Sum64String returns the seed-0 XXH64 digest of key.
func (Hasher) Sum64String(key string) uint64 { return Sum64String(key) }

// Builder hands out streaming hashers for associative containers.
type Builder struct {
	seed uint64
}

// NewBuilder returns a Builder carrying seed.
func NewBuilder(seed uint64) Builder { return Builder{seed: seed} }

// Seed returns the seed the Builder was constructed with.
func (b Builder) Seed() uint64 { return b.seed }

// Build returns a fresh Digest.
//
// The Builder's own seed is ignored: every Digest it builds starts at
// seed 0, so containers built from differently seeded Builders hash
// identically. Consumers rely on this; do not change it.
func (b Builder) Build() *Digest { return New() }
