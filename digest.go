package xxh64

import (
	"encoding"
	"encoding/binary"
	"errors"
	"hash"
)

// Compile-time interface assertions.
var _ hash.Hash = (*Digest)(nil)
var _ hash.Hash64 = (*Digest)(nil)
var _ encoding.BinaryMarshaler = (*Digest)(nil)
var _ encoding.BinaryUnmarshaler = (*Digest)(nil)

// Digest is a streaming XXH64 hasher. It accepts input in chunks of any
// size and produces the same digest as the one-shot [Sum64WithSeed] for
// the same seed and byte sequence.
//
// A zero-valued Digest is not ready to receive writes: construct one
// with [New] or [NewWithSeed], or call Reset first. Sum64 is a
// read-only query: a Digest stays writable after it, and interleaved
// Write/Sum64 calls observe digests of successively longer prefixes.
type Digest struct {
	seed           uint64
	v1, v2, v3, v4 uint64
	total          uint64
	mem            [stripeLen]byte
	n              int // bytes of mem in use, always < stripeLen
}

// New returns a Digest with seed 0.
func New() *Digest {
	return NewWithSeed(0)
}

// NewWithSeed returns a Digest seeded with seed.
func NewWithSeed(seed uint64) *Digest {
	var d Digest
	d.ResetWithSeed(seed)
	return &d
}

// Reset restores the Digest to its initial seed-0 state.
func (d *Digest) Reset() { d.ResetWithSeed(0) }

// ResetWithSeed restores the Digest to the initial state for seed.
func (d *Digest) ResetWithSeed(seed uint64) {
	d.seed = seed
	d.v1 = seed + prime1 + prime2
	d.v2 = seed + prime2
	d.v3 = seed
	d.v4 = seed - prime1
	d.total = 0
	d.n = 0
}

// Seed returns the seed the Digest was constructed or last reset with.
func (d *Digest) Seed() uint64 { return d.seed }

// Write adds p to the running hash state. It never returns an error.
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.total += uint64(n)

	if d.n+n < stripeLen {
		// Not enough for a full stripe yet; carry everything over.
		copy(d.mem[d.n:], p)
		d.n += n
		return n, nil
	}

	if d.n > 0 {
		// Complete the carried-over stripe first.
		c := copy(d.mem[d.n:], p)
		d.v1 = round(d.v1, binary.LittleEndian.Uint64(d.mem[0:8]))
		d.v2 = round(d.v2, binary.LittleEndian.Uint64(d.mem[8:16]))
		d.v3 = round(d.v3, binary.LittleEndian.Uint64(d.mem[16:24]))
		d.v4 = round(d.v4, binary.LittleEndian.Uint64(d.mem[24:32]))
		p = p[c:]
		d.n = 0
	}

	// Consume full stripes straight from p, bypassing the carry buffer.
	v1, v2, v3, v4 := d.v1, d.v2, d.v3, d.v4
	for len(p) >= stripeLen {
		v1 = round(v1, binary.LittleEndian.Uint64(p[0:8]))
		v2 = round(v2, binary.LittleEndian.Uint64(p[8:16]))
		v3 = round(v3, binary.LittleEndian.Uint64(p[16:24]))
		v4 = round(v4, binary.LittleEndian.Uint64(p[24:32]))
		p = p[stripeLen:]
	}
	d.v1, d.v2, d.v3, d.v4 = v1, v2, v3, v4

	copy(d.mem[:], p)
	d.n = len(p)

	return n, nil
}

// Sum64 computes the digest of all bytes written so far. It does not
// mutate the Digest.
func (d *Digest) Sum64() uint64 {
	var h uint64
	if d.total >= stripeLen {
		h = converge(d.v1, d.v2, d.v3, d.v4)
	} else {
		// The accumulators were never consulted.
		h = d.seed + prime5
	}

	h += d.total

	return finalize(h, d.mem[:d.n])
}

// Sum appends the current big-endian digest to b.
func (d *Digest) Sum(b []byte) []byte {
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], d.Sum64())
	return append(b, out[:]...)
}

// Size returns the hash size in bytes.
func (d *Digest) Size() int { return 8 }

// BlockSize returns the stripe size in bytes.
func (d *Digest) BlockSize() int { return stripeLen }

const (
	magic         = "xxh64\x01"
	marshaledSize = len(magic) + 8*6 + stripeLen
)

// AppendBinary implements the encoding.BinaryAppender interface.
func (d *Digest) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, magic...)
	b = binary.BigEndian.AppendUint64(b, d.seed)
	b = binary.BigEndian.AppendUint64(b, d.v1)
	b = binary.BigEndian.AppendUint64(b, d.v2)
	b = binary.BigEndian.AppendUint64(b, d.v3)
	b = binary.BigEndian.AppendUint64(b, d.v4)
	b = binary.BigEndian.AppendUint64(b, d.total)
	b = append(b, d.mem[:d.n]...)
	b = append(b, make([]byte, stripeLen-d.n)...)
	return b, nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (d *Digest) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(make([]byte, 0, marshaledSize))
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (d *Digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return errors.New("xxh64: invalid hash state identifier")
	}
	if len(b) != marshaledSize {
		return errors.New("xxh64: invalid hash state size")
	}
	b = b[len(magic):]
	b, d.seed = consumeUint64(b)
	b, d.v1 = consumeUint64(b)
	b, d.v2 = consumeUint64(b)
	b, d.v3 = consumeUint64(b)
	b, d.v4 = consumeUint64(b)
	b, d.total = consumeUint64(b)
	copy(d.mem[:], b)
	d.n = int(d.total % stripeLen)
	return nil
}

func consumeUint64(b []byte) ([]byte, uint64) {
	return b[8:], binary.BigEndian.Uint64(b[0:8])
}
