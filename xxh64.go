package xxh64

import (
	"encoding/binary"
	"math/bits"
)

// XXH64 prime constants from the reference implementation.
// These are fixed so the outputs are deterministic.
const (
	prime1 uint64 = 11400714785074694791
	prime2 uint64 = 14029467366897019727
	prime3 uint64 = 1609587929392839161
	prime4 uint64 = 9650029242287828579
	prime5 uint64 = 2870177450012600261
)

// stripeLen is the bulk processing unit: four 64-bit lanes per stripe.
const stripeLen = 32

// Sum64 returns the XXH64 digest of data with seed 0.
func Sum64(data []byte) uint64 { return sum64(data, 0) }

// Sum64WithSeed returns the XXH64 digest of data with the provided seed.
func Sum64WithSeed(data []byte, seed uint64) uint64 { return sum64(data, seed) }

// Sum64String returns the XXH64 digest of s with seed 0.
func Sum64String(s string) uint64 { return sum64([]byte(s), 0) }

// Sum64StringWithSeed returns the XXH64 digest of s with the provided seed.
func Sum64StringWithSeed(s string, seed uint64) uint64 { return sum64([]byte(s), seed) }

// sum64 is the one-shot XXH64 pipeline: stripes, convergence, length,
// tail, avalanche.
func sum64(b []byte, seed uint64) uint64 {
	n := len(b)

	var h uint64
	if n < stripeLen {
		// Inputs under one stripe skip the accumulators entirely.
		h = seed + prime5
	} else {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1
		for len(b) >= stripeLen {
			v1 = round(v1, binary.LittleEndian.Uint64(b[0:8]))
			v2 = round(v2, binary.LittleEndian.Uint64(b[8:16]))
			v3 = round(v3, binary.LittleEndian.Uint64(b[16:24]))
			v4 = round(v4, binary.LittleEndian.Uint64(b[24:32]))
			b = b[stripeLen:]
		}
		h = converge(v1, v2, v3, v4)
	}

	h += uint64(n)

	return finalize(h, b)
}

// converge folds the four lane accumulators into a single value. The
// merge order v1..v4 is fixed by the algorithm.
func converge(v1, v2, v3, v4 uint64) uint64 {
	h := bits.RotateLeft64(v1, 1) +
		bits.RotateLeft64(v2, 7) +
		bits.RotateLeft64(v3, 12) +
		bits.RotateLeft64(v4, 18)
	h = mergeRound(h, v1)
	h = mergeRound(h, v2)
	h = mergeRound(h, v3)
	h = mergeRound(h, v4)
	return h
}

// finalize consumes the tail (fewer than 32 bytes) in 8-, 4-, then
// 1-byte steps and applies the avalanche mix.
func finalize(h uint64, b []byte) uint64 {
	for ; len(b) >= 8; b = b[8:] {
		h ^= round(0, binary.LittleEndian.Uint64(b[0:8]))
		h = bits.RotateLeft64(h, 27)*prime1 + prime4
	}
	if len(b) >= 4 {
		h ^= uint64(binary.LittleEndian.Uint32(b[0:4])) * prime1
		h = bits.RotateLeft64(h, 23)*prime2 + prime3
		b = b[4:]
	}
	for ; len(b) > 0; b = b[1:] {
		h ^= uint64(b[0]) * prime5
		h = bits.RotateLeft64(h, 11) * prime1
	}
	return avalanche(h)
}

// round folds one little-endian 64-bit word into a lane accumulator.
func round(acc, lane uint64) uint64 {
	acc += lane * prime2
	return bits.RotateLeft64(acc, 31) * prime1
}

// mergeRound folds one final lane value into the converging accumulator.
func mergeRound(h, lane uint64) uint64 {
	h ^= round(0, lane)
	return h*prime1 + prime4
}

// avalanche is the final mix; every output bit depends on every input bit.
func avalanche(h uint64) uint64 {
	h ^= h >> 33
	h *= prime2
	h ^= h >> 29
	h *= prime3
	h ^= h >> 32
	return h
}
