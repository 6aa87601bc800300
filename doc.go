// Package xxh64 provides a Go implementation of the 64-bit xxHash
// (XXH64) non-cryptographic hash described at
// http://cyan4973.github.io/xxHash/.
//
// It offers a streaming [Digest] that satisfies [hash.Hash64], plus
// convenience helpers for one-shot sums. All entry points share one
// mixing core and produce bit-identical digests for the same seed and
// byte sequence, no matter how the input is chunked.
//
// XXH64 is not collision-resistant against adversarial input; do not
// use it where a cryptographic hash is required.
package xxh64
