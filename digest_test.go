package xxh64_test

import (
	"hash"
	"testing"

	xxhref "github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"go.dw1.io/xxh64"
)

func TestStreamingMatchesOneShot(t *testing.T) {
	lengths := []int{0, 1, 3, 4, 7, 8, 15, 16, 31, 32, 33, 63, 64, 65, 100, 255, 256, 1000}
	chunkSizes := []int{1, 3, 7, 13, 31, 32, 33, 64, 255}

	for _, n := range lengths {
		data := testBytes(n)
		for _, seed := range []uint64{0, 10} {
			want := xxh64.Sum64WithSeed(data, seed)

			// Single write.
			d := xxh64.NewWithSeed(seed)
			written, err := d.Write(data)
			require.NoError(t, err)
			require.Equal(t, n, written)
			require.Equal(t, want, d.Sum64(), "len %d seed %d single write", n, seed)

			// Every chunking must land on the same digest.
			for _, cs := range chunkSizes {
				d := xxh64.NewWithSeed(seed)
				for b := data; len(b) > 0; {
					c := cs
					if c > len(b) {
						c = len(b)
					}
					_, err := d.Write(b[:c])
					require.NoError(t, err)
					b = b[c:]
				}
				require.Equal(t, want, d.Sum64(), "len %d seed %d chunk %d", n, seed, cs)
			}
		}
	}
}

func TestStreamingByteByByte(t *testing.T) {
	const seed = 10

	data := make([]byte, 0, 1000)
	d := xxh64.NewWithSeed(seed)
	for i := 0; i < 1000; i++ {
		data = append(data, byte(i))
		_, err := d.Write(data[len(data)-1:])
		require.NoError(t, err)
		require.Equal(t, xxh64.Sum64WithSeed(data, seed), d.Sum64(), "len %d", len(data))
	}
}

func TestStripeBoundary(t *testing.T) {
	for _, n := range []int{31, 32, 33} {
		data := testBytes(n)
		for _, seed := range []uint64{0, 10} {
			want := xxh64.Sum64WithSeed(data, seed)

			// Split right at the threshold byte.
			d := xxh64.NewWithSeed(seed)
			d.Write(data[:31])
			d.Write(data[31:])
			require.Equal(t, want, d.Sum64(), "len %d seed %d", n, seed)
		}
		require.Equal(t, xxhref.Sum64(data), xxh64.Sum64(data), "len %d", n)
	}
}

func TestSum64DoesNotMutate(t *testing.T) {
	data := testBytes(100)

	d := xxh64.NewWithSeed(10)
	for i, b := range data {
		// Querying between writes must not disturb the stream.
		require.Equal(t, xxh64.Sum64WithSeed(data[:i], 10), d.Sum64())
		_, err := d.Write([]byte{b})
		require.NoError(t, err)
	}
	require.Equal(t, xxh64.Sum64WithSeed(data, 10), d.Sum64())

	// Writing after a query keeps accumulating into a longer digest.
	d.Write(data)
	require.Equal(t, xxh64.Sum64WithSeed(append(append([]byte{}, data...), data...), 10), d.Sum64())
}

func TestSumAppend(t *testing.T) {
	d := xxh64.New()
	d.Write([]byte("0123456789"))
	sum := d.Sum64()

	want := []byte{0xaa, 0xbb,
		byte(sum >> 56), byte(sum >> 48), byte(sum >> 40), byte(sum >> 32),
		byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum),
	}
	require.Equal(t, want, d.Sum([]byte{0xaa, 0xbb}))
}

func TestReset(t *testing.T) {
	data := testBytes(300)

	d := xxh64.NewWithSeed(10)
	d.Write(data)
	d.Reset()
	d.Write(data)
	require.Equal(t, uint64(0), d.Seed())
	require.Equal(t, xxh64.Sum64(data), d.Sum64())

	d.ResetWithSeed(10)
	d.Write(data)
	require.Equal(t, uint64(10), d.Seed())
	require.Equal(t, xxh64.Sum64WithSeed(data, 10), d.Sum64())
}

func TestHashInterface(t *testing.T) {
	var h hash.Hash64 = xxh64.New()
	require.Equal(t, 8, h.Size())
	require.Equal(t, 32, h.BlockSize())
}

func TestMarshalBinaryRoundTrip(t *testing.T) {
	data := testBytes(1000)

	for _, cut := range []int{0, 1, 31, 32, 33, 500, 999, 1000} {
		for _, seed := range []uint64{0, 10} {
			d := xxh64.NewWithSeed(seed)
			_, err := d.Write(data[:cut])
			require.NoError(t, err)

			state, err := d.MarshalBinary()
			require.NoError(t, err)

			// Resume in a fresh Digest and finish the stream there.
			d2 := xxh64.New()
			require.NoError(t, d2.UnmarshalBinary(state))
			require.Equal(t, seed, d2.Seed())
			_, err = d2.Write(data[cut:])
			require.NoError(t, err)
			require.Equal(t, xxh64.Sum64WithSeed(data, seed), d2.Sum64(), "cut %d seed %d", cut, seed)
		}
	}
}

func TestUnmarshalBinaryErrors(t *testing.T) {
	d := xxh64.New()
	d.Write([]byte("0123456789"))
	state, err := d.MarshalBinary()
	require.NoError(t, err)

	bad := append([]byte{}, state...)
	copy(bad, "nothash")
	require.Error(t, xxh64.New().UnmarshalBinary(bad))

	require.Error(t, xxh64.New().UnmarshalBinary(state[:len(state)-1]))
	require.Error(t, xxh64.New().UnmarshalBinary(nil))
}
