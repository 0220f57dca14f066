package curve

import (
	"crypto/rand"
	"testing"

	"github.com/bwesterb/go-ristretto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashToPointDeterministic(t *testing.T) {
	p1 := HashToPoint([]byte("apple"))
	p2 := HashToPoint([]byte("apple"))
	assert.True(t, p1.Equals(p2), "hash to point should be deterministic")

	p3 := HashToPoint([]byte("banana"))
	assert.False(t, p1.Equals(p3), "different inputs should map to different points")
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	p := HashToPoint([]byte("round trip"))
	c := Compress(p)
	q, err := c.Decompress()
	require.NoError(t, err)
	assert.True(t, p.Equals(q))
}

func TestDecompressInvalidEncoding(t *testing.T) {
	// a field element above the modulus is never a canonical encoding
	var c Compressed
	for i := range c {
		c[i] = 0xff
	}
	_, err := c.Decompress()
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestDecompressRejectsIdentity(t *testing.T) {
	var identity ristretto.Point
	identity.SetZero()
	c := Compress(&identity)
	_, err := c.Decompress()
	assert.ErrorIs(t, err, ErrInvalidPoint)
}

func TestBlindCommutes(t *testing.T) {
	var a, b ristretto.Scalar
	var buf [64]byte
	_, err := rand.Read(buf[:])
	require.NoError(t, err)
	a.SetReduced(&buf)
	_, err = rand.Read(buf[:])
	require.NoError(t, err)
	b.SetReduced(&buf)

	p := HashToPoint([]byte("shared item"))

	ca := Blind(p, &a)
	ab, err := ca.Decompress()
	require.NoError(t, err)
	cb := Blind(p, &b)
	ba, err := cb.Decompress()
	require.NoError(t, err)

	assert.Equal(t, Blind(ab, &b), Blind(ba, &a), "a*(b*P) must equal b*(a*P)")
}
