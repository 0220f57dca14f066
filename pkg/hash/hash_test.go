package hash

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWriteAny(t *testing.T) {
	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			if err := h.WriteAny(v); err != nil {
				return err
			}
		}
		return nil
	}

	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc(BytesWithDomain{TheDomain: "test", Bytes: []byte{1}}))
}

func TestHashDeterministic(t *testing.T) {
	h1 := New(BytesWithDomain{TheDomain: "Item", Bytes: []byte("apple")})
	h2 := New(BytesWithDomain{TheDomain: "Item", Bytes: []byte("apple")})
	assert.Equal(t, h1.Sum(), h2.Sum())

	h3 := New(BytesWithDomain{TheDomain: "Item", Bytes: []byte("banana")})
	assert.NotEqual(t, h1.Sum(), h3.Sum())
}

func TestHashDomainSeparation(t *testing.T) {
	h1 := New(BytesWithDomain{TheDomain: "A", Bytes: []byte("x")})
	h2 := New(BytesWithDomain{TheDomain: "B", Bytes: []byte("x")})
	assert.NotEqual(t, h1.Sum(), h2.Sum())
}

func TestHashCloneIndependent(t *testing.T) {
	h := New()
	require.NoError(t, h.WriteAny([]byte("shared prefix")))
	c := h.Clone()

	require.NoError(t, h.WriteAny([]byte("left")))
	require.NoError(t, c.WriteAny([]byte("right")))
	assert.NotEqual(t, h.Sum(), c.Sum())
}

func TestHashDigestExtendable(t *testing.T) {
	h := New(BytesWithDomain{TheDomain: "XOF", Bytes: []byte("seed")})
	wide := make([]byte, 64)
	_, err := io.ReadFull(h.Digest(), wide)
	require.NoError(t, err)

	// the first DigestLengthBytes of the extended output match Sum
	h2 := New(BytesWithDomain{TheDomain: "XOF", Bytes: []byte("seed")})
	assert.True(t, bytes.Equal(wide[:DigestLengthBytes], h2.Sum()))
}
