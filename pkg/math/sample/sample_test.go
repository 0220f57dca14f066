package sample

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func TestScalarDistinct(t *testing.T) {
	s1 := Scalar(rand.Reader)
	s2 := Scalar(rand.Reader)
	assert.False(t, s1.Equals(s2), "two sampled scalars should differ")
}

func TestScalarDeterministicSource(t *testing.T) {
	h1 := blake3.New()
	_, err := h1.Write([]byte("fixed seed"))
	require.NoError(t, err)
	h2 := blake3.New()
	_, err = h2.Write([]byte("fixed seed"))
	require.NoError(t, err)

	s1 := Scalar(h1.Digest())
	s2 := Scalar(h2.Digest())
	assert.True(t, s1.Equals(s2), "same source must give the same scalar")
}

func TestScalarPanicsOnBrokenSource(t *testing.T) {
	assert.Panics(t, func() {
		Scalar(brokenReader{})
	})
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}
