// Package sample draws uniformly random group scalars from an explicit
// entropy source.
package sample

import (
	"fmt"
	"io"

	"github.com/bwesterb/go-ristretto"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

// mustReadBits fills buf from rand, retrying on transient failure.
// It panics when the entropy source keeps failing: sampling a secret from a
// broken source must never degrade silently.
func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Scalar returns a uniformly sampled, nonzero scalar of the Ristretto group.
// 64 bytes are read and reduced modulo the group order, so the bias of the
// narrower reduction does not apply.
func Scalar(rand io.Reader) *ristretto.Scalar {
	var buf [64]byte
	var s ristretto.Scalar
	var zero ristretto.Scalar
	zero.SetZero()
	for i := 0; i < maxIterations; i++ {
		mustReadBits(rand, buf[:])
		s.SetReduced(&buf)
		if !s.Equals(&zero) {
			return &s
		}
	}
	panic(ErrMaxIterations)
}
