package test

import (
	"io"

	"golang.org/x/crypto/chacha20"

	"github.com/blindset/psi/pkg/hash"
	"github.com/blindset/psi/pkg/pool"
)

// Rand returns a deterministic stream of pseudo random bytes derived from
// seed. Two readers built from the same seed produce identical streams, so
// tests can reproduce a protocol execution exactly. The reader is safe to
// share between the goroutines driving the two parties.
func Rand(seed string) io.Reader {
	key := hash.New(hash.BytesWithDomain{
		TheDomain: "Test Rand Seed",
		Bytes:     []byte(seed),
	}).Sum()
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		panic(err)
	}
	return pool.NewLockedReader(&randReader{c: c})
}

type randReader struct {
	c *chacha20.Cipher
}

func (r *randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.c.XORKeyStream(p, p)
	return len(p), nil
}
