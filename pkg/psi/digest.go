package psi

import (
	"encoding/hex"

	"github.com/blindset/psi/pkg/hash"
)

// DigestSize is the length of an item digest.
const DigestSize = 32

// itemDomain separates item digests from every other use of the hash.
const itemDomain = "blindset/psi: item digest"

// Digest is the protocol-visible identity of a set item. Two parties holding
// equal item bytes derive equal digests; the raw item bytes themselves are
// never exchanged.
type Digest [DigestSize]byte

// DigestItem hashes the raw item bytes to their canonical digest.
func DigestItem(item []byte) Digest {
	h := hash.New(hash.BytesWithDomain{TheDomain: itemDomain, Bytes: item})
	var d Digest
	copy(d[:], h.Sum())
	return d
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
