// Package curve wraps the Ristretto group over Curve25519 with the fixed-width
// point encoding and the hash-to-point construction used by the protocol.
package curve

import (
	"errors"

	"github.com/bwesterb/go-ristretto"
	"github.com/dchest/blake2b"
)

// CompressedSize is the byte length of a canonically encoded group element.
const CompressedSize = 32

// hashToPointDomain separates the hash-to-point derivation from any other
// use of the same hash function.
const hashToPointDomain = "blindset/psi: hash to point"

// ErrInvalidPoint is returned when a compressed encoding does not decode to a
// usable group element.
var ErrInvalidPoint = errors.New("curve: invalid point encoding")

// Compressed is the canonical 32-byte wire encoding of a Ristretto point.
type Compressed [CompressedSize]byte

// Decompress decodes c, failing with ErrInvalidPoint when c is not a canonical
// encoding of a group element, or encodes the identity. The identity never
// occurs as an honestly blinded point, and multiplying it away would make the
// matching step trivially forgeable.
func (c *Compressed) Decompress() (*ristretto.Point, error) {
	var p ristretto.Point
	if !p.SetBytes((*[CompressedSize]byte)(c)) {
		return nil, ErrInvalidPoint
	}
	var identity ristretto.Point
	identity.SetZero()
	if p.Equals(&identity) {
		return nil, ErrInvalidPoint
	}
	return &p, nil
}

// Compress returns the canonical encoding of p.
func Compress(p *ristretto.Point) Compressed {
	var c Compressed
	p.BytesInto((*[CompressedSize]byte)(&c))
	return c
}

// Blind multiplies p by the secret scalar s and compresses the result.
func Blind(p *ristretto.Point, s *ristretto.Scalar) Compressed {
	var blinded ristretto.Point
	blinded.ScalarMult(p, s)
	return Compress(&blinded)
}

// HashToPoint maps data to a group element whose discrete logarithm is
// unknown to everyone: the 64-byte blake2b digest of the input is split in
// two halves, each mapped with Elligator, and the images added. A plain
// scalar decode would leak the discrete log to whoever chose the input.
func HashToPoint(data []byte) *ristretto.Point {
	h := blake2b.New512()
	h.Write([]byte(hashToPointDomain))
	h.Write(data)
	var wide [64]byte
	copy(wide[:], h.Sum(nil))

	var lo, hi [32]byte
	copy(lo[:], wide[:32])
	copy(hi[:], wide[32:])
	var p, p1, p2 ristretto.Point
	return p.Add(p1.SetElligator(&lo), p2.SetElligator(&hi))
}
