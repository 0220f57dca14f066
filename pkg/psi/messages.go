package psi

import (
	"fmt"

	"github.com/blindset/psi/pkg/math/curve"
)

// BlindedPointsMessage is the first-round payload: the sender's items, hashed
// to the curve and blinded under the sender's secret, in the sender's private
// index order. It deliberately carries no digests: pairing a digest with its
// blinded point would announce the item's existence to the peer regardless of
// whether it is in the intersection.
type BlindedPointsMessage struct {
	Points []curve.Compressed `cbor:"points"`
}

// NewBlindedPointsMessage creates a new blinded points message.
func NewBlindedPointsMessage(points []curve.Compressed) *BlindedPointsMessage {
	return &BlindedPointsMessage{Points: points}
}

// NewValidatedBlindedPointsMessage is the constructor for call sites that
// require a non-empty exchange.
func NewValidatedBlindedPointsMessage(points []curve.Compressed) (*BlindedPointsMessage, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty point sequence", ErrInvalidBlindedPoints)
	}
	return &BlindedPointsMessage{Points: points}, nil
}

// Len returns the number of points in this message.
func (m *BlindedPointsMessage) Len() int { return len(m.Points) }

// IsEmpty returns true if this message contains no points.
func (m *BlindedPointsMessage) IsEmpty() bool { return len(m.Points) == 0 }

// DoubleBlindedPointsMessage is the second-round payload: the peer's blinded
// points, further blinded under the sender's secret, in the same index order
// as the first-round message they were taken from.
type DoubleBlindedPointsMessage struct {
	Points []curve.Compressed `cbor:"points"`
}

// NewDoubleBlindedPointsMessage creates a new double-blinded points message.
func NewDoubleBlindedPointsMessage(points []curve.Compressed) *DoubleBlindedPointsMessage {
	return &DoubleBlindedPointsMessage{Points: points}
}

// NewValidatedDoubleBlindedPointsMessage is the constructor for call sites
// that require a non-empty exchange.
func NewValidatedDoubleBlindedPointsMessage(points []curve.Compressed) (*DoubleBlindedPointsMessage, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty point sequence", ErrInvalidBlindedPoints)
	}
	return &DoubleBlindedPointsMessage{Points: points}, nil
}

// Len returns the number of points in this message.
func (m *DoubleBlindedPointsMessage) Len() int { return len(m.Points) }

// IsEmpty returns true if this message contains no points.
func (m *DoubleBlindedPointsMessage) IsEmpty() bool { return len(m.Points) == 0 }

// Result is the outcome of a completed run: the digests common to both sets,
// in the order they were matched, and the double-blinded representation of
// each. The point map is the same on both sides and can serve as a shared,
// non-reversible proof artifact. Digest order is not guaranteed to agree
// across the two parties; compare results as sets.
type Result struct {
	Digests []Digest                    `cbor:"digests"`
	Points  map[Digest]curve.Compressed `cbor:"points"`
}

// Size returns the number of elements in the intersection.
func (r *Result) Size() int { return len(r.Digests) }

// IsEmpty returns true if the intersection is empty.
func (r *Result) IsEmpty() bool { return len(r.Digests) == 0 }

// Contains reports whether d is part of the intersection.
func (r *Result) Contains(d Digest) bool {
	_, ok := r.Points[d]
	return ok
}
