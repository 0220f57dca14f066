// Package psi implements the cryptographic core of a two-party private set
// intersection: commutative blinding of hashed items over the Ristretto
// group, and the positional matching of double-blinded points.
//
// A run moves through three phases. Begin hashes and blinds the local set
// and yields a Prepared value; Advance consumes it against the peer's
// blinded points and yields a DoubleBlinded value; Finalize consumes that
// against the peer's double-blinded points and yields the intersection.
// Each transition invalidates its receiver, so no phase can run twice.
// Exchanging the two messages between the parties is the caller's concern;
// any byte-preserving channel will do.
package psi

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/bwesterb/go-ristretto"

	"github.com/blindset/psi/pkg/math/curve"
	"github.com/blindset/psi/pkg/math/sample"
	"github.com/blindset/psi/pkg/pool"
)

// Prepared holds the state of a run after the local set has been hashed and
// blinded, and before the peer's blinded points have been processed.
type Prepared struct {
	// secret is the blinding scalar for this run. It lives until Finalize,
	// which zeroizes it.
	secret *ristretto.Scalar
	// order fixes the index each digest occupies in the outgoing message.
	// Positions in the peer's reply refer back into it.
	order []Digest
	// blinded maps each digest to its blinded point.
	blinded map[Digest]curve.Compressed
	// digestOf is the reverse of blinded.
	digestOf map[curve.Compressed]Digest

	pl *pool.Pool
}

// Begin starts a run over the given private set. It fails with ErrEmptyInput
// when items is empty. Duplicate items collapse to a single entry: identity
// is the digest, not the position.
//
// src is the entropy source for the run's secret scalar; passing nil selects
// crypto/rand. Injecting the source keeps production on the operating
// system's generator while letting tests substitute a seeded one.
func Begin(items [][]byte, src io.Reader) (*Prepared, error) {
	return BeginWithPool(items, src, nil)
}

// BeginWithPool is Begin with the per-item curve operations spread over pl.
// A nil pool computes everything on the current thread.
func BeginWithPool(items [][]byte, src io.Reader, pl *pool.Pool) (*Prepared, error) {
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}
	if src == nil {
		src = rand.Reader
	}

	secret := sample.Scalar(src)

	order := make([]Digest, 0, len(items))
	seen := make(map[Digest]struct{}, len(items))
	for _, item := range items {
		d := DigestItem(item)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		order = append(order, d)
	}

	results := pl.Parallelize(len(order), func(i int) interface{} {
		return curve.Blind(curve.HashToPoint(order[i][:]), secret)
	})

	blinded := make(map[Digest]curve.Compressed, len(order))
	digestOf := make(map[curve.Compressed]Digest, len(order))
	for i, r := range results {
		c := r.(curve.Compressed)
		blinded[order[i]] = c
		digestOf[c] = order[i]
	}

	return &Prepared{
		secret:   secret,
		order:    order,
		blinded:  blinded,
		digestOf: digestOf,
		pl:       pl,
	}, nil
}

// Message returns the blinded points to hand to the transport, in the run's
// index order. It does not consume the receiver and returns byte-identical
// content on every call, so the message can be resent or logged freely
// before the next transition. After Advance it returns nil.
func (p *Prepared) Message() *BlindedPointsMessage {
	if p.secret == nil {
		return nil
	}
	points := make([]curve.Compressed, len(p.order))
	for i, d := range p.order {
		points[i] = p.blinded[d]
	}
	return NewBlindedPointsMessage(points)
}

// Advance consumes the Prepared state against the peer's blinded points:
// every point is decoded, checked, and multiplied by the local secret. The
// returned message goes back to the peer; the returned DoubleBlinded value
// finishes the run once the peer's reply arrives.
//
// A point that does not decode to a valid group element aborts the
// transition with no partial output: a malformed point is peer misbehaviour,
// and silently skipping it would change the effective item set behind the
// caller's back.
func (p *Prepared) Advance(peer *BlindedPointsMessage) (*DoubleBlinded, *DoubleBlindedPointsMessage, error) {
	if p.secret == nil {
		return nil, nil, ErrStateConsumed
	}
	if peer == nil {
		return nil, nil, fmt.Errorf("%w: missing message", ErrInvalidBlindedPoints)
	}

	results := p.pl.Parallelize(peer.Len(), func(i int) interface{} {
		pt, err := peer.Points[i].Decompress()
		if err != nil {
			return err
		}
		return curve.Blind(pt, p.secret)
	})

	outgoing := make([]curve.Compressed, peer.Len())
	computed := make(map[curve.Compressed]struct{}, peer.Len())
	for i, r := range results {
		if err, ok := r.(error); ok {
			return nil, nil, fmt.Errorf("psi: peer point %d: %w", i, err)
		}
		c := r.(curve.Compressed)
		outgoing[i] = c
		computed[c] = struct{}{}
	}

	next := &DoubleBlinded{
		secret:   p.secret,
		order:    p.order,
		computed: computed,
	}
	p.secret = nil
	p.order = nil
	p.blinded = nil
	p.digestOf = nil

	return next, NewDoubleBlindedPointsMessage(outgoing), nil
}

// DoubleBlinded holds the state of a run after the peer's blinded points
// have been double-blinded and returned, and before the peer's reply has
// been matched.
type DoubleBlinded struct {
	secret *ristretto.Scalar
	order  []Digest
	// computed is the set of double-blinded points derived from the peer's
	// message. The peer independently arrives at the same values for common
	// items, in the commuted order of scalars.
	computed map[curve.Compressed]struct{}
}

// Finalize consumes the DoubleBlinded state against the peer's double-blinded
// points and derives the intersection. A hit at position i means the digest
// at local index i is held by both parties, because both scalars applied in
// either order yield the same point. Digests are never compared across
// parties, only these opaque points.
//
// Positions beyond the local index order never match; a length mismatch is
// not itself an error. The secret scalar is zeroized before the result is
// returned, and the Final value gives no access to it.
func (d *DoubleBlinded) Finalize(peer *DoubleBlindedPointsMessage) (*Final, *Result, error) {
	if d.secret == nil {
		return nil, nil, ErrStateConsumed
	}
	if peer == nil {
		return nil, nil, fmt.Errorf("%w: missing message", ErrInvalidBlindedPoints)
	}

	// Check every received encoding before acting on any of them, so a
	// malformed message cannot produce a partial result.
	for i := range peer.Points {
		if _, err := peer.Points[i].Decompress(); err != nil {
			return nil, nil, fmt.Errorf("psi: peer point %d: %w", i, err)
		}
	}

	digests := make([]Digest, 0, len(d.order))
	points := make(map[Digest]curve.Compressed, len(d.order))
	for i := range peer.Points {
		if i >= len(d.order) {
			break
		}
		if _, ok := d.computed[peer.Points[i]]; !ok {
			continue
		}
		dig := d.order[i]
		digests = append(digests, dig)
		points[dig] = peer.Points[i]
	}

	d.secret.SetZero()
	d.secret = nil
	d.order = nil
	d.computed = nil

	result := &Result{Digests: digests, Points: points}
	return &Final{points: points}, result, nil
}

// Final is the terminal phase of a run. It retains only the intersection's
// double-blinded points; the secret scalar is gone.
type Final struct {
	points map[Digest]curve.Compressed
}

// Points returns a copy of the digest to double-blinded point mapping of the
// intersection.
func (f *Final) Points() map[Digest]curve.Compressed {
	points := make(map[Digest]curve.Compressed, len(f.points))
	for d, c := range f.points {
		points[d] = c
	}
	return points
}

// Size returns the number of elements in the intersection.
func (f *Final) Size() int { return len(f.points) }
