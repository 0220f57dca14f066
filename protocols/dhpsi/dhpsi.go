// Package dhpsi implements a two party private set intersection protocol
// based on commutative blinding over the ristretto255 group.
//
// Each party hashes its items to curve points and blinds them with a
// secret scalar, then exchanges the blinded points. Each side blinds the
// peer's points a second time and returns them in the order received.
// Scalar multiplication commutes, so a point that comes back equal to one
// we computed ourselves corresponds to an item held by both parties.
// Nothing else about either set leaks: each party learns the intersection
// and the size of the peer's set, and no more.
package dhpsi

import (
	"fmt"
	"io"

	"github.com/blindset/psi/internal/round"
	"github.com/blindset/psi/pkg/party"
	"github.com/blindset/psi/pkg/pool"
	"github.com/blindset/psi/pkg/protocol"
	"github.com/blindset/psi/pkg/psi"
)

const (
	// Diffie-Hellman style PSI between exactly two parties.
	protocolID = "blindset/dhpsi"
	// This protocol has 3 concrete rounds.
	protocolRounds round.Number = 3
)

// These assert that our rounds implement the round.Round interface.
var (
	_ round.Round = (*round1)(nil)
	_ round.Round = (*round2)(nil)
	_ round.Round = (*round3)(nil)
)

// Result is the output reported by the handler: the intersection digests
// and their double blinded points.
type Result = psi.Result

// Start returns a protocol.StartFunc that computes the intersection of
// items with the set held by otherID. The blinding secret is drawn from
// crypto/rand. pl may be nil, in which case the curve operations run on the
// current thread.
func Start(selfID, otherID party.ID, items [][]byte, pl *pool.Pool) protocol.StartFunc {
	return StartWithRand(selfID, otherID, items, pl, nil)
}

// StartWithRand behaves like Start but draws the blinding secret from src.
// Production callers should prefer Start; a deterministic src makes runs
// reproducible for testing.
func StartWithRand(selfID, otherID party.ID, items [][]byte, pl *pool.Pool, src io.Reader) protocol.StartFunc {
	return func(sessionID []byte) (round.Session, error) {
		if selfID == otherID {
			return nil, fmt.Errorf("dhpsi.Start: selfID and otherID must differ")
		}
		if len(items) == 0 {
			return nil, fmt.Errorf("dhpsi.Start: %w", psi.ErrEmptyInput)
		}

		info := round.Info{
			ProtocolID:       protocolID,
			FinalRoundNumber: protocolRounds,
			SelfID:           selfID,
			PartyIDs:         party.NewIDSlice([]party.ID{selfID, otherID}),
		}
		helper, err := round.NewSession(info, sessionID, pl)
		if err != nil {
			return nil, fmt.Errorf("dhpsi.Start: %w", err)
		}

		return &round1{
			Helper: helper,
			items:  items,
			src:    src,
		}, nil
	}
}
