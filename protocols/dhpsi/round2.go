package dhpsi

import (
	"github.com/blindset/psi/internal/round"
	"github.com/blindset/psi/pkg/math/curve"
	"github.com/blindset/psi/pkg/psi"
)

// round2 embeds round1 so that it has access to previous information.
type round2 struct {
	*round1
	prepared *psi.Prepared
	// peerBlinded holds the other party's blinded points in the order they
	// were sent. The reply we produce must preserve that order.
	peerBlinded *psi.BlindedPointsMessage
}

// message2 carries a party's blinded points. It is sent in round 1 and
// processed in round 2.
type message2 struct {
	Points []curve.Compressed `cbor:"points"`
}

// VerifyMessage checks that the other party sent a non-empty point sequence.
// The points themselves are only decoded in Finalize.
func (r *round2) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message2)
	if !ok || body == nil {
		return round.ErrInvalidContent
	}
	if len(body.Points) == 0 {
		return psi.ErrInvalidBlindedPoints
	}
	return nil
}

// StoreMessage saves the other party's blinded points.
func (r *round2) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message2)
	r.peerBlinded = psi.NewBlindedPointsMessage(body.Points)
	return nil
}

// Finalize double blinds the other party's points and returns them.
func (r *round2) Finalize(out chan<- *round.Message) (round.Session, error) {
	double, reply, err := r.prepared.Advance(r.peerBlinded)
	if err != nil {
		// a point that does not decode is attributable to the other party.
		return r.AbortRound(err, r.OtherPartyIDs()[0]), nil
	}

	if err := r.SendMessage(out, &message3{Points: reply.Points}, r.OtherPartyIDs()[0]); err != nil {
		return r, err
	}

	return &round3{
		round2: r,
		double: double,
	}, nil
}

// RoundNumber implements round.Content.
func (message2) RoundNumber() round.Number { return 2 }

// MessageContent implements round.Round.
func (round2) MessageContent() round.Content { return &message2{} }

// Number implements round.Round.
func (round2) Number() round.Number { return 2 }
