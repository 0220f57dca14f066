package dhpsi

import (
	"github.com/blindset/psi/internal/round"
	"github.com/blindset/psi/pkg/math/curve"
	"github.com/blindset/psi/pkg/psi"
)

// round3 embeds round2 so that it has access to previous information.
type round3 struct {
	*round2
	double *psi.DoubleBlinded
	// reply holds our blinded points after the other party applied their
	// secret, positionally aligned with the points we sent in round 1.
	reply *psi.DoubleBlindedPointsMessage
}

// message3 carries the recipient's own points after the sender applied its
// secret, in the order they arrived. It is sent in round 2 and processed in
// round 3.
type message3 struct {
	Points []curve.Compressed `cbor:"points"`
}

// VerifyMessage checks that the other party sent a non-empty point sequence.
func (r *round3) VerifyMessage(msg round.Message) error {
	body, ok := msg.Content.(*message3)
	if !ok || body == nil {
		return round.ErrInvalidContent
	}
	if len(body.Points) == 0 {
		return psi.ErrInvalidBlindedPoints
	}
	return nil
}

// StoreMessage saves the other party's reply.
func (r *round3) StoreMessage(msg round.Message) error {
	body := msg.Content.(*message3)
	r.reply = psi.NewDoubleBlindedPointsMessage(body.Points)
	return nil
}

// Finalize matches the reply against our own double blinded set and reports
// the intersection.
func (r *round3) Finalize(chan<- *round.Message) (round.Session, error) {
	_, result, err := r.double.Finalize(r.reply)
	if err != nil {
		return r.AbortRound(err, r.OtherPartyIDs()[0]), nil
	}
	return r.ResultRound(result), nil
}

// RoundNumber implements round.Content.
func (message3) RoundNumber() round.Number { return 3 }

// MessageContent implements round.Round.
func (round3) MessageContent() round.Content { return &message3{} }

// Number implements round.Round.
func (round3) Number() round.Number { return 3 }
