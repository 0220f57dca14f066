package dhpsi

import (
	"fmt"
	"io"

	"github.com/blindset/psi/internal/round"
	"github.com/blindset/psi/pkg/psi"
)

// round1 holds the local input set. It expects no message; its only job is
// to blind the local items and send them out.
type round1 struct {
	*round.Helper
	items [][]byte
	// src is the entropy source for the blinding secret; nil means crypto/rand.
	src io.Reader
}

// VerifyMessage in the first round does nothing since no messages are expected.
func (round1) VerifyMessage(round.Message) error { return nil }

// StoreMessage in the first round does nothing since no messages are expected.
func (round1) StoreMessage(round.Message) error { return nil }

// Finalize blinds the local set and sends the points to the other party.
func (r *round1) Finalize(out chan<- *round.Message) (round.Session, error) {
	prepared, err := psi.BeginWithPool(r.items, r.src, r.Pool)
	if err != nil {
		// a local failure, not misbehaviour by the other party.
		return r, fmt.Errorf("dhpsi: %w", err)
	}

	if err := r.SendMessage(out, &message2{Points: prepared.Message().Points}, r.OtherPartyIDs()[0]); err != nil {
		return r, err
	}

	return &round2{
		round1:   r,
		prepared: prepared,
	}, nil
}

// MessageContent returns nil since no message is expected in the first round.
func (round1) MessageContent() round.Content { return nil }

// Number implements round.Round.
func (round1) Number() round.Number { return 1 }
