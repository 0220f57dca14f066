package round

import "errors"

var (
	// ErrInvalidContent is returned when the message content is not the
	// type expected by the current round.
	ErrInvalidContent = errors.New("round: invalid content")

	// ErrOutChanFull is returned when the out channel cannot accept another
	// message. The channel should be buffered with enough capacity for the
	// whole round.
	ErrOutChanFull = errors.New("round: out channel is full")
)

// Round is a single step of a protocol execution.
type Round interface {
	// VerifyMessage handles an incoming Message and validates its content
	// with regard to the protocol specification. In a round that expects no
	// message, this function returns nil.
	// This function should not modify any saved state as it may be running
	// concurrently.
	VerifyMessage(msg Message) error

	// StoreMessage should be called after VerifyMessage and should only
	// store the appropriate fields from the content.
	StoreMessage(msg Message) error

	// Finalize is called after the expected message for the current round
	// has been processed. Messages for the next round are sent out through
	// the out channel, and the round for the next phase is returned.
	//
	// Finalize consumes the receiver: the protocol cannot re-enter a round
	// that has been finalized.
	//
	// In the last round, Finalize returns an *Output session holding the
	// protocol result.
	Finalize(out chan<- *Message) (Session, error)

	// MessageContent returns an uninitialized Content for this round.
	//
	// The first round of a protocol returns nil.
	MessageContent() Content

	// Number returns the current round number.
	Number() Number
}
