package psi

import "errors"

var (
	// ErrEmptyInput is returned when a run is started with no items.
	ErrEmptyInput = errors.New("psi: input set is empty")

	// ErrInvalidBlindedPoints is returned when a received message is empty
	// where a non-empty one is required, or otherwise structurally unusable.
	ErrInvalidBlindedPoints = errors.New("psi: invalid blinded points")

	// ErrStateConsumed is returned when a phase value is used after its
	// transition has already run. Every transition consumes its receiver;
	// a consumed value cannot replay or fork the protocol.
	ErrStateConsumed = errors.New("psi: protocol state already consumed")
)
