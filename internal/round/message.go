package round

import "github.com/blindset/psi/pkg/party"

// Content represents the message payload returned by a round during
// finalization.
type Content interface {
	RoundNumber() Number
}

type Message struct {
	From, To party.ID
	Content  Content
}
