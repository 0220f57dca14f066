package protocol

// Handler represents an execution of a given protocol. It provides a
// simple interface for the user to receive and deliver protocol messages.
type Handler interface {
	// Result should return the result of running the protocol, or an error.
	Result() (interface{}, error)
	// Listen returns a channel which will pass messages that should be sent
	// to the other participants.
	Listen() <-chan *Message
	// Stop should abort the protocol execution.
	Stop()
	// CanAccept checks whether the message is destined for this execution.
	CanAccept(msg *Message) bool
	// Accept delivers a message to the protocol execution.
	Accept(msg *Message)
}
