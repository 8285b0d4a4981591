package actor

// BaseMessage is a helper struct that can be embedded in message types
// defined outside the actor package to satisfy the Message interface's
// unexported messageMarker method.
type BaseMessage struct{}

// messageMarker implements the unexported method for the Message interface,
// allowing types that embed BaseMessage to satisfy the Message interface.
func (BaseMessage) messageMarker() {}

// Message is a sealed interface for actor messages. Actors receive messages
// conforming to this interface. The interface is "sealed" by the unexported
// messageMarker method, meaning only types that can satisfy it (e.g. by
// embedding BaseMessage) can be Messages.
//
// An actor declares the message types it accepts by type-switching on
// Message inside its Handle method (see Actor). Go has no per-message-type
// trait dispatch, so unlike a Rust Handler<M> impl per message, one Handle
// method routes every message type the actor understands.
type Message interface {
	// messageMarker is a private method that makes this a sealed
	// interface (see BaseMessage for embedding).
	messageMarker()

	// MessageType returns the type name of the message for
	// routing/logging/tracing.
	MessageType() string
}
