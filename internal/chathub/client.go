package chathub

// Client is the interface for any live connection the hub can push frames
// to. It abstracts the underlying transport so the registry and relay can
// treat WebSocket connections and test doubles uniformly. Identity is not
// part of the interface: the Registry is the authority for who a connection
// belongs to.
type Client interface {
	// Send queues an already-serialized frame for delivery. It never
	// blocks: a closed connection or a full outbound buffer makes Send
	// drop the frame and report false.
	Send(frame []byte) bool

	// Close tears the connection down. Safe to call more than once.
	Close()
}
