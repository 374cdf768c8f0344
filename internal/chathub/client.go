package chathub

// Client is the interface for one live connection handle. It abstracts the
// underlying transport, allowing the registry to manage different client
// types uniformly. A handle is owned exclusively by the registry: closing
// or replacing it is the only way to release it.
type Client interface {
	// GetUserID returns the canonical identifier of the connected user.
	GetUserID() string

	// Send writes one outbound frame to the transport. It is safe for
	// concurrent use across distinct handles; a non-nil error means the
	// connection is dead.
	Send(frame any) error

	// Close shuts down the underlying connection. Safe to call more than
	// once.
	Close() error
}
