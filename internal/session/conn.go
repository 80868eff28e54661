package session

// Sender is the transport half of a connection. The Router consults IsOpen
// before every relay; a false Send return means the recipient was unreachable
// and the message is dropped. There is no retry or queueing beyond the
// transport's own outbound buffer.
type Sender interface {
	// Send writes one outbound frame. It must not block; it reports false
	// when the connection is closed or its buffer is full.
	Send(data []byte) bool

	// IsOpen reports whether the connection can still accept frames.
	IsOpen() bool
}

// Conn is one registered connection. Pairing fields are mutated only by
// call-lifecycle transitions inside the Router.
type Conn struct {
	ID             string
	UserID         string
	SpeakLanguage  string
	ListenLanguage string

	// RoomID and PartnerID are empty when the connection is not in a call.
	RoomID    string
	PartnerID string

	sender Sender
}

// InCall reports whether the connection is bound to a room.
func (c *Conn) InCall() bool {
	return c.RoomID != ""
}
