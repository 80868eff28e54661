// Package transport implements the WebSocket side of the relay.
//
// Each accepted connection gets a Peer with dedicated read and write pumps.
// The read pump decodes inbound envelopes and hands them to the session
// Router; the write pump drains a buffered outbound channel and keeps the
// connection alive with pings. Peer satisfies session.Sender, so the Router
// never touches a websocket directly.
package transport
