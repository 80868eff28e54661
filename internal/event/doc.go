// Package event defines the wire protocol shared by clients and the relay.
//
// Every frame in either direction is an Envelope with a discriminated type,
// an opaque JSON payload, and a timestamp. Outbound timestamps are
// server-generated at send time; inbound timestamps are ignored.
//
// Conventions:
//   - Inbound payloads are validated with struct tags before dispatch
//   - Unknown or undecodable frames never close the connection
//   - Translation payloads are opaque; the relay only annotates forwarding
package event
