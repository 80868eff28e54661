// Package session implements the relay core: the connection and room
// registries and the Router that owns them.
//
// The Router:
//   - Serializes every state transition behind a single mutex, so the
//     caller/callee pairing invariants are never observed half-updated
//   - Routes translation text and typing indicators to call partners
//   - Drives the call lifecycle (request, accept, reject, end, disconnect)
//   - Broadcasts the roster after every registration and disconnect
//
// Both registries are passive data stores; the Router is their only writer.
package session
