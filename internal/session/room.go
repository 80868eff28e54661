package session

// Room lifecycle states.
const (
	StatusPending = "pending"
	StatusActive  = "active"
)

// Room is the pairing record for one call between exactly two connections.
// A Room never outlives the call it represents.
type Room struct {
	ID     string
	Caller string
	Callee string
	Status string
}

// RoomRegistry maps room ids to pairing state. Like ConnRegistry, it relies
// on the Router for serialization.
type RoomRegistry struct {
	rooms map[string]*Room
}

// NewRoomRegistry creates an empty room registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]*Room),
	}
}

// Create inserts a new pending room for the caller/callee pair.
func (r *RoomRegistry) Create(id, caller, callee string) *Room {
	room := &Room{
		ID:     id,
		Caller: caller,
		Callee: callee,
		Status: StatusPending,
	}
	r.rooms[id] = room
	return room
}

// Get returns the room for id, if present.
func (r *RoomRegistry) Get(id string) (*Room, bool) {
	room, ok := r.rooms[id]
	return room, ok
}

// Delete removes the room for id. Deleting a nonexistent id is a no-op.
func (r *RoomRegistry) Delete(id string) {
	delete(r.rooms, id)
}

// FindByCallee returns the first room naming connID as callee. This is a
// linear O(rooms) scan in unspecified order; concurrent room counts are
// expected to stay small enough that an index is not worth carrying.
func (r *RoomRegistry) FindByCallee(connID string) (*Room, bool) {
	for _, room := range r.rooms {
		if room.Callee == connID {
			return room, true
		}
	}
	return nil, false
}

// Len returns the number of live rooms.
func (r *RoomRegistry) Len() int {
	return len(r.rooms)
}
